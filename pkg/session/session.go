// Package session issues and verifies the ES256 signed bearer tokens handed out at login.
package session

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/Redestrov/CyberMaker-site/pkg/crypt"
)

const Issuer = "cybermaker"

var ErrorInvalidToken = errors.New("invalid session token")

type Claims struct {
	jwt.StandardClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
}

type Signer struct {
	privateKey *ecdsa.PrivateKey
	keyID      string
	ttl        time.Duration
}

func NewSigner(privateKey *ecdsa.PrivateKey, ttl time.Duration) *Signer {
	return &Signer{
		privateKey: privateKey,
		keyID:      crypt.KeyID(&privateKey.PublicKey),
		ttl:        ttl,
	}
}

// FromEncodedKey builds a signer from a base64 JWK, generating an ephemeral key when encoded is empty.
func FromEncodedKey(encoded string, ttl time.Duration) (*Signer, bool, error) {
	if encoded == "" {
		key, err := crypt.GenerateKey()
		if err != nil {
			return nil, false, err
		}
		return NewSigner(key, ttl), true, nil
	}
	key, err := crypt.DecodePrivateKey(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("loading signing key: %w", err)
	}
	return NewSigner(key, ttl), false, nil
}

func (s *Signer) KeyID() string {
	return s.keyID
}

func (s *Signer) Issue(userID int64, role string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodES256, &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    Issuer,
			Subject:   fmt.Sprint(userID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
		},
		UserID: userID,
		Role:   role,
	})
	token.Header["kid"] = s.keyID

	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

func (s *Signer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		if kid, _ := token.Header["kid"].(string); kid != s.keyID {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidToken, err)
	}
	if !token.Valid || claims.Issuer != Issuer || claims.UserID <= 0 {
		return nil, ErrorInvalidToken
	}
	return claims, nil
}

func (s *Signer) PublicJWK() ([]byte, error) {
	return crypt.PublicJWK(&s.privateKey.PublicKey, s.keyID)
}
