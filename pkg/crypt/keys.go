package crypt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/rakutentech/jwk-go/jwk"
)

const AlgorithmES256 = "ES256"

func GenerateKey() (*ecdsa.PrivateKey, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}
	return privateKey, nil
}

func toJWK(key interface{}, keyID string) ([]byte, error) {
	ks := jwk.NewSpec(key)
	rawJWK, err := ks.ToJWK()
	if err != nil {
		return nil, fmt.Errorf("creating JWK: %w", err)
	}

	rawJWK.Use = "sig"
	rawJWK.Alg = AlgorithmES256
	rawJWK.Kid = keyID

	keyData, err := rawJWK.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshalling JWK: %w", err)
	}
	return keyData, nil
}

// EncodePrivateKey returns the key as a base64 encoded JWK, the format SESSION_SIGNING_KEY expects.
func EncodePrivateKey(privateKey *ecdsa.PrivateKey, keyID string) (string, error) {
	keyData, err := toJWK(privateKey, keyID)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(keyData), nil
}

func DecodePrivateKey(privateKey string) (*ecdsa.PrivateKey, error) {
	keyData, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return nil, fmt.Errorf("decoding private key: %w", err)
	}

	keySpec, err := jwk.Parse(string(keyData))
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	key, ok := keySpec.Key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected an ECDSA private key, got %T", keySpec.Key)
	}
	return key, nil
}

func PublicJWK(publicKey *ecdsa.PublicKey, keyID string) ([]byte, error) {
	return toJWK(publicKey, keyID)
}
