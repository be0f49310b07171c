package crypt

import (
	"crypto/ecdsa"

	"github.com/btcsuite/btcutil/base58"
	"github.com/cespare/xxhash"
)

// KeyID derives a short stable identifier for a public key.
func KeyID(publicKey *ecdsa.PublicKey) string {
	hash := xxhash.New()
	hash.Write(publicKey.X.Bytes())
	hash.Write(publicKey.Y.Bytes())
	return base58.Encode(hash.Sum(nil))
}
