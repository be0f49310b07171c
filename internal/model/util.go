package model

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// CreateID returns a random base58 identifier, used for stored file names.
func CreateID() string {
	id, _ := uuid.NewRandom()
	return base58.Encode(id[:])
}

func FileName(prefix, ext string) string {
	return prefix + "_" + CreateID() + ext
}
