// Command cybermaker-keygen prints a fresh ES256 session signing key for SESSION_SIGNING_KEY.
package main

import (
	"flag"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/Redestrov/CyberMaker-site/pkg/crypt"
)

func generate() (encoded string, keyID string, err error) {
	key, err := crypt.GenerateKey()
	if err != nil {
		return "", "", err
	}
	keyID = crypt.KeyID(&key.PublicKey)
	encoded, err = crypt.EncodePrivateKey(key, keyID)
	if err != nil {
		return "", "", fmt.Errorf("encoding key: %w", err)
	}
	return encoded, keyID, nil
}

func main() {
	bare := flag.Bool("bare", false, "print only the encoded key")
	flag.Parse()

	encoded, keyID, err := generate()
	if err != nil {
		log.Fatalf("generating signing key: %+v", err)
	}
	if *bare {
		fmt.Println(encoded)
		return
	}
	fmt.Printf("# key id %s\nSESSION_SIGNING_KEY=%s\n", keyID, encoded)
}
