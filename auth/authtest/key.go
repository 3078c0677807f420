// Package authtest issues RS256 tokens for tests.
package authtest

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Key is an RSA key pair for signing tokens in tests.
type Key struct {
	Private *rsa.PrivateKey
}

func NewKey() Key {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return Key{Private: key}
}

func (k Key) PublicPEM() string {
	der, err := x509.MarshalPKIXPublicKey(&k.Private.PublicKey)
	if err != nil {
		panic(err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

// Sign issues an RS256 token carrying the given preferred_username.
func (k Key) Sign(username string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":                username,
		"preferred_username": username,
		"exp":                time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(k.Private)
	if err != nil {
		panic(err)
	}
	return signed
}

// SignExpired issues a token whose exp is in the past; verification must
// still accept it.
func (k Key) SignExpired(username string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":                username,
		"preferred_username": username,
		"exp":                time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString(k.Private)
	if err != nil {
		panic(err)
	}
	return signed
}
