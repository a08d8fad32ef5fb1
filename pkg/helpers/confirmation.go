package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Confirmation codes prove control of a signup email. Each code is derived
// from a server secret, the account identity, and a fresh random salt, so
// codes are unguessable and every signup rotates the value: only the latest
// stored code passes the exchange.

const confirmationCodeBytes = 16

// NewConfirmationCode derives a fresh confirmation code for the account.
func NewConfirmationCode(secret, username, email string) (string, error) {
	salt := make([]byte, confirmationCodeBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	kdf := hkdf.New(sha256.New, []byte(secret), salt, []byte(username+"\x00"+email))
	code := make([]byte, confirmationCodeBytes)
	if _, err := io.ReadFull(kdf, code); err != nil {
		return "", err
	}
	return hex.EncodeToString(code), nil
}

// ConfirmationCodeMatches compares the supplied code against the stored one
// in constant time. An account with no stored code never matches.
func ConfirmationCodeMatches(stored, supplied string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
