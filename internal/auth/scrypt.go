// Package auth derives and verifies scrypt password hashes.
package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLength = 16
	keyLength  = 32
	scryptN    = 16384
	scryptR    = 8
	scryptP    = 1
)

// HashPassword derives a hash from the password with a fresh random salt.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	hash, err = scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, nil, err
	}
	return hash, salt, nil
}

// Verify reports whether the password matches the stored hash and salt.
func Verify(password string, hash, salt []byte) bool {
	derived, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(derived, hash) == 1
}
