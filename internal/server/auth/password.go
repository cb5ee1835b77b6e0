package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Key-derivation parameters. These match the documents already in the wild,
// so changing them invalidates every stored hash.
const (
	saltLength     = 16
	hashIterations = 10000
	hashKeyLength  = 64
)

// HashPassword derives a salted PBKDF2-SHA512 hash of the password and
// returns it encoded as "salt:hash" in hex. This is the single
// password-hashing code path in the system; admin and user credentials go
// through it identically.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLength, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash), nil
}

// VerifyPassword recomputes the hash with the stored salt and compares in
// constant time. It returns false, and never panics, for malformed stored
// values.
func VerifyPassword(password, stored string) bool {
	saltHex, hashHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil || len(expected) == 0 {
		return false
	}

	hash := pbkdf2.Key([]byte(password), salt, hashIterations, len(expected), sha512.New)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
