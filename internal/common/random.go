package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding them as a hexadecimal string, so the final string length is twice
// the size. It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// MakeRandDigitString generates a random string of exactly n ASCII digits
// with a non-zero leading digit, suitable for user ids. Uniqueness is the
// caller's responsibility: the caller must check the generated value against
// the current document and retry on collision.
func MakeRandDigitString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit string length must be positive, got %d", n)
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		limit := int64(10)
		if i == 0 {
			limit = 9
		}
		v, err := rand.Int(rand.Reader, big.NewInt(limit))
		if err != nil {
			return "", err
		}
		d := v.Int64()
		if i == 0 {
			d++
		}
		sb.WriteByte(byte('0' + d))
	}

	return sb.String(), nil
}

// IsDigitString reports whether s consists of exactly n ASCII digits.
// Used for the boundary checks on user ids and class join codes.
func IsDigitString(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
