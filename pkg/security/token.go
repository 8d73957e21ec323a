package security

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
)

const tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// maxUnbiasedByte is the largest multiple of len(tokenAlphabet) that fits in a byte.
// Bytes at or above it are discarded to keep the distribution uniform.
const maxUnbiasedByte = 256 - (256 % len(tokenAlphabet))

// RandomString returns n characters drawn uniformly from [0-9A-Za-z] using crypto/rand
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("token length must be positive")
	}

	out := make([]byte, 0, n)
	buf := make([]byte, n+n/4)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiasedByte {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}

// ConstantTimeEqual compares two secrets without leaking the position of the first mismatch
func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
