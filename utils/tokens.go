package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecureToken returns a hex string of 2*length characters from a
// cryptographically secure source.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
