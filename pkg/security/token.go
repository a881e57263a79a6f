package security

import (
	"crypto/rand"
	"encoding/hex"
)

// NewCSRFToken returns a fresh random token, 16 bytes of entropy
// rendered as hex. One is minted per session and reused for its
// whole lifetime
func NewCSRFToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
