package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewInviteToken returns a random opaque token for invite links.
func NewInviteToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
