package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateAPIKey mints an opaque API key for a game: a uuid prefix for
// traceability plus random key material.
func GenerateAPIKey() (string, error) {
	secret, err := GenerateRandomHex(24)
	if err != nil {
		return "", err
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "nxk_" + id + secret, nil
}

// GenerateRandomHex returns length random bytes hex-encoded
func GenerateRandomHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
