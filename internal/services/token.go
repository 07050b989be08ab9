package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// generateToken returns a 256-bit random secret, hex-encoded. Used for both
// email verification and password reset links.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
