package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	// RandomBytes is the entropy of a generated token.
	RandomBytes = 32
	// EncodedLength is the hex-encoded token length.
	EncodedLength = RandomBytes * 2
)

// New generates a cryptographically random, hex-encoded token.
func New() (string, error) {
	buf := make([]byte, RandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: generate: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IsWellFormed reports whether s has the shape of a generated token
// (fixed-length lowercase hex). It says nothing about validity.
func IsWellFormed(s string) bool {
	if len(s) != EncodedLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
