// Package id generates identifiers that are not assigned by the database.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// shareTokenAlphabet yields lowercase hex tokens.
	shareTokenAlphabet = "0123456789abcdef"
	// ShareTokenLength is 16 hex characters, 64 bits of randomness.
	ShareTokenLength = 16
)

// ShareToken returns a random public token for a share link.
// Returns an error if the system has insufficient entropy.
func ShareToken() (string, error) {
	token, err := gonanoid.Generate(shareTokenAlphabet, ShareTokenLength)
	if err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return token, nil
}

// DownloadID returns a new identifier for a download record.
func DownloadID() string {
	return uuid.NewString()
}
