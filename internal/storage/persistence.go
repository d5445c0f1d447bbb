// Package storage persists chatwire's local state: the secret key used to
// encrypt credentials at rest, the access token itself, and a stable device ID.
package storage

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/techcrush-lms/chatwire/internal/crypto"
)

// GenerateSecretKey generates a new 32-byte secret key.
func GenerateSecretKey() (*[32]byte, error) {
	key := &[32]byte{}
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// SaveSecretKey saves the secret key to a file.
func SaveSecretKey(path string, key *[32]byte) error {
	encoded := base64.StdEncoding.EncodeToString(key[:])
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// LoadSecretKey loads the secret key from a file.
func LoadSecretKey(path string) (*[32]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	if len(decoded) != 32 {
		return nil, fmt.Errorf("invalid key length: %d (expected 32)", len(decoded))
	}

	key := &[32]byte{}
	copy(key[:], decoded)
	return key, nil
}

// GetOrCreateSecretKey loads or generates a secret key.
func GetOrCreateSecretKey(path string) (*[32]byte, error) {
	key, err := LoadSecretKey(path)
	if err == nil {
		return key, nil
	}

	key, err = GenerateSecretKey()
	if err != nil {
		return nil, err
	}
	if err := SaveSecretKey(path, key); err != nil {
		return nil, err
	}
	return key, nil
}

// SaveToken encrypts the access token with the secret key and writes it to
// path (base64-encoded for readability).
func SaveToken(path, token string, key *[32]byte) error {
	sealed, err := crypto.Seal([]byte(token), key)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(sealed)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// LoadToken reads and decrypts the access token from path.
func LoadToken(path string, key *[32]byte) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	sealed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return "", fmt.Errorf("failed to decode token: %w", err)
	}

	token, err := crypto.Open(sealed, key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(token), nil
}

// GetOrCreateDeviceID loads or generates a stable device ID.
func GetOrCreateDeviceID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id), 0600); err != nil {
		return "", fmt.Errorf("failed to save device ID: %w", err)
	}
	return id, nil
}
