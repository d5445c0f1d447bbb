// Package crypto provides the symmetric encryption used for credentials at
// rest (XSalsa20-Poly1305 via NaCl SecretBox).
package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// Seal encrypts plaintext with the given 32-byte secret.
// Output format: [nonce (24 bytes)][ciphertext + auth tag].
func Seal(plaintext []byte, secret *[32]byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nil, plaintext, &nonce, secret)

	result := make([]byte, nonceSize+len(sealed))
	copy(result[0:nonceSize], nonce[:])
	copy(result[nonceSize:], sealed)
	return result, nil
}

// Open decrypts data produced by Seal.
func Open(encrypted []byte, secret *[32]byte) ([]byte, error) {
	if len(encrypted) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("encrypted data too short")
	}

	var nonce [nonceSize]byte
	copy(nonce[:], encrypted[0:nonceSize])

	plaintext, ok := secretbox.Open(nil, encrypted[nonceSize:], &nonce, secret)
	if !ok {
		return nil, fmt.Errorf("decryption failed")
	}
	return plaintext, nil
}
