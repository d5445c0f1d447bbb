package crypto

import (
	"bytes"
	"testing"
)

func testSecret() *[32]byte {
	secret := &[32]byte{}
	for i := 0; i < 32; i++ {
		secret[i] = byte(i)
	}
	return secret
}

func TestSealOpenRoundtrip(t *testing.T) {
	t.Parallel()

	secret := testSecret()
	plaintext := []byte("eyJhbGciOiJIUzI1NiJ9.access-token")

	sealed, err := Seal(plaintext, secret)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	// nonce + auth tag at minimum
	if len(sealed) < 24+16 {
		t.Fatalf("sealed data too short: %d bytes", len(sealed))
	}

	opened, err := Open(sealed, secret)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("roundtrip mismatch: got %q", opened)
	}
}

func TestOpenRejectsTamperedData(t *testing.T) {
	t.Parallel()

	secret := testSecret()
	sealed, err := Seal([]byte("payload"), secret)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	sealed[len(sealed)-1] ^= 0xff
	if _, err := Open(sealed, secret); err == nil {
		t.Fatal("Open accepted tampered ciphertext")
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	t.Parallel()

	sealed, err := Seal([]byte("payload"), testSecret())
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	other := &[32]byte{}
	if _, err := Open(sealed, other); err == nil {
		t.Fatal("Open accepted ciphertext under wrong key")
	}
}

func TestOpenRejectsShortInput(t *testing.T) {
	t.Parallel()

	if _, err := Open([]byte("short"), testSecret()); err == nil {
		t.Fatal("Open accepted truncated input")
	}
}
