package header

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestSaltRoundTrip(t *testing.T) {
	raw := make([]byte, SaltLen)
	if _, err := rand.Read(raw); err != nil {
		t.Fatal(err)
	}

	s, err := NewSalt(raw)
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}

	encoded := EncodeSalt(s)
	if encoded[0] != 0x0C || encoded[1] != 0x04 {
		t.Errorf("prefix = 0x%02X%02X, want 0x0C04", encoded[0], encoded[1])
	}

	decoded, err := DecodeSalt(encoded)
	if err != nil {
		t.Fatalf("DecodeSalt() error = %v", err)
	}
	if !bytes.Equal(decoded.Inner(), raw) {
		t.Errorf("decoded salt = %x, want %x", decoded.Inner(), raw)
	}
}

func TestNewSalt_WrongLength(t *testing.T) {
	if _, err := NewSalt(make([]byte, SaltLen-1)); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
	if _, err := NewSalt(make([]byte, SaltLen+1)); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
}

func TestDecodeSalt_BadPrefix(t *testing.T) {
	var b [SaltOutputLen]byte
	b[0], b[1] = 0x0C, 0x05
	if _, err := DecodeSalt(b); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
}
