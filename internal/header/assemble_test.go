package header

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func buildHeader(t *testing.T, alg Algorithm, nKeyslots, nObjects int) Header {
	t.Helper()

	nonceBytes := make([]byte, alg.NonceLen())
	if _, err := rand.Read(nonceBytes); err != nil {
		t.Fatal(err)
	}
	nonce, err := NewNonce(alg, nonceBytes)
	if err != nil {
		t.Fatal(err)
	}

	keyslots := make([]Keyslot, nKeyslots)
	for i := range keyslots {
		keyslots[i] = randomKeyslot(t, alg)
	}

	objects := make([]HeaderObject, nObjects)
	for i := range objects {
		objects[i] = randomHeaderObject(t, alg, 32*(i+1))
	}

	h, err := NewHeader(HeaderVersionV1, alg, nonce, keyslots, objects)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestHeaderRoundTrip_FullKeyslots(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 2)

	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatalf("EncodeHeader() error = %v", err)
	}

	decoded, err := DecodeHeader(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}

	if len(decoded.Keyslots) != KeyslotLimit {
		t.Errorf("len(decoded.Keyslots) = %d, want %d", len(decoded.Keyslots), KeyslotLimit)
	}
	if len(decoded.Objects) != len(h.Objects) {
		t.Fatalf("len(decoded.Objects) = %d, want %d", len(decoded.Objects), len(h.Objects))
	}
	for i := range h.Objects {
		if !bytes.Equal(decoded.Objects[i].Data, h.Objects[i].Data) {
			t.Errorf("object %d data mismatch", i)
		}
	}
	if decoded.Algorithm != h.Algorithm {
		t.Errorf("decoded algorithm = %v, want %v", decoded.Algorithm, h.Algorithm)
	}
}

func TestHeaderRoundTrip_PartialKeyslots(t *testing.T) {
	// Exactly one real slot; encode pads the rest with random fill. The
	// real slot must survive decode, in order, regardless of how many
	// random-fill slots happen to also decode successfully.
	h := buildHeader(t, XChaCha20Poly1305, 1, 0)
	realSlot := h.Keyslots[0]

	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatalf("EncodeHeader() error = %v", err)
	}

	decoded, err := DecodeHeader(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}

	if len(decoded.Keyslots) < 1 {
		t.Fatalf("len(decoded.Keyslots) = %d, want at least 1", len(decoded.Keyslots))
	}
	found := false
	for _, slot := range decoded.Keyslots {
		if bytes.Equal(slot.EncryptedKey.Inner(), realSlot.EncryptedKey.Inner()) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("real keyslot did not survive round trip")
	}
	if len(decoded.Keyslots) > KeyslotLimit {
		t.Errorf("len(decoded.Keyslots) = %d, exceeds KeyslotLimit %d", len(decoded.Keyslots), KeyslotLimit)
	}
}

func TestHeaderRoundTrip_LengthLaw(t *testing.T) {
	// |encode(h)| == 284 + sum(8 + |object_bytes_i|) for |keyslots| == KeyslotLimit.
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 2)

	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatalf("EncodeHeader() error = %v", err)
	}

	want := 284
	for _, obj := range h.Objects {
		objBytes, err := EncodeHeaderObject(obj)
		if err != nil {
			t.Fatal(err)
		}
		want += 8 + len(objBytes)
	}

	if len(encoded) != want {
		t.Errorf("len(encoded) = %d, want %d", len(encoded), want)
	}
}

func TestDecodeHeader_TagClosure(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 0)
	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		offset int
		value  byte
	}{
		{"file magic", 0, 0x00},
		{"version", 2, 0xDB},
		{"algorithm prefix", 4, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corrupted := make([]byte, len(encoded))
			copy(corrupted, encoded)
			corrupted[tt.offset] = tt.value

			if _, err := DecodeHeader(bytes.NewReader(corrupted)); !errors.Is(err, ErrValidity) {
				t.Errorf("error = %v, want ErrValidity", err)
			}
		})
	}
}

func TestDecodeHeader_NonceAlgorithmDisagreement(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 0)
	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	// Rewrite the algorithm field (bytes [4:6]) to XChaCha20Poly1305 while
	// leaving the still-AES-sized nonce untouched; the decoded nonce then
	// disagrees with the decoded algorithm.
	algBytes, err := EncodeAlgorithm(XChaCha20Poly1305)
	if err != nil {
		t.Fatal(err)
	}
	copy(encoded[4:6], algBytes[:])

	if _, err := DecodeHeader(bytes.NewReader(encoded)); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
}

// An unknown AEAD discriminant (prefix 0x0D, tag 0xFF) must be rejected as
// Validity.
func TestDecodeHeader_UnknownAeadDiscriminant(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 0)
	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	encoded[4] = 0x0D
	encoded[5] = 0xFF

	if _, err := DecodeHeader(bytes.NewReader(encoded)); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
}

// One good keyslot and one corrupted keyslot in the fixed region decodes to
// exactly one keyslot, with no error: the bad slot is silently dropped,
// indistinguishable from random fill.
func TestDecodeHeader_OneCorruptedKeyslot(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, 1, 0)

	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	// Locate the second keyslot (random-fill) and stomp its magic so it
	// can never decode, regardless of what the CSPRNG happened to produce.
	secondSlotStart := 2 + HeaderVersionOutputLen + AlgorithmOutputLen + NonceOutputLen + KeyslotOutputLen
	encoded[secondSlotStart] = 0x00
	encoded[secondSlotStart+1] = 0x00

	decoded, err := DecodeHeader(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v, want nil", err)
	}
	if len(decoded.Keyslots) != 1 {
		t.Errorf("len(decoded.Keyslots) = %d, want 1", len(decoded.Keyslots))
	}
}

// An object that declares a length longer than the bytes actually
// available must surface as an I/O error, not Validity: the declared
// length itself is plausible, only the stream is short.
func TestDecodeHeader_ObjectDeclaredLengthExceedsAvailable(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 1)
	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	// Truncate the stream well inside the one declared object's body.
	truncated := encoded[:len(encoded)-10]

	_, err = DecodeHeader(bytes.NewReader(truncated))
	if err == nil {
		t.Fatal("DecodeHeader() error = nil, want an I/O error")
	}
	if errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want a plain I/O error, not ErrValidity", err)
	}
}

// A version mismatch (DA DB in place of DA DA) must fail before any other
// field is consumed.
func TestDecodeHeader_VersionMismatch(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 0)
	encoded, err := EncodeHeader(h, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	encoded[2] = 0xDA
	encoded[3] = 0xDB

	if _, err := DecodeHeader(bytes.NewReader(encoded)); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
}

func TestEncodeHeader_TooManyKeyslots(t *testing.T) {
	h := buildHeader(t, Aes256Gcm, KeyslotLimit, 0)
	h.Keyslots = append(h.Keyslots, randomKeyslot(t, Aes256Gcm))

	if _, err := EncodeHeader(h, rand.Reader); !errors.Is(err, ErrValidity) {
		t.Errorf("error = %v, want ErrValidity", err)
	}
}
