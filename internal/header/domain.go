package header

// Domain value types. Every type here is immutable after construction;
// constructors validate the wire format's invariants but do not themselves
// touch the wire (that's the job of the codec functions in the sibling
// files: params.go, nonce.go, keyslot.go, ...).

// Params selects one of three KDF difficulty levels. The concrete cost
// parameters (memory, iterations, parallelism) a given level maps to are a
// crypto-collaborator concern, not a wire-format concern.
type Params int

const (
	ParamsStandard Params = iota
	ParamsHardened
	ParamsParanoid
)

// HashingKind discriminates the two supported KDFs.
type HashingKind int

const (
	HashingArgon2id HashingKind = iota
	HashingBlake3Balloon
)

// HashingAlgorithm is a tagged union: a KDF choice plus its difficulty.
type HashingAlgorithm struct {
	Kind   HashingKind
	Params Params
}

// Algorithm is the AEAD cipher used to encrypt the payload and, indirectly,
// to size the Nonce carried alongside it.
type Algorithm int

const (
	Aes256Gcm Algorithm = iota
	Aes256GcmSiv
	XChaCha20Poly1305
)

// NonceLen returns the number of raw nonce bytes this algorithm requires.
func (a Algorithm) NonceLen() int {
	switch a {
	case Aes256Gcm:
		return 12
	case Aes256GcmSiv:
		return 12
	case XChaCha20Poly1305:
		return 20
	default:
		return 0
	}
}

// SaltLen is the fixed length of a Salt's inner random value.
const SaltLen = 16

// Salt is a 16-byte random value used as KDF input.
type Salt struct {
	bytes [SaltLen]byte
}

// NewSalt wraps an existing 16-byte value as a Salt.
func NewSalt(b []byte) (Salt, error) {
	if len(b) != SaltLen {
		return Salt{}, invalidf("salt must be %d bytes, got %d", SaltLen, len(b))
	}
	var s Salt
	copy(s.bytes[:], b)
	return s, nil
}

// Inner returns a copy of the salt's raw bytes.
func (s Salt) Inner() []byte {
	out := make([]byte, SaltLen)
	copy(out, s.bytes[:])
	return out
}

// Nonce is a tagged union parameterized by Algorithm; its inner byte length
// equals that algorithm's NonceLen().
type Nonce struct {
	algorithm Algorithm
	bytes     []byte
}

// NewNonce builds a Nonce for the given algorithm, validating that b has
// exactly that algorithm's nonce length.
func NewNonce(alg Algorithm, b []byte) (Nonce, error) {
	want := alg.NonceLen()
	if want == 0 {
		return Nonce{}, invalidf("unknown algorithm %d", alg)
	}
	if len(b) != want {
		return Nonce{}, invalidf("nonce for algorithm %d must be %d bytes, got %d", alg, want, len(b))
	}
	out := make([]byte, want)
	copy(out, b)
	return Nonce{algorithm: alg, bytes: out}, nil
}

// Algorithm returns the AEAD algorithm this nonce was generated for.
func (n Nonce) Algorithm() Algorithm {
	return n.algorithm
}

// Inner returns a copy of the nonce's raw bytes (length == Algorithm().NonceLen()).
func (n Nonce) Inner() []byte {
	out := make([]byte, len(n.bytes))
	copy(out, n.bytes)
	return out
}

// EncryptedKeyLen is the wrapped-key length: a 32-byte key plus a 16-byte
// AEAD tag.
const EncryptedKeyLen = 48

// EncryptedKey is a fixed-length wrapped key paired with the Nonce used to
// produce it.
type EncryptedKey struct {
	bytes [EncryptedKeyLen]byte
	nonce Nonce
}

// NewEncryptedKey pairs a 48-byte wrapped key with the nonce that produced it.
func NewEncryptedKey(b []byte, nonce Nonce) (EncryptedKey, error) {
	if len(b) != EncryptedKeyLen {
		return EncryptedKey{}, invalidf("encrypted key must be %d bytes, got %d", EncryptedKeyLen, len(b))
	}
	var e EncryptedKey
	copy(e.bytes[:], b)
	e.nonce = nonce
	return e, nil
}

// Inner returns a copy of the wrapped key+tag bytes.
func (e EncryptedKey) Inner() []byte {
	out := make([]byte, EncryptedKeyLen)
	copy(out, e.bytes[:])
	return out
}

// Nonce returns the nonce used to produce this wrapped key.
func (e EncryptedKey) Nonce() Nonce {
	return e.nonce
}

// Keyslot is a self-contained record allowing one passphrase to unwrap the
// content key. Two independent salts feed two independent KDF invocations:
// one derives a checkpoint hash of the user key, the other derives the key
// that wraps/unwraps encryptedKey.
type Keyslot struct {
	HashingAlgorithm HashingAlgorithm
	HashSalt         Salt
	Salt             Salt
	EncryptedKey     EncryptedKey
}

// HeaderObjectIdentifier is an encrypted identifier blob attached to a
// HeaderObject (e.g. what the object actually is).
type HeaderObjectIdentifier struct {
	Key  EncryptedKey
	Salt Salt
}

// HeaderObject is an encrypted metadata blob (a file name, a preview, or
// similar) identified by a HeaderObjectIdentifier.
type HeaderObject struct {
	Identifier HeaderObjectIdentifier
	Nonce      Nonce
	Data       []byte
}

// HeaderVersion discriminates the header layout. Only V1 exists today;
// future versions may change the layout that follows it.
type HeaderVersion int

const (
	HeaderVersionV1 HeaderVersion = iota
)

// KeyslotLimit is the fixed number of keyslots the wire format always
// carries, short slots padded with freshly-randomized keyslots.
const KeyslotLimit = 2

// ObjectLimit is the writer-enforced cap on the number of header objects.
// The reader honors whatever object count the file declares (see
// DecodeHeader), up to the uint16 ceiling; only each object's declared
// length is capped, by the defensive MaxObjectDataLen guard.
const ObjectLimit = 2

// Header is the full, assembled header value.
type Header struct {
	Version   HeaderVersion
	Algorithm Algorithm
	Nonce     Nonce
	Keyslots  []Keyslot
	Objects   []HeaderObject
}

// NewHeader validates and constructs a Header. It enforces invariant 1
// (Nonce.Algorithm() == algorithm) and invariant 3 (object count bound);
// invariant 2 (exactly KeyslotLimit slots on the wire) is enforced at
// encode time, not construction time, since a Header may legitimately be
// built with fewer real slots before random-fill padding is added.
func NewHeader(version HeaderVersion, algorithm Algorithm, nonce Nonce, keyslots []Keyslot, objects []HeaderObject) (Header, error) {
	if nonce.Algorithm() != algorithm {
		return Header{}, invalidf("nonce algorithm %d does not match header algorithm %d", nonce.Algorithm(), algorithm)
	}
	if len(keyslots) > KeyslotLimit {
		return Header{}, invalidf("too many keyslots: %d exceeds limit %d", len(keyslots), KeyslotLimit)
	}
	if len(objects) > ObjectLimit {
		return Header{}, invalidf("too many objects: %d exceeds limit %d", len(objects), ObjectLimit)
	}
	return Header{
		Version:   version,
		Algorithm: algorithm,
		Nonce:     nonce,
		Keyslots:  keyslots,
		Objects:   objects,
	}, nil
}
