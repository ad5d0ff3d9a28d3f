package header

import "io"

// KeyslotOutputLen is the compile-time constant on-wire length of a
// Keyslot: 2-byte prefix, HashingAlgorithm, two Salts, and an EncryptedKey.
const KeyslotOutputLen = 2 + HashingAlgorithmOutputLen + SaltOutputLen*2 + EncryptedKeyOutputLen

var keyslotPrefix = [2]byte{0x83, 0x21}

// EncodeKeyslot serializes k into its fixed 122-byte form.
func EncodeKeyslot(k Keyslot) ([KeyslotOutputLen]byte, error) {
	var out [KeyslotOutputLen]byte
	out[0] = keyslotPrefix[0]
	out[1] = keyslotPrefix[1]

	var c cursor
	c.advance(2)

	hashBytes, err := EncodeHashingAlgorithm(k.HashingAlgorithm)
	if err != nil {
		return out, err
	}
	start := c.advance(HashingAlgorithmOutputLen)
	copy(out[start:], hashBytes[:])

	hashSaltBytes := EncodeSalt(k.HashSalt)
	start = c.advance(SaltOutputLen)
	copy(out[start:], hashSaltBytes[:])

	saltBytes := EncodeSalt(k.Salt)
	start = c.advance(SaltOutputLen)
	copy(out[start:], saltBytes[:])

	keyBytes, err := EncodeEncryptedKey(k.EncryptedKey)
	if err != nil {
		return out, err
	}
	copy(out[c.at():], keyBytes[:])

	return out, nil
}

// DecodeKeyslot parses b in order: prefix, HashingAlgorithm, hash salt,
// salt, encrypted key. There is no internal integrity check: a keyslot's
// validity is determined by whether the crypto collaborator can unwrap its
// EncryptedKey using a user-derived key; that failure is silent and
// expected for random-fill slots.
func DecodeKeyslot(b [KeyslotOutputLen]byte) (Keyslot, error) {
	if b[0] != keyslotPrefix[0] || b[1] != keyslotPrefix[1] {
		return Keyslot{}, invalidf("bad keyslot prefix 0x%02X%02X", b[0], b[1])
	}

	var c cursor
	c.advance(2)

	var hashBuf [HashingAlgorithmOutputLen]byte
	start := c.advance(HashingAlgorithmOutputLen)
	copy(hashBuf[:], b[start:])
	hashingAlgorithm, err := DecodeHashingAlgorithm(hashBuf)
	if err != nil {
		return Keyslot{}, err
	}

	var hashSaltBuf [SaltOutputLen]byte
	start = c.advance(SaltOutputLen)
	copy(hashSaltBuf[:], b[start:])
	hashSalt, err := DecodeSalt(hashSaltBuf)
	if err != nil {
		return Keyslot{}, err
	}

	var saltBuf [SaltOutputLen]byte
	start = c.advance(SaltOutputLen)
	copy(saltBuf[:], b[start:])
	salt, err := DecodeSalt(saltBuf)
	if err != nil {
		return Keyslot{}, err
	}

	var keyBuf [EncryptedKeyOutputLen]byte
	copy(keyBuf[:], b[c.at():])
	encryptedKey, err := DecodeEncryptedKey(keyBuf)
	if err != nil {
		return Keyslot{}, err
	}

	return Keyslot{
		HashingAlgorithm: hashingAlgorithm,
		HashSalt:         hashSalt,
		Salt:             salt,
		EncryptedKey:     encryptedKey,
	}, nil
}

// RandomKeyslot produces a keyslot-shaped region of freshly randomized
// bytes framed by the real keyslot magic prefix. Decoding it yields garbage
// inner fields that fail the collaborator's unwrap attempt the same way a
// wrong passphrase would; the codec itself never learns which slots are
// real. rng is the caller-provided CSPRNG (see internal/crypto/randsrc).
func RandomKeyslot(rng io.Reader) ([KeyslotOutputLen]byte, error) {
	var out [KeyslotOutputLen]byte
	out[0] = keyslotPrefix[0]
	out[1] = keyslotPrefix[1]

	if _, err := io.ReadFull(rng, out[2:]); err != nil {
		return out, err
	}

	return out, nil
}
