package header

// EncryptedKeyOutputLen is the compile-time constant on-wire length of
// EncryptedKey: a 2-byte prefix, the 48-byte wrapped key, then the
// embedded Nonce.
const EncryptedKeyOutputLen = 2 + EncryptedKeyLen + NonceOutputLen

var encryptedKeyPrefix = [2]byte{0x09, 0xF3}

// EncodeEncryptedKey serializes e into its fixed 82-byte form.
func EncodeEncryptedKey(e EncryptedKey) ([EncryptedKeyOutputLen]byte, error) {
	var out [EncryptedKeyOutputLen]byte
	out[0] = encryptedKeyPrefix[0]
	out[1] = encryptedKeyPrefix[1]

	var c cursor
	c.advance(2)
	start := c.advance(EncryptedKeyLen)
	copy(out[start:start+EncryptedKeyLen], e.Inner())

	nonceBytes, err := EncodeNonce(e.Nonce())
	if err != nil {
		return out, err
	}
	copy(out[c.at():], nonceBytes[:])

	return out, nil
}

// DecodeEncryptedKey parses b, rejecting a bad prefix or an invalid nested
// Nonce.
func DecodeEncryptedKey(b [EncryptedKeyOutputLen]byte) (EncryptedKey, error) {
	if b[0] != encryptedKeyPrefix[0] || b[1] != encryptedKeyPrefix[1] {
		return EncryptedKey{}, invalidf("bad encrypted-key prefix 0x%02X%02X", b[0], b[1])
	}

	var c cursor
	c.advance(2)
	start := c.advance(EncryptedKeyLen)
	keyBytes := b[start : start+EncryptedKeyLen]

	var nonceBuf [NonceOutputLen]byte
	copy(nonceBuf[:], b[c.at():])
	nonce, err := DecodeNonce(nonceBuf)
	if err != nil {
		return EncryptedKey{}, err
	}

	return NewEncryptedKey(keyBytes, nonce)
}
