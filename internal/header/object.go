package header

import "encoding/binary"

// HeaderObjectIdentifierOutputLen is the compile-time constant on-wire
// length of HeaderObjectIdentifier: a 2-byte prefix, an EncryptedKey, and a
// Salt.
const HeaderObjectIdentifierOutputLen = 2 + EncryptedKeyOutputLen + SaltOutputLen

var objectIdentifierPrefix = [2]byte{0xC2, 0xE9}

// EncodeHeaderObjectIdentifier serializes id into its fixed 102-byte form.
func EncodeHeaderObjectIdentifier(id HeaderObjectIdentifier) ([HeaderObjectIdentifierOutputLen]byte, error) {
	var out [HeaderObjectIdentifierOutputLen]byte
	out[0] = objectIdentifierPrefix[0]
	out[1] = objectIdentifierPrefix[1]

	var c cursor
	c.advance(2)

	keyBytes, err := EncodeEncryptedKey(id.Key)
	if err != nil {
		return out, err
	}
	start := c.advance(EncryptedKeyOutputLen)
	copy(out[start:], keyBytes[:])

	saltBytes := EncodeSalt(id.Salt)
	copy(out[c.at():], saltBytes[:])

	return out, nil
}

// DecodeHeaderObjectIdentifier parses b, rejecting a bad prefix or an
// invalid nested field.
func DecodeHeaderObjectIdentifier(b [HeaderObjectIdentifierOutputLen]byte) (HeaderObjectIdentifier, error) {
	if b[0] != objectIdentifierPrefix[0] || b[1] != objectIdentifierPrefix[1] {
		return HeaderObjectIdentifier{}, invalidf("bad object-identifier prefix 0x%02X%02X", b[0], b[1])
	}

	var c cursor
	c.advance(2)

	var keyBuf [EncryptedKeyOutputLen]byte
	start := c.advance(EncryptedKeyOutputLen)
	copy(keyBuf[:], b[start:])
	key, err := DecodeEncryptedKey(keyBuf)
	if err != nil {
		return HeaderObjectIdentifier{}, err
	}

	var saltBuf [SaltOutputLen]byte
	copy(saltBuf[:], b[c.at():])
	salt, err := DecodeSalt(saltBuf)
	if err != nil {
		return HeaderObjectIdentifier{}, err
	}

	return HeaderObjectIdentifier{Key: key, Salt: salt}, nil
}

var objectPrefix = [2]byte{0xF1, 0x33}

// objectDataLenFieldLen is the width of the little-endian data-length
// prefix inside an encoded HeaderObject.
const objectDataLenFieldLen = 8

// EncodeHeaderObject serializes o. Unlike the other primitives its length
// is variable and carried on the wire via an explicit 8-byte length prefix
// ahead of the ciphertext, not a compile-time constant.
func EncodeHeaderObject(o HeaderObject) ([]byte, error) {
	idBytes, err := EncodeHeaderObjectIdentifier(o.Identifier)
	if err != nil {
		return nil, err
	}
	nonceBytes, err := EncodeNonce(o.Nonce)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+len(idBytes)+len(nonceBytes)+objectDataLenFieldLen+len(o.Data))
	out = append(out, objectPrefix[0], objectPrefix[1])
	out = append(out, idBytes[:]...)
	out = append(out, nonceBytes[:]...)

	lenBuf := make([]byte, objectDataLenFieldLen)
	binary.LittleEndian.PutUint64(lenBuf, uint64(len(o.Data)))
	out = append(out, lenBuf...)
	out = append(out, o.Data...)

	return out, nil
}

// DecodeHeaderObject parses b, which must hold exactly one encoded object
// (no trailing bytes). The caller (DecodeHeader) is responsible for
// slicing exactly the object's length-prefixed byte count (the whole
// encoded object, not just its data) off the stream before calling this.
func DecodeHeaderObject(b []byte) (HeaderObject, error) {
	minLen := 2 + HeaderObjectIdentifierOutputLen + NonceOutputLen + objectDataLenFieldLen
	if len(b) < minLen {
		return HeaderObject{}, invalidf("header object too short: got %d bytes, need at least %d", len(b), minLen)
	}
	if b[0] != objectPrefix[0] || b[1] != objectPrefix[1] {
		return HeaderObject{}, invalidf("bad header-object prefix 0x%02X%02X", b[0], b[1])
	}

	var c cursor
	c.advance(2)

	var idBuf [HeaderObjectIdentifierOutputLen]byte
	start := c.advance(HeaderObjectIdentifierOutputLen)
	copy(idBuf[:], b[start:])
	identifier, err := DecodeHeaderObjectIdentifier(idBuf)
	if err != nil {
		return HeaderObject{}, err
	}

	var nonceBuf [NonceOutputLen]byte
	start = c.advance(NonceOutputLen)
	copy(nonceBuf[:], b[start:])
	nonce, err := DecodeNonce(nonceBuf)
	if err != nil {
		return HeaderObject{}, err
	}

	start = c.advance(objectDataLenFieldLen)
	dataLen := binary.LittleEndian.Uint64(b[start : start+objectDataLenFieldLen])

	remaining := b[c.at():]
	if uint64(len(remaining)) != dataLen {
		return HeaderObject{}, invalidf("declared object data length %d does not match available %d bytes", dataLen, len(remaining))
	}

	data := make([]byte, dataLen)
	copy(data, remaining)

	return HeaderObject{Identifier: identifier, Nonce: nonce, Data: data}, nil
}
