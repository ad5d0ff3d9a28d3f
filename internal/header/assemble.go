package header

import (
	"encoding/binary"
	"fmt"
	"io"
)

var fileMagic = [2]byte{0xFA, 0xDA}

// objectCountFieldLen is the width of the little-endian object-count field.
const objectCountFieldLen = 2

// MaxObjectDataLen bounds the declared length of a single encoded header
// object: the 8-byte length prefix DecodeHeader reads ahead of each object,
// which covers the object's fixed fields as well as its data. It is a defensive collaborator policy, not a wire-format rule, since the
// wire format itself leaves the reader's object-count and per-object-length
// bounds up to the implementer.
const MaxObjectDataLen = 16 << 20 // 16 MiB

// EncodeHeader assembles h into its on-wire byte form. The keyslot region
// always carries exactly KeyslotLimit slots: any shortfall is padded with
// freshly-randomized keyslots drawn from rng, so the on-disk region never
// leaks how many real credentials h actually holds.
func EncodeHeader(h Header, rng io.Reader) ([]byte, error) {
	if len(h.Keyslots) > KeyslotLimit {
		return nil, invalidf("too many keyslots: %d exceeds limit %d", len(h.Keyslots), KeyslotLimit)
	}
	if h.Nonce.Algorithm() != h.Algorithm {
		return nil, invalidf("nonce algorithm %d does not match header algorithm %d", h.Nonce.Algorithm(), h.Algorithm)
	}

	out := make([]byte, 0, 284)
	out = append(out, fileMagic[0], fileMagic[1])

	versionBytes, err := EncodeHeaderVersion(h.Version)
	if err != nil {
		return nil, err
	}
	out = append(out, versionBytes[:]...)

	algorithmBytes, err := EncodeAlgorithm(h.Algorithm)
	if err != nil {
		return nil, err
	}
	out = append(out, algorithmBytes[:]...)

	nonceBytes, err := EncodeNonce(h.Nonce)
	if err != nil {
		return nil, err
	}
	out = append(out, nonceBytes[:]...)

	for _, k := range h.Keyslots {
		slotBytes, err := EncodeKeyslot(k)
		if err != nil {
			return nil, err
		}
		out = append(out, slotBytes[:]...)
	}

	for i := len(h.Keyslots); i < KeyslotLimit; i++ {
		slotBytes, err := RandomKeyslot(rng)
		if err != nil {
			return nil, fmt.Errorf("header: generating random-fill keyslot: %w", err)
		}
		out = append(out, slotBytes[:]...)
	}

	if len(h.Objects) > 0xFFFF {
		return nil, invalidf("too many objects: %d exceeds uint16 range", len(h.Objects))
	}
	countBuf := make([]byte, objectCountFieldLen)
	binary.LittleEndian.PutUint16(countBuf, uint16(len(h.Objects)))
	out = append(out, countBuf...)

	for _, obj := range h.Objects {
		objBytes, err := EncodeHeaderObject(obj)
		if err != nil {
			return nil, err
		}
		lenBuf := make([]byte, 8)
		binary.LittleEndian.PutUint64(lenBuf, uint64(len(objBytes)))
		out = append(out, lenBuf...)
		out = append(out, objBytes...)
	}

	return out, nil
}

// DecodeHeader reads and validates a header from r, a sequential byte
// source. It never seeks backwards; a validity error at any point aborts
// parsing immediately.
//
// The keyslot region is read as one bounded block of KeyslotLimit *
// KeyslotOutputLen bytes up front (a short read there is an I/O error, not a
// dropped slot), after which each slot is decoded independently. A slot
// that fails to decode is silently dropped: it was random fill, and the
// codec has no way to tell a corrupted real slot from one that never held
// a credential.
func DecodeHeader(r io.Reader) (Header, error) {
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return Header{}, fmt.Errorf("header: reading file magic: %w", err)
	}
	if magic != fileMagic {
		return Header{}, invalidf("bad file magic 0x%02X%02X", magic[0], magic[1])
	}

	var versionBuf [HeaderVersionOutputLen]byte
	if _, err := io.ReadFull(r, versionBuf[:]); err != nil {
		return Header{}, fmt.Errorf("header: reading version: %w", err)
	}
	version, err := DecodeHeaderVersion(versionBuf)
	if err != nil {
		return Header{}, err
	}

	var algorithmBuf [AlgorithmOutputLen]byte
	if _, err := io.ReadFull(r, algorithmBuf[:]); err != nil {
		return Header{}, fmt.Errorf("header: reading algorithm: %w", err)
	}
	algorithm, err := DecodeAlgorithm(algorithmBuf)
	if err != nil {
		return Header{}, err
	}

	var nonceBuf [NonceOutputLen]byte
	if _, err := io.ReadFull(r, nonceBuf[:]); err != nil {
		return Header{}, fmt.Errorf("header: reading nonce: %w", err)
	}
	nonce, err := DecodeNonce(nonceBuf)
	if err != nil {
		return Header{}, err
	}
	if nonce.Algorithm() != algorithm {
		return Header{}, invalidf("nonce algorithm %d disagrees with header algorithm %d", nonce.Algorithm(), algorithm)
	}

	slotRegion := make([]byte, KeyslotLimit*KeyslotOutputLen)
	if _, err := io.ReadFull(r, slotRegion); err != nil {
		return Header{}, fmt.Errorf("header: reading keyslot region: %w", err)
	}

	keyslots := make([]Keyslot, 0, KeyslotLimit)
	for i := 0; i < KeyslotLimit; i++ {
		var slotBuf [KeyslotOutputLen]byte
		copy(slotBuf[:], slotRegion[i*KeyslotOutputLen:(i+1)*KeyslotOutputLen])

		slot, err := DecodeKeyslot(slotBuf)
		if err != nil {
			continue
		}
		keyslots = append(keyslots, slot)
	}

	var countBuf [objectCountFieldLen]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return Header{}, fmt.Errorf("header: reading object count: %w", err)
	}
	objectCount := binary.LittleEndian.Uint16(countBuf[:])

	objects := make([]HeaderObject, 0, objectCount)
	for i := uint16(0); i < objectCount; i++ {
		var lenBuf [8]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return Header{}, fmt.Errorf("header: reading object %d length: %w", i, err)
		}
		objLen := binary.LittleEndian.Uint64(lenBuf[:])
		if objLen > MaxObjectDataLen {
			return Header{}, invalidf("object %d declared length %d exceeds max %d", i, objLen, MaxObjectDataLen)
		}

		objBuf := make([]byte, objLen)
		if _, err := io.ReadFull(r, objBuf); err != nil {
			return Header{}, fmt.Errorf("header: reading object %d body: %w", i, err)
		}

		obj, err := DecodeHeaderObject(objBuf)
		if err != nil {
			return Header{}, err
		}
		objects = append(objects, obj)
	}

	return Header{
		Version:   version,
		Algorithm: algorithm,
		Nonce:     nonce,
		Keyslots:  keyslots,
		Objects:   objects,
	}, nil
}
