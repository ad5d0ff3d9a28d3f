package header

// NonceOutputLen is the compile-time constant on-wire length of Nonce: 32
// bytes regardless of which AEAD algorithm it carries a nonce for. This
// keeps the header layout a constant size no matter the algorithm choice.
const NonceOutputLen = 32

const nonceTag byte = 0x63

const (
	nonceAes256GcmDisc         byte = 0xB2
	nonceAes256GcmSivDisc      byte = 0xB5
	nonceXChaCha20Poly1305Disc byte = 0xB7
)

// EncodeNonce serializes n into its fixed 32-byte form: tag byte, algorithm
// discriminant byte, the raw nonce bytes, then self-repeating padding.
//
// The padding is deterministic, not random or zero: bytes beyond the raw
// nonce are filled by treating the buffer written so far (tag + discriminant
// + nonce) as a repeating pattern and copying it forward cyclically. This
// keeps EncodeNonce a pure function of the value, which is required since the
// header as a whole must stay byte-for-byte reproducible for a fixed input
// except at the random-fill keyslot positions.
func EncodeNonce(n Nonce) ([NonceOutputLen]byte, error) {
	var out [NonceOutputLen]byte

	var disc byte
	switch n.Algorithm() {
	case Aes256Gcm:
		disc = nonceAes256GcmDisc
	case Aes256GcmSiv:
		disc = nonceAes256GcmSivDisc
	case XChaCha20Poly1305:
		disc = nonceXChaCha20Poly1305Disc
	default:
		return out, invalidf("unknown nonce algorithm %d", n.Algorithm())
	}

	out[0] = nonceTag
	out[1] = disc

	l := n.Algorithm().NonceLen()
	prefixLen := 2 + l
	copy(out[2:prefixLen], n.Inner())

	for i := prefixLen; i < NonceOutputLen; i++ {
		out[i] = out[i%prefixLen]
	}

	return out, nil
}

// DecodeNonce parses b, extracting exactly the algorithm's nonce length and
// ignoring the self-repeating padding.
func DecodeNonce(b [NonceOutputLen]byte) (Nonce, error) {
	if b[0] != nonceTag {
		return Nonce{}, invalidf("bad nonce tag 0x%02X", b[0])
	}

	var alg Algorithm
	switch b[1] {
	case nonceAes256GcmDisc:
		alg = Aes256Gcm
	case nonceAes256GcmSivDisc:
		alg = Aes256GcmSiv
	case nonceXChaCha20Poly1305Disc:
		alg = XChaCha20Poly1305
	default:
		return Nonce{}, invalidf("unknown nonce discriminant 0x%02X", b[1])
	}

	l := alg.NonceLen()
	return NewNonce(alg, b[2:2+l])
}
