package header

// SaltOutputLen is the compile-time constant on-wire length of Salt: a
// 2-byte prefix followed by the 16 raw salt bytes.
const SaltOutputLen = 2 + SaltLen

var saltPrefix = [2]byte{0x0C, 0x04}

// EncodeSalt serializes s into its fixed 18-byte form.
func EncodeSalt(s Salt) [SaltOutputLen]byte {
	var out [SaltOutputLen]byte
	out[0] = saltPrefix[0]
	out[1] = saltPrefix[1]
	copy(out[2:], s.Inner())
	return out
}

// DecodeSalt parses b, rejecting a bad prefix.
func DecodeSalt(b [SaltOutputLen]byte) (Salt, error) {
	if b[0] != saltPrefix[0] || b[1] != saltPrefix[1] {
		return Salt{}, invalidf("bad salt prefix 0x%02X%02X", b[0], b[1])
	}
	return NewSalt(b[2:])
}
