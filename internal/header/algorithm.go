package header

// AlgorithmOutputLen is the compile-time constant on-wire length of Algorithm.
const AlgorithmOutputLen = 2

const algorithmPrefix byte = 0x0D

const (
	algorithmAes256GcmTag         byte = 0xD1
	algorithmAes256GcmSivTag      byte = 0xD3
	algorithmXChaCha20Poly1305Tag byte = 0xD5
)

// EncodeAlgorithm serializes a into its fixed 2-byte form: a constant
// prefix byte followed by the algorithm discriminant.
func EncodeAlgorithm(a Algorithm) ([AlgorithmOutputLen]byte, error) {
	var out [AlgorithmOutputLen]byte

	var tag byte
	switch a {
	case Aes256Gcm:
		tag = algorithmAes256GcmTag
	case Aes256GcmSiv:
		tag = algorithmAes256GcmSivTag
	case XChaCha20Poly1305:
		tag = algorithmXChaCha20Poly1305Tag
	default:
		return out, invalidf("unknown algorithm variant %d", a)
	}

	out[0] = algorithmPrefix
	out[1] = tag
	return out, nil
}

// DecodeAlgorithm parses b, rejecting a bad prefix byte or an unknown
// discriminant.
func DecodeAlgorithm(b [AlgorithmOutputLen]byte) (Algorithm, error) {
	if b[0] != algorithmPrefix {
		return 0, invalidf("bad algorithm prefix 0x%02X", b[0])
	}

	switch b[1] {
	case algorithmAes256GcmTag:
		return Aes256Gcm, nil
	case algorithmAes256GcmSivTag:
		return Aes256GcmSiv, nil
	case algorithmXChaCha20Poly1305Tag:
		return XChaCha20Poly1305, nil
	default:
		return 0, invalidf("unknown algorithm tag 0x%02X", b[1])
	}
}
