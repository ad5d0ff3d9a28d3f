package header

// HashingAlgorithmOutputLen is the compile-time constant on-wire length of
// HashingAlgorithm: one discriminant byte plus the nested Params byte.
const HashingAlgorithmOutputLen = 1 + ParamsOutputLen

const (
	hashingArgon2idTag      byte = 0xF2
	hashingBlake3BalloonTag byte = 0xA8
)

// EncodeHashingAlgorithm serializes h into its fixed 2-byte form.
func EncodeHashingAlgorithm(h HashingAlgorithm) ([HashingAlgorithmOutputLen]byte, error) {
	var out [HashingAlgorithmOutputLen]byte

	var tag byte
	switch h.Kind {
	case HashingArgon2id:
		tag = hashingArgon2idTag
	case HashingBlake3Balloon:
		tag = hashingBlake3BalloonTag
	default:
		return out, invalidf("unknown hashing algorithm kind %d", h.Kind)
	}

	paramsByte, err := EncodeParams(h.Params)
	if err != nil {
		return out, err
	}

	out[0] = tag
	out[1] = paramsByte
	return out, nil
}

// DecodeHashingAlgorithm parses b, rejecting an unknown discriminant byte.
func DecodeHashingAlgorithm(b [HashingAlgorithmOutputLen]byte) (HashingAlgorithm, error) {
	var kind HashingKind
	switch b[0] {
	case hashingArgon2idTag:
		kind = HashingArgon2id
	case hashingBlake3BalloonTag:
		kind = HashingBlake3Balloon
	default:
		return HashingAlgorithm{}, invalidf("unknown hashing algorithm tag 0x%02X", b[0])
	}

	params, err := DecodeParams(b[1])
	if err != nil {
		return HashingAlgorithm{}, err
	}

	return HashingAlgorithm{Kind: kind, Params: params}, nil
}
