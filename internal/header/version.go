package header

// HeaderVersionOutputLen is the compile-time constant on-wire length of
// HeaderVersion.
const HeaderVersionOutputLen = 2

var headerVersionV1Tag = [2]byte{0xDA, 0xDA}

// EncodeHeaderVersion serializes v into its fixed 2-byte discriminant.
func EncodeHeaderVersion(v HeaderVersion) ([HeaderVersionOutputLen]byte, error) {
	switch v {
	case HeaderVersionV1:
		return headerVersionV1Tag, nil
	default:
		return [HeaderVersionOutputLen]byte{}, invalidf("unknown header version %d", v)
	}
}

// DecodeHeaderVersion parses b, rejecting any value other than the known
// variants. The version is read before any other field; a future version
// may change the layout that follows it.
func DecodeHeaderVersion(b [HeaderVersionOutputLen]byte) (HeaderVersion, error) {
	if b == headerVersionV1Tag {
		return HeaderVersionV1, nil
	}
	return 0, invalidf("unknown header version tag 0x%02X%02X", b[0], b[1])
}
