// Package header implements the binary codec for the encrypted-file header:
// a framed, tagged, fixed-offset layout that carries everything a decryptor
// needs to locate and unwrap a content-encryption key, then decrypt any
// attached metadata objects. The package never performs cryptography itself;
// it only encodes and decodes typed values handed to it by a collaborator.
package header

import (
	"errors"
	"fmt"
)

// ErrValidity is the single error kind raised whenever input bytes violate
// the wire format: a magic/tag mismatch, an unknown discriminant, an
// algorithm/nonce mismatch, an encoded object too short for its fixed
// fields or whose declared data length disagrees with its bytes, or an
// object length prefix above MaxObjectDataLen. A short read from the
// reader in DecodeHeader is returned as the reader's I/O error (wrapped
// with context), not as ErrValidity.
var ErrValidity = errors.New("header: invalid encoding")

// invalidf wraps ErrValidity with a formatted message so callers get a
// specific reason while errors.Is(err, ErrValidity) still holds.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidity, fmt.Sprintf(format, args...))
}
