// Package kdf is the KDF collaborator for the header codec: it turns a
// HashingAlgorithm discriminant plus a Salt into an actual derived key. The
// header codec never calls into this package itself; it only encodes and
// decodes the HashingAlgorithm tag that selects between the two KDFs below.
package kdf

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/argon2"

	"github.com/hambosto/vaultheader/internal/header"
)

// Errors returned by the package.
var (
	ErrEmptyPassword = errors.New("kdf: password cannot be empty")
	ErrInvalidSalt   = errors.New("kdf: invalid salt length")
)

// keyLength is the fixed length of a derived key in bytes.
const keyLength = 32

// cost holds the concrete KDF cost knobs a Params difficulty level maps to.
// This mapping is collaborator policy, not wire format: the header only
// ever carries the Params discriminant.
type cost struct {
	memoryKiB  uint32
	iterations uint32
	threads    uint8
}

func costFor(p header.Params) cost {
	switch p {
	case header.ParamsStandard:
		return cost{memoryKiB: 64 * 1024, iterations: 3, threads: 4}
	case header.ParamsHardened:
		return cost{memoryKiB: 256 * 1024, iterations: 4, threads: 4}
	case header.ParamsParanoid:
		return cost{memoryKiB: 1024 * 1024, iterations: 6, threads: 4}
	default:
		return cost{memoryKiB: 64 * 1024, iterations: 3, threads: 4}
	}
}

// Derive derives a 32-byte key from password and salt, using whichever KDF
// and difficulty alg names.
func Derive(alg header.HashingAlgorithm, password, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	if len(salt) != header.SaltLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSalt, header.SaltLen, len(salt))
	}

	c := costFor(alg.Params)

	switch alg.Kind {
	case header.HashingArgon2id:
		return argon2.IDKey(password, salt, c.iterations, c.memoryKiB, c.threads, keyLength), nil
	case header.HashingBlake3Balloon:
		return balloon(password, salt, c), nil
	default:
		return nil, fmt.Errorf("kdf: unknown hashing algorithm kind %d", alg.Kind)
	}
}

// balloonBlockCap caps the number of memory blocks balloon() allocates
// regardless of the requested memory cost, so derivation stays fast for
// tests and fixture generation instead of scaling to the full Paranoid
// memory tier.
const balloonBlockCap = 64

// balloon implements balloon hashing over BLAKE3: it fills a buffer of
// blocks from password||salt, then repeatedly mixes each block with its
// predecessor and a pseudo-randomly chosen sibling block for c.iterations
// rounds, and returns the last block as the derived key. This is the
// memory-hard counterpart to Argon2id for HashingBlake3Balloon.
func balloon(password, salt []byte, c cost) []byte {
	blocks := int(c.memoryKiB / 1024)
	if blocks < 1 {
		blocks = 1
	}
	if blocks > balloonBlockCap {
		blocks = balloonBlockCap
	}

	buf := make([][32]byte, blocks)
	buf[0] = blake3.Sum256(append(append([]byte{}, password...), salt...))
	for i := 1; i < blocks; i++ {
		buf[i] = blake3.Sum256(buf[i-1][:])
	}

	var counter [8]byte
	for t := uint32(0); t < c.iterations; t++ {
		for i := 0; i < blocks; i++ {
			prev := buf[(i-1+blocks)%blocks]

			binary.LittleEndian.PutUint64(counter[:], uint64(t)<<32|uint64(i))
			mixSeed := blake3.Sum256(append(buf[i][:], counter[:]...))
			mixIdx := int(binary.LittleEndian.Uint64(mixSeed[:8]) % uint64(blocks))

			h := blake3.New()
			h.Write(prev[:])
			h.Write(buf[i][:])
			h.Write(buf[mixIdx][:])

			var out [32]byte
			copy(out[:], h.Sum(nil))
			buf[i] = out
		}
	}

	return append([]byte{}, buf[blocks-1][:]...)
}
