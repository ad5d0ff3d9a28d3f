// Package randsrc provides the CSPRNG collaborator the header codec draws
// on for random-fill keyslot padding. It is a thin wrapper so callers don't
// reach for crypto/rand.Reader directly and so tests can substitute a
// deterministic source.
package randsrc

import (
	"crypto/rand"
	"io"
)

// System is the default CSPRNG: Go's crypto/rand.Reader. It is safe for
// concurrent use by multiple goroutines, same as crypto/rand.Reader itself.
var System io.Reader = rand.Reader
