// Package fileid generates record identifiers for the vault collections.
package fileid

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

const (
	alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLen = 9
)

// New returns an identifier of the form <prefix>_<unix millis>_<suffix>,
// where the suffix is 9 characters drawn from a 36-letter alphabet. That
// leaves 36^9 possibilities per millisecond, so collisions are negligible
// without a central counter. Ids sort roughly by creation time as a side
// effect; callers must rely on uniqueness only.
func New(prefix string) string {
	var b [suffixLen]byte
	_, _ = io.ReadFull(rand.Reader, b[:])
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}

	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), b[:])
}
