package fileid

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("has the expected shape", func(t *testing.T) {
		id := New("file")

		parts := strings.Split(id, "_")
		require.Len(t, parts, 3)
		assert.Equal(t, "file", parts[0])

		_, err := strconv.ParseInt(parts[1], 10, 64)
		require.NoError(t, err)

		require.Len(t, parts[2], 9)
		for _, r := range parts[2] {
			assert.Contains(t, alphabet, string(r))
		}
	})

	t.Run("ids generated in a tight loop are distinct", func(t *testing.T) {
		const n = 10000

		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			seen[New("file")] = struct{}{}
		}

		require.Len(t, seen, n)
	})
}
