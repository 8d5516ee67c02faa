package buf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	require.Equal(t, uint16(0x2301), U16(data, 0))
	require.Equal(t, uint32(0x67452301), U32(data, 0))
	require.Equal(t, uint64(0xefcdab8967452301), U64(data, 0))
	require.Equal(t, uint32(0xefcdab89), U32(data, 4))

	out := make([]byte, 14)
	PutU16(out, 0, 0x2301)
	PutU32(out, 2, 0x67452301)
	PutU64(out, 6, 0xefcdab8967452301)
	require.Equal(t, []byte{0x01, 0x23, 0x01, 0x23, 0x45, 0x67, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}, out)
}

func TestFixedString(t *testing.T) {
	field := make([]byte, 8)
	for i := range field {
		field[i] = 0xff
	}
	PutFixedString(field, 0, 8, "main")
	require.Equal(t, []byte{'m', 'a', 'i', 'n', 0, 0, 0, 0}, field)
	require.Equal(t, "main", FixedString(field, 0, 8))

	PutFixedString(field, 0, 8, "overlong_name")
	require.Equal(t, "overlong", FixedString(field, 0, 8))
}
