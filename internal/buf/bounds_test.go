package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(10, 5)
	require.True(t, ok)
	require.Equal(t, 15, sum)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	require.False(t, ok, "adding to MaxInt must overflow")
	_, ok = AddOverflowSafe(math.MinInt, -1)
	require.False(t, ok, "subtracting from MinInt must underflow")
}

func TestMulOverflowSafe(t *testing.T) {
	p, ok := MulOverflowSafe(0x20, 3)
	require.True(t, ok)
	require.Equal(t, 0x60, p)

	p, ok = MulOverflowSafe(0, math.MaxInt)
	require.True(t, ok)
	require.Zero(t, p)

	_, ok = MulOverflowSafe(math.MaxInt/2, 3)
	require.False(t, ok)
	_, ok = MulOverflowSafe(-1, 3)
	require.False(t, ok)
}

func TestSpanEnd(t *testing.T) {
	tests := []struct {
		name                   string
		limit, off, count, elm int
		want                   int
		wantErr                string
	}{
		{name: "fits", limit: 0x100, off: 0x40, count: 2, elm: 0x20, want: 0x80},
		{name: "exact end", limit: 0x80, off: 0x40, count: 2, elm: 0x20, want: 0x80},
		{name: "empty", limit: 0x10, off: 0x10, count: 0, elm: 0x20, want: 0x10},
		{name: "past end", limit: 0x7f, off: 0x40, count: 2, elm: 0x20, wantErr: "bounds"},
		{name: "huge count", limit: 0x100, off: 0, count: math.MaxInt / 2, elm: 0x20, wantErr: "overflow"},
		{name: "negative offset", limit: 0x100, off: -1, count: 1, elm: 1, wantErr: "negative offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SpanEnd(tt.limit, tt.off, tt.count, tt.elm)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	got, ok := Slice(data, 1, 3)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)

	_, ok = Slice(data, 4, 2)
	require.False(t, ok)
	_, ok = Slice(data, -1, 1)
	require.False(t, ok)
	_, ok = Slice(data, 1, -1)
	require.False(t, ok)
}

func TestAlignUp(t *testing.T) {
	require.Equal(t, 0, AlignUp(0, 4))
	require.Equal(t, 4, AlignUp(1, 4))
	require.Equal(t, 4, AlignUp(4, 4))
	require.Equal(t, 0x20, AlignUp(0x11, 0x10))
	require.Equal(t, 7, AlignUp(7, 1))
}
