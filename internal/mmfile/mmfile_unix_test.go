//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bin")
	want := []byte("STCM2L\x00\x00\xde\xad\xbe\xef")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	data, release, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, want, data)
	require.NoError(t, release())
	require.NoError(t, release(), "second release is a no-op")
}

func TestMapZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	data, release, err := Map(path)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NotNil(t, release)
	require.NoError(t, release())
}

func TestMapMissing(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "nope.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
