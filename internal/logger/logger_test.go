package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestInitFile(t *testing.T) {
	t.Cleanup(Discard)
	path := filepath.Join(t.TempDir(), "neptkit.log")

	closeFn, err := Init(Options{Level: slog.LevelDebug, File: path})
	require.NoError(t, err)
	L.Debug("split", "key", 0x18)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"split"`)
	require.Contains(t, string(data), `"key":24`)
}
