package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/neptkit/format/stsc"
	"github.com/joshuapare/neptkit/internal/buf"
)

// writeScript writes a small STSC file: strings at 0x0c and 0x0f, entry
// point 0x20.
func writeScript(t *testing.T) string {
	t.Helper()
	b := make([]byte, 0x24)
	copy(b, stsc.Magic)
	buf.PutU32(b, 4, 0x20)
	copy(b[0x0c:], "\x82\xa0\x00")
	copy(b[0x0f:], "hi\x00")
	copy(b[0x20:], []byte{1, 2, 3, 4})
	path := filepath.Join(t.TempDir(), "script.stsc")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

// run executes neptool with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NEPTKIT_CONFIG", "")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		assert.Contains(t, output, want)
	}
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", writeScript(t))
	require.NoError(t, err)
	assertContains(t, out, []string{"stsc_header(@entry_point, 0)", "@entry_point:", "eof"})
}

func TestInspect_JSON(t *testing.T) {
	out, err := run(t, "inspect", "-f", "json", writeScript(t))
	require.NoError(t, err)
	var listing struct {
		Size  int `json:"size"`
		Items []struct {
			Kind string `json:"kind"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listing))
	assert.Equal(t, 0x24, listing.Size)
	assert.Equal(t, "stsc.header", listing.Items[0].Kind)
}

func TestInspect_WrongKind(t *testing.T) {
	_, err := run(t, "inspect", "--kind", "cl3", writeScript(t))
	require.Error(t, err)
}

func TestLabels(t *testing.T) {
	out, err := run(t, "labels", writeScript(t))
	require.NoError(t, err)
	assertContains(t, out, []string{"entry_point", "0x00000020"})
}

func TestRoundtrip(t *testing.T) {
	path := writeScript(t)
	out, err := run(t, "roundtrip", path, path)
	require.NoError(t, err)
	assertContains(t, out, []string{"ok    " + path, "stsc, ", "xxh64 ", "2 of 2 files reproduced"})

	bad := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(bad, []byte("nothing known"), 0o644))
	out, err = run(t, "roundtrip", path, bad)
	require.ErrorIs(t, err, errMismatch)
	assertContains(t, out, []string{"FAIL  " + bad, "1 of 2 files reproduced"})
}

func TestRoundtrip_Quiet(t *testing.T) {
	out, err := run(t, "roundtrip", "-q", writeScript(t))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExportImportTxt(t *testing.T) {
	path := writeScript(t)
	out, err := run(t, "export-txt", path, "--string", "0x0c", "--string", "15")
	require.NoError(t, err)
	assert.Equal(t, "あ\r\n"+stsc.Separator+"\r\n"+"hi\r\n"+stsc.Separator+"\r\n", out)

	txt := filepath.Join(t.TempDir(), "script.txt")
	edited := strings.Replace(out, "hi", "hello", 1)
	require.NoError(t, os.WriteFile(txt, []byte(edited), 0o644))

	patched := filepath.Join(t.TempDir(), "patched.stsc")
	_, err = run(t, "import-txt", path, txt, "--string", "0x0c", "--string", "0x0f", "-o", patched)
	require.NoError(t, err)

	got, err := os.ReadFile(patched)
	require.NoError(t, err)
	require.Len(t, got, 0x24+3)
	assert.Equal(t, uint32(0x23), buf.U32(got, 4))
	assert.Equal(t, "hello\x00", string(got[0x0f:0x15]))
	assert.Equal(t, []byte{1, 2, 3, 4}, got[0x23:])
}

func TestExportTxt_NeedsStsc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.cl3")
	b := make([]byte, 0x18)
	copy(b, "CL3L")
	buf.PutU32(b, 0x08, 3)
	buf.PutU32(b, 0x10, 0x18)
	require.NoError(t, os.WriteFile(path, b, 0o644))

	_, err := run(t, "export-txt", path)
	require.ErrorContains(t, err, "needs an stsc file")
}

func TestExportTxt_BadOffset(t *testing.T) {
	_, err := run(t, "export-txt", writeScript(t), "--string", "-4")
	require.ErrorContains(t, err, "invalid offset")
}

func TestRelabel(t *testing.T) {
	path := writeScript(t)
	_, err := run(t, "relabel", path, "entry_point", "--to", "0x0c", "--name", "start")
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, got, 0x24)
	assert.Equal(t, uint32(0x0c), buf.U32(got, 4))
}

func TestRelabel_Errors(t *testing.T) {
	path := writeScript(t)
	_, err := run(t, "relabel", path, "entry_point")
	require.ErrorContains(t, err, "nothing to do")

	_, err = run(t, "relabel", path, "missing", "--to", "0")
	require.ErrorContains(t, err, `no label named "missing"`)

	_, err = run(t, "relabel", path, "entry_point", "--to", "0x100")
	require.Error(t, err)
}

func TestRelabel_RejectsInvalidTarget(t *testing.T) {
	path := writeScript(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = run(t, "relabel", path, "entry_point", "--to", "0x04")
	require.ErrorContains(t, err, "entry_point")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assertContains(t, out, []string{"neptool dev", "commit: none"})
}
