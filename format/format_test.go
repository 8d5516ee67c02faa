package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/format/cl3"
	"github.com/joshuapare/neptkit/format/stsc"
	"github.com/joshuapare/neptkit/internal/buf"
	"github.com/joshuapare/neptkit/item"
)

// cl3File is an archive with one section whose payload is "payload!".
func cl3File() []byte {
	b := make([]byte, cl3.HeaderSize+cl3.SectionSize+8)
	copy(b, cl3.Magic)
	buf.PutU32(b, 0x08, cl3.Field08Value)
	buf.PutU32(b, 0x0c, 1)
	buf.PutU32(b, 0x10, cl3.HeaderSize)
	sec := cl3.HeaderSize
	buf.PutFixedString(b, sec, cl3.NameSize, "FILE_COLLECTION")
	buf.PutU32(b, sec+0x24, 8)
	buf.PutU32(b, sec+0x28, uint32(sec+cl3.SectionSize))
	copy(b[sec+cl3.SectionSize:], "payload!")
	return b
}

func stcmFile() []byte {
	b := make([]byte, 0x70)
	copy(b, "STCM2L")
	buf.PutU32(b, 0x20, 0x30)
	buf.PutU32(b, 0x2c, 0x30)
	buf.PutU32(b, 0x30+0x04, 0x70)
	return b
}

func stscFile() []byte {
	b := make([]byte, 16)
	copy(b, stsc.Magic)
	buf.PutU32(b, 4, 12)
	return b
}

func TestDetect(t *testing.T) {
	assert.Equal(t, KindCL3, Detect(cl3File()))
	assert.Equal(t, KindSTCM, Detect(stcmFile()))
	assert.Equal(t, KindSTSC, Detect(stscFile()))
	assert.Equal(t, KindUnknown, Detect([]byte("regf")))
	assert.Equal(t, KindUnknown, Detect(nil))
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindCL3, KindSTCM, KindSTSC} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" Auto ")
	require.NoError(t, err)
	assert.Equal(t, KindUnknown, got)
	_, err = ParseKind("zip")
	require.Error(t, err)
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestFromBytes_RoundTripsEveryKind(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind Kind
		root string
	}{
		{"cl3", cl3File(), KindCL3, "cl3.header"},
		{"stcm", stcmFile(), KindSTCM, "stcm.header"},
		{"stsc", stscFile(), KindSTSC, "stsc.header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromBytes(tt.name, tt.data, KindUnknown)
			require.NoError(t, err)
			defer doc.Close()

			assert.Equal(t, tt.kind, doc.Kind)
			assert.Equal(t, tt.root, doc.Root.Kind())
			same, err := doc.Unchanged()
			require.NoError(t, err)
			assert.True(t, same)

			out, err := doc.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.data, out)
		})
	}
}

func TestFromBytes_Errors(t *testing.T) {
	_, err := FromBytes("x", []byte("nothing to see"), KindUnknown)
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.ErrorIs(t, err, errs.ErrSignature)

	// forcing the wrong parser fails on its magic check
	_, err = FromBytes("x", stscFile(), KindCL3)
	require.ErrorIs(t, err, errs.ErrSignature)
	require.ErrorContains(t, err, "parse cl3")
}

func TestDocument_EditAndSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.cl3")
	require.NoError(t, os.WriteFile(src, cl3File(), 0o644))

	doc, err := Open(src, KindUnknown)
	require.NoError(t, err)
	defer doc.Close()

	hdr := doc.Root.(*cl3.HeaderItem)
	data := hdr.Sections()[0].Data()
	require.NotNil(t, data)
	require.NoError(t, data.SetBytes([]byte("bigger payload")))

	same, err := doc.Unchanged()
	require.NoError(t, err)
	assert.False(t, same)

	dst := filepath.Join(dir, "out.cl3")
	require.NoError(t, doc.Save(dst))

	saved, err := os.ReadFile(dst)
	require.NoError(t, err)
	again, err := FromBytes(dst, saved, KindCL3)
	require.NoError(t, err)
	defer again.Close()
	secs := again.Root.(*cl3.HeaderItem).Sections()
	require.Len(t, secs, 1)
	assert.Equal(t, "FILE_COLLECTION", secs[0].Name())
	assert.Equal(t, []byte("bigger payload"), secs[0].Data().Bytes())

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDocument_SaveOverSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.stsc")
	require.NoError(t, os.WriteFile(path, stscFile(), 0o644))

	doc, err := Open(path, KindSTSC, item.WithAutoLabelPrefix("L"))
	require.NoError(t, err)
	require.NoError(t, doc.Save(path))
	require.NoError(t, doc.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stscFile(), got)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"), KindUnknown)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint([]byte("abc")), Fingerprint([]byte("abc")))
	assert.NotEqual(t, Fingerprint([]byte("abc")), Fingerprint([]byte("abd")))
}

func TestDocument_UnchangedComparesBytes(t *testing.T) {
	data := cl3File()
	doc, err := FromBytes("x.cl3", data, KindUnknown)
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, Fingerprint(data), doc.Sum())

	// same size, different contents
	payload := doc.Root.(*cl3.HeaderItem).Sections()[0].Data()
	require.NoError(t, payload.SetBytes([]byte("PAYLOAD!")))
	same, err := doc.Unchanged()
	require.NoError(t, err)
	assert.False(t, same)

	require.NoError(t, payload.SetBytes([]byte("payload!")))
	same, err = doc.Unchanged()
	require.NoError(t, err)
	assert.True(t, same)
}

func TestDocument_SaveRevalidates(t *testing.T) {
	doc, err := FromBytes("x.stsc", stscFile(), KindSTSC)
	require.NoError(t, err)
	defer doc.Close()

	entry, ok := doc.Ctx.Label("entry_point")
	require.True(t, ok)
	ptr, err := doc.Ctx.Pointer(4)
	require.NoError(t, err)
	doc.Ctx.MoveLabel(entry, ptr)

	dst := filepath.Join(t.TempDir(), "out.stsc")
	err = doc.Save(dst)
	require.ErrorIs(t, err, errs.ErrValidation)
	var de *errs.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Stsc::Header", de.Record)
	assert.Equal(t, "entry_point", de.Field)

	_, err = os.Stat(dst)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
