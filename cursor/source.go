package cursor

import (
	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/internal/buf"
)

// Source is a forward-only reader over a window of a file's bytes.
// base is the absolute file offset of data[0]; fileSize is the size of the
// whole file, which validators compare offsets against.
type Source struct {
	data     []byte
	pos      int
	base     int
	fileSize int
}

// NewSource returns a cursor over data, which starts at absolute offset
// base inside a file of fileSize bytes.
func NewSource(data []byte, base, fileSize int) *Source {
	return &Source{data: data, base: base, fileSize: fileSize}
}

// Tell reports the absolute file offset of the next byte to be read.
func (s *Source) Tell() int { return s.base + s.pos }

// Size reports the total size of the underlying file.
func (s *Source) Size() int { return s.fileSize }

// Remaining reports how many bytes are left in this cursor's window.
func (s *Source) Remaining() int { return len(s.data) - s.pos }

// Len reports the size of this cursor's window.
func (s *Source) Len() int { return len(s.data) }

// CheckRemaining fails with a truncation error unless n more bytes can be read.
func (s *Source) CheckRemaining(n int) error {
	if n < 0 || n > s.Remaining() {
		return errs.Truncated(int64(s.Tell()), n, s.Remaining())
	}
	return nil
}

// Read returns the next n bytes. The slice aliases the underlying buffer.
func (s *Source) Read(n int) ([]byte, error) {
	if err := s.CheckRemaining(n); err != nil {
		return nil, err
	}
	out := s.data[s.pos : s.pos+n]
	s.pos += n
	return out, nil
}

// Skip advances the cursor by n bytes.
func (s *Source) Skip(n int) error {
	_, err := s.Read(n)
	return err
}

// ReadU8 reads one byte.
func (s *Source) ReadU8() (uint8, error) {
	b, err := s.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a little-endian uint16.
func (s *Source) ReadU16() (uint16, error) {
	b, err := s.Read(2)
	if err != nil {
		return 0, err
	}
	return buf.U16(b, 0), nil
}

// ReadU32 reads a little-endian uint32.
func (s *Source) ReadU32() (uint32, error) {
	b, err := s.Read(4)
	if err != nil {
		return 0, err
	}
	return buf.U32(b, 0), nil
}

// ReadU64 reads a little-endian uint64.
func (s *Source) ReadU64() (uint64, error) {
	b, err := s.Read(8)
	if err != nil {
		return 0, err
	}
	return buf.U64(b, 0), nil
}

// ReadFixedString reads an n-byte field and returns its contents up to the
// first NUL byte.
func (s *Source) ReadFixedString(n int) (string, error) {
	b, err := s.Read(n)
	if err != nil {
		return "", err
	}
	return buf.FixedString(b, 0, n), nil
}

// ReadCString reads bytes up to and including a NUL terminator and returns
// them without the terminator.
func (s *Source) ReadCString() ([]byte, error) {
	rest := s.data[s.pos:]
	for i, c := range rest {
		if c == 0 {
			out := rest[:i]
			s.pos += i + 1
			return out, nil
		}
	}
	return nil, errs.Truncated(int64(s.Tell()), len(rest)+1, len(rest))
}

// Sub returns a fresh cursor over n bytes starting off bytes into this
// cursor's window. The receiver's position is not affected.
func (s *Source) Sub(off, n int) (*Source, error) {
	window, ok := buf.Slice(s.data, off, n)
	if !ok {
		avail := len(s.data) - off
		if avail < 0 {
			avail = 0
		}
		return nil, errs.Truncated(int64(s.base+off), n, avail)
	}
	return &Source{data: window, base: s.base + off, fileSize: s.fileSize}, nil
}
