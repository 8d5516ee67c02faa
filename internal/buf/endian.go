// Package buf contains bounds arithmetic and little-endian field helpers
// used when decoding and encoding fixed record layouts.
package buf

import "encoding/binary"

// Record layouts are built in a scratch slice with the Put helpers and
// handed to a sink in one write; the Read helpers do the reverse for
// slices already bounds-checked by a cursor.

// U16 reads a little-endian uint16 at off.
func U16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }

// U32 reads a little-endian uint32 at off.
func U32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

// U64 reads a little-endian uint64 at off.
func U64(b []byte, off int) uint64 { return binary.LittleEndian.Uint64(b[off:]) }

// PutU16 stores v little-endian at off.
func PutU16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }

// PutU32 stores v little-endian at off.
func PutU32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }

// PutU64 stores v little-endian at off.
func PutU64(b []byte, off int, v uint64) { binary.LittleEndian.PutUint64(b[off:], v) }

// PutFixedString copies s into the n-byte field at off, zero filling the
// remainder. s is truncated if longer than the field.
func PutFixedString(b []byte, off, n int, s string) {
	field := b[off : off+n]
	c := copy(field, s)
	clear(field[c:])
}

// FixedString returns the bytes of an n-byte field up to the first NUL.
func FixedString(b []byte, off, n int) string {
	field := b[off : off+n]
	for i, c := range field {
		if c == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}
