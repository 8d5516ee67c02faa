// Package stsc decodes STSC script headers and the strings embedded in the
// script, and converts those strings to and from an editable text form.
//
// Header layout (little-endian):
//
//	0x00  "STSC"
//	0x04  entry_point
//	0x08  flags
//	0x0c  [32]byte         if flags&1
//	      [7]uint16        if flags&2
//	      uint16           if flags&4
//
// The instruction stream starting at entry_point is not decoded; strings
// are marked by offset with CreateString.
package stsc
