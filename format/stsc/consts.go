package stsc

// Magic is the signature at the start of every STSC file.
var Magic = []byte{'S', 'T', 'S', 'C'}

const (
	// BaseHeaderSize is the size of the header without optional blocks.
	BaseHeaderSize = 12

	// FlagExtra1 selects a 32 byte block after the base header.
	FlagExtra1 = 1 << 0
	// FlagExtra2 selects seven u16 fields.
	FlagExtra2 = 1 << 1
	// FlagExtra4 selects one u16 field.
	FlagExtra4 = 1 << 2

	flagsMask = FlagExtra1 | FlagExtra2 | FlagExtra4

	extra1Size   = 32
	extra2Fields = 7
)

// HeaderSize returns the header size selected by flags.
func HeaderSize(flags uint32) int {
	n := BaseHeaderSize
	if flags&FlagExtra1 != 0 {
		n += extra1Size
	}
	if flags&FlagExtra2 != 0 {
		n += extra2Fields * 2
	}
	if flags&FlagExtra4 != 0 {
		n += 2
	}
	return n
}
