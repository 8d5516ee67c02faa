package cl3

// Magic is the signature at the start of every CL3 archive.
var Magic = []byte{'C', 'L', '3', 'L'}

const (
	// HeaderSize is the size of the archive header.
	HeaderSize = 0x18

	// Field08Value is the only value seen in the header's field_08.
	Field08Value = 3

	// SectionSize is the size of one section descriptor.
	SectionSize = 0x50

	// NameSize is the size of the NUL-padded section name field.
	NameSize = 0x20

	// sectionReserved is the number of reserved u32 fields trailing a
	// section descriptor (field_2c .. field_4c).
	sectionReserved = 9
)
