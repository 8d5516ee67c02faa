package stcm

// Magic is the prefix of the header's message field.
var Magic = []byte("STCM2L")

const (
	// HeaderSize is the size of the file header.
	HeaderSize = 0x30

	// MsgSize is the size of the header's free-form message field.
	MsgSize = 0x20

	// ExportEntrySize is the size of one export table entry.
	ExportEntrySize = 0x28

	// ExportNameSize is the size of an export's NUL-padded name.
	ExportNameSize = 0x20

	// CollectionLinkHeaderSize is the size of the collection-link header.
	CollectionLinkHeaderSize = 0x40

	// CollectionLinkEntrySize is the size of one collection-link entry.
	CollectionLinkEntrySize = 0x20
)

// ExportType tells code exports from data exports.
type ExportType uint32

const (
	ExportCode ExportType = 0
	ExportData ExportType = 1
)

func (t ExportType) String() string {
	switch t {
	case ExportCode:
		return "CODE"
	case ExportData:
		return "DATA"
	default:
		return "UNKNOWN"
	}
}
