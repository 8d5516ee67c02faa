// Package stcm decodes the container structure of STCM2L script files:
// the file header, the export table and the collection-link table with the
// strings its entries name. Instruction streams are left raw; exported
// entry points are labelled so they stay addressable.
//
// Header layout (little-endian):
//
//	0x00  msg[0x20]               starts with "STCM2L"
//	0x20  export_offset           -> export_count * 0x28 byte entries
//	0x24  export_count
//	0x28  field_28                always 0
//	0x2c  collection_link_offset  -> 0x40 byte collection-link header
package stcm
