// Package cl3 decodes CL3 archives: a fixed header pointing at a table of
// section descriptors, each of which names a blob of section data.
//
// Layout (little-endian):
//
//	0x00  "CL3L"
//	0x04  field_04      always 0
//	0x08  field_08      always 3
//	0x0c  num_sections
//	0x10  secs_offset   -> num_sections * 0x50 byte descriptors
//	0x14  field_14      always 0
//
// Every structure becomes its own item; offsets are held as labels and
// recomputed when the archive is dumped.
package cl3
