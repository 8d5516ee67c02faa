//go:build linux

package cursor

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes file data to disk; metadata is covered by the rename.
func syncFile(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
