//go:build !linux && !darwin

package cursor

import "os"

func syncFile(f *os.File) error {
	return f.Sync()
}
