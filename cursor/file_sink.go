package cursor

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

const fileSinkBufferSize = 64 << 10

// FileSink streams bytes into a temporary file next to the destination.
// Flush makes the bytes durable and atomically renames the temporary file
// over the destination; Close without a successful Flush discards them.
type FileSink struct {
	core
	path string
	tmp  *os.File
	bw   *bufio.Writer
}

// NewFileSink prepares a sink that will replace path on Flush.
func NewFileSink(path string) (*FileSink, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".neptkit-tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	bw := bufio.NewWriterSize(tmp, fileSinkBufferSize)
	return &FileSink{core: core{w: bw}, path: path, tmp: tmp, bw: bw}, nil
}

// Path returns the destination path.
func (f *FileSink) Path() string { return f.path }

// Flush writes out buffered bytes, syncs them to stable storage and moves
// the file into place. The sink accepts no further writes afterwards.
func (f *FileSink) Flush() error {
	if f.tmp == nil {
		return ErrSinkClosed
	}
	tmpPath := f.tmp.Name()
	if err := f.bw.Flush(); err != nil {
		f.abort()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := syncFile(f.tmp); err != nil {
		f.abort()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.tmp.Close(); err != nil {
		f.tmp = nil
		f.w = nil
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	f.tmp = nil
	f.w = nil
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Close releases the sink. Unflushed bytes are discarded.
func (f *FileSink) Close() error {
	if f.tmp == nil {
		return nil
	}
	f.abort()
	return nil
}

func (f *FileSink) abort() {
	name := f.tmp.Name()
	_ = f.tmp.Close()
	_ = os.Remove(name)
	f.tmp = nil
	f.w = nil
}
