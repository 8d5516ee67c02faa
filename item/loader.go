package item

import (
	"fmt"

	"github.com/joshuapare/neptkit/internal/mmfile"
)

// Open maps the file at path read-only and seeds a Context over it. The
// mapping is released by Context.Close.
func Open(path string, opts ...Option) (*Context, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	opts = append(opts, WithCloser(cleanup))
	return NewContext(data, opts...), nil
}
