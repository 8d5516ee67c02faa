// Package inspect renders a parsed file for people and tools.
package inspect

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/neptkit/item"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// DefaultMaxRawBytes is how many bytes of a raw region are shown when
// Options.MaxRawBytes is zero.
const DefaultMaxRawBytes = 16

// Options controls rendering.
type Options struct {
	Format      string // text, json or cbor; empty means text
	ShowRaw     bool   // include the leading bytes of raw regions
	MaxRawBytes int    // cap on shown raw bytes per region
}

func (o Options) maxRaw() int {
	if o.MaxRawBytes <= 0 {
		return DefaultMaxRawBytes
	}
	return o.MaxRawBytes
}

// Write renders ctx to w.
func Write(w io.Writer, ctx *item.Context, opts Options) error {
	switch strings.ToLower(opts.Format) {
	case "", FormatText:
		return writeText(w, ctx, opts)
	case FormatJSON:
		return writeJSON(w, ctx, opts)
	case FormatCBOR:
		return writeCBOR(w, ctx, opts)
	default:
		return fmt.Errorf("inspect: unknown format %q", opts.Format)
	}
}
