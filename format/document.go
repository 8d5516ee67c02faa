package format

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/joshuapare/neptkit/cursor"
	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/format/cl3"
	"github.com/joshuapare/neptkit/format/stcm"
	"github.com/joshuapare/neptkit/format/stsc"
	"github.com/joshuapare/neptkit/item"
)

// ErrUnknownFormat is returned when no parser recognizes a file.
var ErrUnknownFormat = errors.New("format: unrecognized file")

// Fingerprint hashes a serialized file.
func Fingerprint(data []byte) uint64 { return xxhash.Sum64(data) }

// Parse runs the parser for kind over ctx and returns the top-level record
// it produced. KindUnknown detects the kind from the file contents.
func Parse(ctx *item.Context, kind Kind) (item.Item, Kind, error) {
	if kind == KindUnknown {
		kind = Detect(ctx.Data())
	}
	var (
		root item.Item
		err  error
	)
	switch kind {
	case KindCL3:
		root, err = cl3.Parse(ctx)
	case KindSTCM:
		root, err = stcm.Parse(ctx)
	case KindSTSC:
		root, err = stsc.Parse(ctx)
	default:
		return nil, kind, fmt.Errorf("%w: %w", ErrUnknownFormat, errs.ErrSignature)
	}
	if err != nil {
		return nil, kind, fmt.Errorf("parse %s: %w", kind, err)
	}
	return root, kind, nil
}

// Document is a parsed file.
type Document struct {
	Path string
	Kind Kind
	Ctx  *item.Context
	Root item.Item

	sum uint64
}

// Open maps the file at path and parses it. kind may be KindUnknown to
// detect the format.
func Open(path string, kind Kind, opts ...item.Option) (*Document, error) {
	ctx, err := item.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(path, ctx, kind)
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// FromBytes parses data, which must not be modified while the Document is
// in use. name is only used in messages.
func FromBytes(name string, data []byte, kind Kind, opts ...item.Option) (*Document, error) {
	ctx := item.NewContext(data, opts...)
	doc, err := newDocument(name, ctx, kind)
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

func newDocument(path string, ctx *item.Context, kind Kind) (*Document, error) {
	root, kind, err := Parse(ctx, kind)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Info("document loaded",
		"path", path, "kind", kind.String(), "size", ctx.Size(), "items", len(ctx.Items()))
	return &Document{
		Path: path,
		Kind: kind,
		Ctx:  ctx,
		Root: root,
		sum:  Fingerprint(ctx.Data()),
	}, nil
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) { return d.Ctx.Bytes() }

// Unchanged reports whether the document still serializes to exactly the
// bytes it was loaded from.
func (d *Document) Unchanged() (bool, error) {
	out, err := d.Ctx.Bytes()
	if err != nil {
		return false, err
	}
	return bytes.Equal(out, d.Ctx.Data()), nil
}

// Sum is the fingerprint of the bytes the document was loaded from.
func (d *Document) Sum() uint64 { return d.sum }

// Save re-validates every record and writes the document to path. The
// destination is replaced atomically and is left untouched if validation
// or serialization fails.
func (d *Document) Save(path string) error {
	if err := d.Ctx.Validate(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	sink, err := cursor.NewFileSink(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer sink.Close()

	if err := d.Ctx.Dump(sink); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.Ctx.Logger().Info("document saved", "path", path, "size", sink.Tell())
	return nil
}

// Close releases the document's items and input mapping.
func (d *Document) Close() error { return d.Ctx.Close() }
