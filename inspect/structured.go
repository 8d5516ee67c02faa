package inspect

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/joshuapare/neptkit/item"
)

// Listing is the machine-readable form of a Context.
type Listing struct {
	Size   int     `json:"size" cbor:"size"`
	Items  []Node  `json:"items" cbor:"items"`
	Labels []Label `json:"labels" cbor:"labels"`
}

// Node describes one item.
type Node struct {
	Key    int      `json:"key" cbor:"key"`
	Pos    int      `json:"pos" cbor:"pos"`
	Size   int      `json:"size" cbor:"size"`
	Kind   string   `json:"kind" cbor:"kind"`
	Labels []string `json:"labels,omitempty" cbor:"labels,omitempty"`
	Text   string   `json:"text,omitempty" cbor:"text,omitempty"`
	Raw    []byte   `json:"raw,omitempty" cbor:"raw,omitempty"`
}

// Label describes one label and where it currently resolves.
type Label struct {
	Name   string `json:"name" cbor:"name"`
	Pos    int    `json:"pos" cbor:"pos"`
	Item   int    `json:"item" cbor:"item"`
	Offset int    `json:"offset" cbor:"offset"`
}

var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("inspect: CBOR encoder initialization failed: " + err.Error())
	}
}

// Build collects the listing of ctx. Positions are current serialized
// offsets.
func Build(ctx *item.Context, opts Options) (*Listing, error) {
	out := &Listing{Size: ctx.CurrentSize(), Labels: []Label{}}
	pos := 0
	for _, it := range ctx.Items() {
		n := Node{Key: it.Key(), Pos: pos, Size: it.Size(), Kind: it.Kind()}
		for _, l := range it.Labels() {
			n.Labels = append(n.Labels, l.Name())
		}
		if raw, ok := it.(*item.RawItem); ok {
			if opts.ShowRaw {
				b := raw.Bytes()
				n.Raw = b[:min(len(b), opts.maxRaw())]
			}
		} else {
			var sb strings.Builder
			if err := it.Inspect(&sb); err != nil {
				return nil, err
			}
			n.Text = strings.TrimSuffix(sb.String(), "\n")
		}
		out.Items = append(out.Items, n)
		pos += it.Size()
	}
	for _, l := range ctx.Labels() {
		p := l.Ptr()
		out.Labels = append(out.Labels, Label{
			Name:   l.Name(),
			Pos:    ctx.ToFilePos(p),
			Item:   p.Item.Key(),
			Offset: p.Offset,
		})
	}
	return out, nil
}

func writeJSON(w io.Writer, ctx *item.Context, opts Options) error {
	l, err := Build(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

func writeCBOR(w io.Writer, ctx *item.Context, opts Options) error {
	l, err := Build(ctx, opts)
	if err != nil {
		return err
	}
	return WriteCBOR(w, l)
}

// WriteCBOR encodes v with the same deterministic settings as the cbor
// listing format.
func WriteCBOR(w io.Writer, v any) error {
	return encMode.NewEncoder(w).Encode(v)
}
