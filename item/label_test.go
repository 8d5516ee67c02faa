package item

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLabelTo_Interns(t *testing.T) {
	ctx := NewContext(seq(16))

	a, err := ctx.GetLabelTo(6)
	require.NoError(t, err)
	b, err := ctx.GetLabelTo(6)
	require.NoError(t, err)
	require.Same(t, a, b)
	require.Equal(t, "off_00000006", a.Name())

	// still interned after the region is split
	_, err = SplitCreateAt(ctx, 4, blobCtor(4))
	require.NoError(t, err)
	c, err := ctx.GetLabelTo(6)
	require.NoError(t, err)
	require.Same(t, a, c)

	got, ok := ctx.Label("off_00000006")
	require.True(t, ok)
	require.Same(t, a, got)
}

func TestCreateLabelFallback(t *testing.T) {
	ctx := NewContext(seq(16))

	entry, err := ctx.CreateLabelFallback("entry_point", 4)
	require.NoError(t, err)
	require.Equal(t, "entry_point", entry.Name())

	// existing label wins over the fallback name
	same, err := ctx.CreateLabelFallback("other", 4)
	require.NoError(t, err)
	require.Same(t, entry, same)

	// name clash gets a suffix
	second, err := ctx.CreateLabelFallback("entry_point", 8)
	require.NoError(t, err)
	require.Equal(t, "entry_point_0", second.Name())
	third, err := ctx.CreateLabelFallback("entry_point", 12)
	require.NoError(t, err)
	require.Equal(t, "entry_point_1", third.Name())

	names := []string{}
	for _, l := range ctx.Labels() {
		names = append(names, l.Name())
	}
	require.Equal(t, []string{"entry_point", "entry_point_0", "entry_point_1"}, names)
}

func TestAddAndRenameLabel(t *testing.T) {
	ctx := NewContext(seq(16))
	p, err := ctx.Pointer(2)
	require.NoError(t, err)

	l, err := ctx.AddLabel("start", p)
	require.NoError(t, err)
	_, err = ctx.AddLabel("start", p)
	require.ErrorIs(t, err, ErrLabelExists)

	other, err := ctx.AddLabel("other", p)
	require.NoError(t, err)
	require.Len(t, ctx.Root().base().LabelsAt(2), 2)

	require.ErrorIs(t, ctx.RenameLabel(l, "other"), ErrLabelExists)
	require.NoError(t, ctx.RenameLabel(l, "begin"))
	require.NoError(t, ctx.RenameLabel(l, "begin"))
	_, ok := ctx.Label("start")
	require.False(t, ok)
	got, ok := ctx.Label("begin")
	require.True(t, ok)
	require.Same(t, l, got)
	require.Same(t, other, ctx.Root().base().LabelsAt(2)[1])
	require.NoError(t, ctx.CheckInvariants())
}

func TestAddLabel_ForeignPointerPanics(t *testing.T) {
	a := NewContext(seq(4))
	b := NewContext(seq(4))
	p, err := b.Pointer(0)
	require.NoError(t, err)
	require.Panics(t, func() { _, _ = a.AddLabel("x", p) })
	require.Panics(t, func() { _, _ = a.AddLabel("y", Pointer{Item: a.Root(), Offset: 4}) })
}

// Two references sharing a label both follow a move.
func TestMoveLabel_SharedByTwoRecords(t *testing.T) {
	data := make([]byte, 24)
	data[0] = 16 // ref -> 16
	data[4] = 16 // ref -> 16
	ctx := NewContext(data)

	r1, err := SplitCreateAt(ctx, 0, parseRef)
	require.NoError(t, err)
	r2, err := SplitCreateAt(ctx, 4, parseRef)
	require.NoError(t, err)
	require.Same(t, r1.target, r2.target)

	requireRoundTrip(t, ctx, data)

	dst, err := ctx.Pointer(20)
	require.NoError(t, err)
	ctx.MoveLabel(r1.target, dst)
	require.NoError(t, ctx.CheckInvariants())

	out, err := ctx.Bytes()
	require.NoError(t, err)
	require.Equal(t, byte(20), out[0])
	require.Equal(t, byte(20), out[4])
	require.Equal(t, data[8:], out[8:])
}

// Records may refer to each other in a cycle; only labels connect them.
func TestLabels_CyclicReferences(t *testing.T) {
	data := []byte{4, 0, 0, 0, 0, 0, 0, 0}
	ctx := NewContext(data)

	w := NewWorklist(ctx)
	var visit Visit
	visit = func(ptr Pointer) ([]Task, error) {
		ref, err := SplitCreate(ptr, parseRef)
		if err != nil {
			return nil, err
		}
		return []Task{{Label: ref.target, Visit: visit}}, nil
	}
	root, err := ctx.CreateLabelFallback("root", 0)
	require.NoError(t, err)
	w.Push(Task{Label: root, Visit: visit})
	require.NoError(t, w.Run())

	require.Equal(t, []string{"test.ref@0+4", "test.ref@4+4", "eof@8+0"}, kinds(ctx))
	a, _ := At0[*refItem](root.Ptr())
	b, _ := At0[*refItem](a.target.Ptr())
	require.Same(t, root, b.target)
	requireRoundTrip(t, ctx, data)
}

func TestLabelAtEOF(t *testing.T) {
	data := make([]byte, 8)
	data[0] = 8
	ctx := NewContext(data)
	ref, err := SplitCreateAt(ctx, 0, parseRef)
	require.NoError(t, err)
	_, isEOF := ref.target.Ptr().Item.(*EOFItem)
	require.True(t, isEOF)

	// growing the tail moves EOF and with it the dumped offset
	tail, err := SplitCreateAt(ctx, 4, blobCtor(4))
	require.NoError(t, err)
	tail.data = append(tail.data, 1, 2)
	out, err := ctx.Bytes()
	require.NoError(t, err)
	require.Equal(t, byte(10), out[0])
}
