package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeErrorMessage(t *testing.T) {
	err := Invalid("Stcm::CollectionLinkHeaderItem::Header", "count", 0x40, uint32(7))
	require.Equal(t,
		"decode Stcm::CollectionLinkHeaderItem::Header.count at 0x40 (value 7): validation failed",
		err.Error())
	require.ErrorIs(t, err, ErrValidation)
}

func TestTruncated(t *testing.T) {
	err := Truncated(0x10, 4, 2)
	require.ErrorIs(t, err, ErrTruncated)
	require.Contains(t, err.Error(), "at 0x10")
	require.Contains(t, err.Error(), "need 4 bytes, 2 available")
}

func TestWithRecord(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Truncated(3, 8, 1))
	got := WithRecord(wrapped, "Cl3::Header")

	var de *DecodeError
	require.True(t, errors.As(got, &de))
	require.Equal(t, "Cl3::Header", de.Record)
	require.ErrorIs(t, got, ErrTruncated)

	plain := errors.New("boom")
	require.Same(t, plain, WithRecord(plain, "x"))

	named := Invalid("A", "b", -1, nil)
	require.Same(t, named, WithRecord(named, "C"))
	require.Equal(t, "decode A.b: validation failed", named.Error())
}
