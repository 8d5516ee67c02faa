// Package errs defines the error values shared by the cursor, item and
// format packages.
//
// Malformed input is always reported as a *DecodeError. The sentinel kinds
// below classify it so callers can branch with errors.Is instead of
// matching message text.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTruncated indicates a read ran past the end of the available bytes.
	ErrTruncated = errors.New("truncated input")
	// ErrValidation indicates a record field failed its structural check.
	ErrValidation = errors.New("validation failed")
	// ErrSignature indicates a record started with an unexpected magic tag.
	ErrSignature = errors.New("signature mismatch")
	// ErrOverlap indicates a split target is already covered by a typed record.
	ErrOverlap = errors.New("region already parsed")
	// ErrText indicates a text import did not line up with the document's strings.
	ErrText = errors.New("text import mismatch")
)

// DecodeError describes malformed input. Record and Field name the
// structure being decoded; Offset is the absolute file position involved,
// or -1 when unknown.
type DecodeError struct {
	Record string
	Field  string
	Offset int64
	Value  any
	Msg    string
	Err    error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString("decode")
	if e.Record != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Record)
	}
	if e.Field != "" {
		sb.WriteString(".")
		sb.WriteString(e.Field)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&sb, " at 0x%x", e.Offset)
	}
	if e.Value != nil {
		fmt.Fprintf(&sb, " (value %v)", e.Value)
	}
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Truncated builds the error returned by cursor bound checks.
func Truncated(pos int64, want, have int) *DecodeError {
	return &DecodeError{
		Offset: pos,
		Msg:    fmt.Sprintf("need %d bytes, %d available", want, have),
		Err:    ErrTruncated,
	}
}

// Invalid builds the error returned when a record field fails validation.
func Invalid(record, field string, offset int64, value any) *DecodeError {
	return &DecodeError{
		Record: record,
		Field:  field,
		Offset: offset,
		Value:  value,
		Err:    ErrValidation,
	}
}

// WithRecord returns err annotated with record when err is a *DecodeError
// that does not already name one. Other errors are returned unchanged.
func WithRecord(err error, record string) error {
	var de *DecodeError
	if errors.As(err, &de) && de.Record == "" {
		cp := *de
		cp.Record = record
		return &cp
	}
	return err
}
