package item

import (
	"fmt"

	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/internal/buf"
)

// Validator checks a decoded record field by field and keeps the first
// failure; later checks are skipped. Typical use:
//
//	v := item.NewValidator("Stcm::ExportsItem::Entry", pos)
//	v.OneOf("type", e.Type, ExportCode, ExportData)
//	v.Max("offset", int(e.Offset), fileSize)
//	return v.Err()
type Validator struct {
	record string
	offset int64
	err    *errs.DecodeError
}

// NewValidator starts validating record, decoded at file offset off.
func NewValidator(record string, off int) *Validator {
	return &Validator{record: record, offset: int64(off)}
}

func (v *Validator) fail(field string, value any, msg string, kind error) {
	if v.err != nil {
		return
	}
	v.err = &errs.DecodeError{
		Record: v.record,
		Field:  field,
		Offset: v.offset,
		Value:  value,
		Msg:    msg,
		Err:    kind,
	}
}

// Check records a failure of field unless ok.
func (v *Validator) Check(field string, ok bool, value any) {
	if !ok {
		v.fail(field, value, "", errs.ErrValidation)
	}
}

// Zero requires a reserved field to be zero.
func (v *Validator) Zero(field string, value uint32) {
	if value != 0 {
		v.fail(field, fmt.Sprintf("0x%x", value), "reserved field must be zero", errs.ErrValidation)
	}
}

// Max requires value <= limit.
func (v *Validator) Max(field string, value, limit int) {
	if value > limit {
		v.fail(field, fmt.Sprintf("0x%x", value), fmt.Sprintf("exceeds 0x%x", limit), errs.ErrValidation)
	}
}

// Span requires count elements of elemSize bytes starting at offset to end
// at or before limit.
func (v *Validator) Span(field string, offset, count, elemSize, limit int) {
	if _, err := buf.SpanEnd(limit, offset, count, elemSize); err != nil {
		v.fail(field, count, err.Error(), errs.ErrValidation)
	}
}

// Magic requires got to equal want.
func (v *Validator) Magic(field string, got []byte, want string) {
	if string(got) != want {
		v.fail(field, fmt.Sprintf("%q", got), fmt.Sprintf("expected %q", want), errs.ErrSignature)
	}
}

// OneOf requires value to be one of legal.
func (v *Validator) OneOf(field string, value uint32, legal ...uint32) {
	for _, l := range legal {
		if value == l {
			return
		}
	}
	v.fail(field, value, "not a legal value", errs.ErrValidation)
}

// Err returns the first failure, or nil.
func (v *Validator) Err() error {
	if v.err == nil {
		return nil
	}
	return v.err
}

// Checker is implemented by records whose fields can be re-checked after
// edits, against the size the file will have when dumped.
type Checker interface {
	Validate(fileSize int) error
}

// Validate runs every Checker record against the current serialized size
// and returns the first failure.
func (c *Context) Validate() error {
	size := c.CurrentSize()
	for _, it := range c.items {
		ch, ok := it.(Checker)
		if !ok {
			continue
		}
		if err := ch.Validate(size); err != nil {
			return err
		}
	}
	return nil
}
