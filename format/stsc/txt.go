package stsc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"

	"github.com/joshuapare/neptkit/errs"
	"github.com/joshuapare/neptkit/item"
)

const (
	// lineEscape is how a line break is spelled inside script strings.
	lineEscape = `\n`

	separatorWidth = 40

	// maxLineSize bounds a single line of an imported text file.
	maxLineSize = 1 << 20
)

// Separator is the line written after every string: forty Shift-JIS 0x815C
// dashes, decoded.
var Separator = func() string {
	sjis := strings.Repeat("\x81\x5c", separatorWidth)
	s, err := japanese.ShiftJIS.NewDecoder().String(sjis)
	if err != nil {
		panic(err)
	}
	return s
}()

// WriteTxt writes every string record of ctx as UTF-8 text. Each string is
// followed by a separator line; escaped line breaks become CRLF.
func WriteTxt(ctx *item.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, s := range Strings(ctx) {
		text, err := s.Text()
		if err != nil {
			return err
		}
		text = strings.ReplaceAll(text, lineEscape, "\r\n")
		if _, err := fmt.Fprintf(bw, "%s\r\n%s\r\n", text, Separator); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// assignText sets s to text unless it already reads as text, which keeps
// the stored bytes of unedited strings.
func assignText(s *StringItem, text string) error {
	if cur, err := s.Text(); err == nil && cur == text {
		return nil
	}
	return s.SetText(text)
}

// ReadTxt replaces the string records of ctx, in file order, with the
// texts read from r in the format WriteTxt produces. Both too many and too
// few texts fail with errs.ErrText; strings assigned before the failure
// keep their new value. Strings whose text is unchanged are left as is.
func ReadTxt(ctx *item.Context, r io.Reader) error {
	targets := Strings(ctx)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	next := 0
	var msg strings.Builder
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line != Separator {
			msg.WriteString(line)
			msg.WriteString(lineEscape)
			continue
		}
		if next == len(targets) {
			return fmt.Errorf("%w: too many strings", errs.ErrText)
		}
		text := strings.TrimSuffix(msg.String(), lineEscape)
		if err := assignText(targets[next], text); err != nil {
			return fmt.Errorf("string %d: %w", next, err)
		}
		next++
		msg.Reset()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read txt: %w", err)
	}
	if next != len(targets) {
		return fmt.Errorf("%w: not enough strings (%d of %d)", errs.ErrText, next, len(targets))
	}
	return nil
}
