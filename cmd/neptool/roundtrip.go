package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errMismatch reports that at least one file did not reproduce itself.
var errMismatch = errors.New("round trip mismatch")

func newRoundtripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip <file>...",
		Short: "Check that files serialize back to identical bytes",
		Long: `The roundtrip command parses each file and serializes it again without
edits. A file passes when the output hashes identically to the input.

Example:
  neptool roundtrip *.cl3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				ok, detail := a.roundtrip(path)
				if !ok {
					failed++
					fmt.Fprintf(a.out, "FAIL  %s: %s\n", path, detail)
					continue
				}
				a.printInfo("ok    %s (%s)\n", path, detail)
			}
			a.printInfo("%d of %d files reproduced\n", len(args)-failed, len(args))
			if failed > 0 {
				return fmt.Errorf("%w: %d file(s)", errMismatch, failed)
			}
			return nil
		},
	}
}

func (a *app) roundtrip(path string) (bool, string) {
	doc, err := a.open(path)
	if err != nil {
		return false, err.Error()
	}
	defer doc.Close()
	same, err := doc.Unchanged()
	if err != nil {
		return false, err.Error()
	}
	if !same {
		return false, "output differs from input"
	}
	return true, fmt.Sprintf("%s, %d items, xxh64 %016x", doc.Kind, len(doc.Ctx.Items()), doc.Sum())
}
