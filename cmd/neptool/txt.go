package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/neptkit/format"
	"github.com/joshuapare/neptkit/format/stsc"
)

// openScript opens an STSC file and marks the strings at offsets.
func (a *app) openScript(path string, offsets []string) (*format.Document, error) {
	doc, err := a.open(path)
	if err != nil {
		return nil, err
	}
	if doc.Kind != format.KindSTSC {
		doc.Close()
		return nil, fmt.Errorf("%s: text conversion needs an stsc file, got %s", path, doc.Kind)
	}
	for _, s := range offsets {
		off, err := parseOffset(s)
		if err != nil {
			doc.Close()
			return nil, err
		}
		if _, err := stsc.CreateStringAt(doc.Ctx, off); err != nil {
			doc.Close()
			return nil, fmt.Errorf("%s: string at 0x%x: %w", path, off, err)
		}
	}
	return doc, nil
}

func newExportTxtCmd(a *app) *cobra.Command {
	var offsets []string
	cmd := &cobra.Command{
		Use:   "export-txt <file> [out.txt]",
		Short: "Write the strings of an STSC script as editable text",
		Long: `The export-txt command decodes the strings at the given offsets from
Shift-JIS and writes them as UTF-8, each followed by a separator line.
Without an output path the text goes to stdout.

Example:
  neptool export-txt script.stsc script.txt --string 0x1c4 --string 0x1d0`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := a.openScript(args[0], offsets)
			if err != nil {
				return err
			}
			defer doc.Close()

			if len(args) == 1 {
				return stsc.WriteTxt(doc.Ctx, a.out)
			}
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := stsc.WriteTxt(doc.Ctx, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.printInfo("wrote %d strings to %s\n", len(stsc.Strings(doc.Ctx)), args[1])
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&offsets, "string", nil, "offset of a string record (repeatable)")
	return cmd
}

func newImportTxtCmd(a *app) *cobra.Command {
	var (
		offsets []string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "import-txt <file> <in.txt>",
		Short: "Replace the strings of an STSC script from text",
		Long: `The import-txt command reads text in the export-txt layout and replaces
the strings at the given offsets, in file order. Everything after an edited
string moves and every label follows it.

Example:
  neptool import-txt script.stsc script.txt --string 0x1c4 -o patched.stsc`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := a.openScript(args[0], offsets)
			if err != nil {
				return err
			}
			defer doc.Close()

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			err = stsc.ReadTxt(doc.Ctx, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			return a.save(doc, output)
		},
	}
	cmd.Flags().StringSliceVar(&offsets, "string", nil, "offset of a string record (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write here instead of replacing the input")
	return cmd
}

// save writes doc to output, or over its source when output is empty.
func (a *app) save(doc *format.Document, output string) error {
	if output == "" {
		output = doc.Path
	}
	if err := doc.Save(output); err != nil {
		return err
	}
	a.printInfo("saved %s\n", output)
	return nil
}
