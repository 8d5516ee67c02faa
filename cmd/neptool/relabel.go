package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRelabelCmd(a *app) *cobra.Command {
	var (
		name   string
		to     string
		output string
	)
	cmd := &cobra.Command{
		Use:   "relabel <file> <label>",
		Short: "Rename a label or point it somewhere else",
		Long: `The relabel command renames a label and/or moves it to another offset
of the original file. Every record referring to the label is written with
the new position; nothing else changes.

Example:
  neptool relabel script.stcm main --to 0x2f0 -o patched.stcm
  neptool relabel data.cl3 section_FILE --name section_main`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if name == "" && to == "" {
				return errors.New("nothing to do: pass --name and/or --to")
			}
			doc, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			ctx := doc.Ctx
			l, ok := ctx.Label(args[1])
			if !ok {
				return fmt.Errorf("no label named %q", args[1])
			}
			if to != "" {
				off, err := parseOffset(to)
				if err != nil {
					return err
				}
				ptr, err := ctx.Pointer(off)
				if err != nil {
					return err
				}
				ctx.MoveLabel(l, ptr)
			}
			if name != "" {
				if err := ctx.RenameLabel(l, name); err != nil {
					return err
				}
			}
			return a.save(doc, output)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new label name")
	cmd.Flags().StringVar(&to, "to", "", "new target as an offset in the original file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write here instead of replacing the input")
	return cmd
}
