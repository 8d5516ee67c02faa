package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/neptkit/config"
	"github.com/joshuapare/neptkit/format"
	"github.com/joshuapare/neptkit/internal/logger"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	cfg      *config.Config
	kindName string
	quiet    bool
	closeLog func() error
	out      io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "neptool",
		Short: "Inspect and edit CL3, STCM and STSC files",
		Long: `neptool parses game archive and script files into items and labels,
lets you inspect and edit them, and writes them back byte-for-byte where
nothing was changed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.teardown()
		},
	}

	config.AddFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&a.kindName, "kind", "auto", "input format: auto, cl3, stcm, stsc")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress informational output")

	root.AddCommand(
		newInspectCmd(a),
		newLabelsCmd(a),
		newRoundtripCmd(a),
		newExportTxtCmd(a),
		newImportTxtCmd(a),
		newRelabelCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	lo, err := cfg.LoggerOptions()
	if err != nil {
		return err
	}
	closeLog, err := logger.Init(lo)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.closeLog = closeLog
	a.out = cmd.OutOrStdout()
	return nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	logger.Discard()
	return err
}

// open parses path with the configured format and label options.
func (a *app) open(path string) (*format.Document, error) {
	kind, err := format.ParseKind(a.kindName)
	if err != nil {
		return nil, err
	}
	return format.Open(path, kind, a.cfg.ContextOptions()...)
}

// printInfo prints an informational line unless --quiet is set.
func (a *app) printInfo(msg string, args ...any) {
	if !a.quiet {
		fmt.Fprintf(a.out, msg, args...)
	}
}

// printJSON writes v as indented JSON.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseOffset accepts decimal, 0x-prefixed hex and 0o/0b forms.
func parseOffset(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return int(v), nil
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
