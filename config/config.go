// Package config loads neptool's configuration.
//
// Configuration comes from a single YAML file named by the --config flag
// or the NEPTKIT_CONFIG environment variable; without either the defaults
// apply. Command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/neptkit/inspect"
	"github.com/joshuapare/neptkit/internal/logger"
	"github.com/joshuapare/neptkit/item"
)

// EnvVar names the environment variable holding the config path.
const EnvVar = "NEPTKIT_CONFIG"

// Config is the complete configuration.
type Config struct {
	// Log configures diagnostics.
	Log LogConfig `yaml:"log"`

	// Inspect sets the defaults of the inspect command.
	Inspect InspectConfig `yaml:"inspect"`

	// Labels configures label naming.
	Labels LabelsConfig `yaml:"labels"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`

	// File receives JSON logs. Empty logs text to stderr.
	File string `yaml:"file"`
}

// InspectConfig configures listings.
type InspectConfig struct {
	// Format is text, json or cbor.
	// Default: text
	Format string `yaml:"format"`

	// ShowRaw includes the leading bytes of unparsed regions.
	ShowRaw bool `yaml:"show_raw"`

	// MaxRawBytes caps the bytes shown per raw region.
	// Default: 16
	MaxRawBytes int `yaml:"max_raw_bytes"`
}

// LabelsConfig configures label naming.
type LabelsConfig struct {
	// AutoPrefix prefixes the names of labels generated from offsets.
	// Default: off_
	AutoPrefix string `yaml:"auto_prefix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn"},
		Inspect: InspectConfig{
			Format:      inspect.FormatText,
			MaxRawBytes: inspect.DefaultMaxRawBytes,
		},
		Labels: LabelsConfig{AutoPrefix: item.DefaultAutoLabelPrefix},
	}
}

// LoadFile reads path over the defaults. Unknown keys are rejected and
// ${VAR} references in log.file are expanded.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var problems []error
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Inspect.Format) {
	case inspect.FormatText, inspect.FormatJSON, inspect.FormatCBOR:
	default:
		problems = append(problems, fmt.Errorf("inspect.format: unknown format %q", c.Inspect.Format))
	}
	if c.Inspect.MaxRawBytes < 0 {
		problems = append(problems, fmt.Errorf("inspect.max_raw_bytes: must not be negative"))
	}
	if c.Labels.AutoPrefix == "" {
		problems = append(problems, fmt.Errorf("labels.auto_prefix: must not be empty"))
	}
	return errors.Join(problems...)
}

// LoggerOptions converts the log section for logger.Init.
func (c *Config) LoggerOptions() (logger.Options, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Options{}, err
	}
	return logger.Options{Level: level, File: c.Log.File}, nil
}

// InspectOptions converts the inspect section.
func (c *Config) InspectOptions() inspect.Options {
	return inspect.Options{
		Format:      c.Inspect.Format,
		ShowRaw:     c.Inspect.ShowRaw,
		MaxRawBytes: c.Inspect.MaxRawBytes,
	}
}

// ContextOptions returns the item options the configuration implies.
func (c *Config) ContextOptions() []item.Option {
	return []item.Option{
		item.WithAutoLabelPrefix(c.Labels.AutoPrefix),
		item.WithLogger(logger.L),
	}
}

// Flag names registered by AddFlags.
const (
	FlagConfig      = "config"
	FlagLogLevel    = "log-level"
	FlagLogFile     = "log-file"
	FlagFormat      = "format"
	FlagShowRaw     = "show-raw"
	FlagMaxRawBytes = "max-raw-bytes"
	FlagLabelPrefix = "label-prefix"
)

// AddFlags registers the config path and override flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "config file (default $"+EnvVar+")")
	fs.String(FlagLogLevel, d.Log.Level, "log level: debug, info, warn, error")
	fs.String(FlagLogFile, "", "write JSON logs to this file")
	fs.StringP(FlagFormat, "f", d.Inspect.Format, "output format: text, json, cbor")
	fs.Bool(FlagShowRaw, false, "show leading bytes of raw regions")
	fs.Int(FlagMaxRawBytes, d.Inspect.MaxRawBytes, "bytes shown per raw region")
	fs.String(FlagLabelPrefix, d.Labels.AutoPrefix, "prefix of generated label names")
}

// FromFlags loads the file named by --config or $NEPTKIT_CONFIG, if any,
// and applies the flags the user set explicitly.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	path, _ := fs.GetString(FlagConfig)
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	}

	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Lookup(name) != nil && fs.Changed(name) {
			err = apply()
		}
	}
	set(FlagLogLevel, func() (e error) { cfg.Log.Level, e = fs.GetString(FlagLogLevel); return })
	set(FlagLogFile, func() (e error) { cfg.Log.File, e = fs.GetString(FlagLogFile); return })
	set(FlagFormat, func() (e error) { cfg.Inspect.Format, e = fs.GetString(FlagFormat); return })
	set(FlagShowRaw, func() (e error) { cfg.Inspect.ShowRaw, e = fs.GetBool(FlagShowRaw); return })
	set(FlagMaxRawBytes, func() (e error) { cfg.Inspect.MaxRawBytes, e = fs.GetInt(FlagMaxRawBytes); return })
	set(FlagLabelPrefix, func() (e error) { cfg.Labels.AutoPrefix, e = fs.GetString(FlagLabelPrefix); return })
	if err != nil {
		return nil, fmt.Errorf("config: flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
