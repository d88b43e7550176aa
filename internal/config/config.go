// Package config loads the settings of the munsyn command.
//
// Settings come from four layers, highest priority first: explicitly set
// command line flags, MUNSYN_* environment variables, the YAML config file
// and built-in defaults.
package config

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "MUNSYN_"

// Default values.
const (
	DefaultOutput    = "text"
	DefaultFormat    = "text"
	DefaultColor     = "auto"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// configFiles are the names looked up in the working directory when no
// config file is given.
var configFiles = []string{"munsyn.yaml", "munsyn.yml"}

// Accepted values of the enumerated settings.
var (
	Outputs = []string{"text", "table", "json", "yaml"}
	Formats = []string{"text", "json"}
	Colors  = []string{"auto", "always", "never"}
)

// Config holds all settings.
type Config struct {
	Output    string `koanf:"output"`     // renderer of the inspect command
	Format    string `koanf:"format"`     // dump format of the tree command
	Color     string `koanf:"color"`      // auto, always or never
	Workers   int    `koanf:"workers"`    // files inspected in parallel
	LogLevel  string `koanf:"log_level"`  // logrus level
	LogFormat string `koanf:"log_format"` // text, json or raw

	// File is the config file that was loaded, or "".
	File string `koanf:"-"`
}

// defaults returns the default settings as a koanf map.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"output":     DefaultOutput,
		"format":     DefaultFormat,
		"color":      DefaultColor,
		"workers":    runtime.NumCPU(),
		"log_level":  DefaultLogLevel,
		"log_format": DefaultLogFormat,
	}
}

// findConfigFile returns the config file to use.
// Priority: explicit path > munsyn.yaml > munsyn.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// RegisterFlags adds the flags that override configuration keys to fs.
// Their defaults only document the built-in values; Load ignores flags
// that were not set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: ./munsyn.yaml)")
	fs.StringP("output", "o", DefaultOutput, "inspect output: "+strings.Join(Outputs, ", "))
	fs.String("format", DefaultFormat, "tree format: "+strings.Join(Formats, ", "))
	fs.String("color", DefaultColor, "colorize output: "+strings.Join(Colors, ", "))
	fs.Int("workers", runtime.NumCPU(), "files inspected in parallel")
	fs.String("log-level", DefaultLogLevel, "log level: debug, info, warn, error")
	fs.String("log-format", DefaultLogFormat, "log format: text, json, raw")
}

// Load loads the configuration. cfgFile may be "" to look for a config
// file in the working directory; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: MUNSYN_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were set explicitly
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	if !slices.Contains(Outputs, c.Output) {
		return fmt.Errorf("invalid output %q: must be one of %s", c.Output, strings.Join(Outputs, ", "))
	}
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if !slices.Contains(Colors, c.Color) {
		return fmt.Errorf("invalid color %q: must be one of %s", c.Color, strings.Join(Colors, ", "))
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
