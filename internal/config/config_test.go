package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a config file into a temporary directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "munsyn.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newFlags returns a flag set with the config flags parsed from args.
func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	// no munsyn.yaml in the package directory
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.File)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultColor, cfg.Color)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, `
output: table
format: json
color: never
workers: 3
log_level: info
`)

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "table", cfg.Output)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "never", cfg.Color)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
		assert.Equal(t, path, cfg.File)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("MUNSYN_OUTPUT", "yaml")
		t.Setenv("MUNSYN_WORKERS", "5")
		t.Setenv("MUNSYN_LOG_FORMAT", "json")

		cfg, err := Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.Output)
		assert.Equal(t, 5, cfg.Workers)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "json", cfg.Format, "untouched keys keep the file value")
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("MUNSYN_OUTPUT", "yaml")

		cfg, err := Load(path, newFlags(t, "-o", "json", "--workers", "2", "--log-level", "debug"))
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("unset flags do not override", func(t *testing.T) {
		cfg, err := Load(path, newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "table", cfg.Output)
		assert.Equal(t, 3, cfg.Workers)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{"bad output", "output: html", `invalid output "html"`},
		{"bad format", "format: xml", `invalid format "xml"`},
		{"bad color", "color: sometimes", `invalid color "sometimes"`},
		{"no workers", "workers: 0", "workers must be at least 1"},
		{"broken yaml", "output: [", "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})
}
