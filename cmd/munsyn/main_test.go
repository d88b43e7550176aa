package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// run executes munsyn with args against fs and returns what it printed.
func run(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd(&app{fs: fs})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// sources returns an in-memory file system holding files.
func sources(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

// nonEmptyLines splits s into lines, dropping empty ones.
func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, afero.NewMemMapFs(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "munsyn version "+Version+"\n")
	assert.Contains(t, out, "go version go")
}

func TestTokens(t *testing.T) {
	fs := sources(t, map[string]string{"a.mun": "fn f() {}"})

	t.Run("significant", func(t *testing.T) {
		out, errOut, err := run(t, fs, "tokens", "a.mun")
		require.NoError(t, err)
		assert.Empty(t, errOut)

		lines := nonEmptyLines(out)
		require.Len(t, lines, 8)
		assert.Equal(t, []string{"POSITION", "KIND", "TEXT"}, strings.Fields(lines[0]))

		want := [][]string{
			{"a.mun:1:1", "FN_KW", `"fn"`},
			{"a.mun:1:4", "IDENT", `"f"`},
			{"a.mun:1:5", "L_PAREN", `"("`},
			{"a.mun:1:6", "R_PAREN", `")"`},
			{"a.mun:1:8", "L_CURLY", `"{"`},
			{"a.mun:1:9", "R_CURLY", `"}"`},
		}
		for i, w := range want {
			assert.Equal(t, w, strings.Fields(lines[i+2]))
		}
	})

	t.Run("trivia", func(t *testing.T) {
		out, _, err := run(t, fs, "tokens", "--trivia", "a.mun")
		require.NoError(t, err)
		lines := nonEmptyLines(out)
		require.Len(t, lines, 10)
		assert.Equal(t, []string{"a.mun:1:3", "WHITESPACE", `"`, `"`}, strings.Fields(lines[3]))
	})
}

func TestTokensSyntaxError(t *testing.T) {
	fs := sources(t, map[string]string{"bad.mun": "fn f() { $ }"})
	out, errOut, err := run(t, fs, "tokens", "bad.mun")
	assert.ErrorIs(t, err, errSyntax)
	assert.Contains(t, errOut, "bad.mun:1:10: unexpected character '$'\n")
	assert.Contains(t, out, "FN_KW", "tokens are printed despite errors")
}

func TestMissingFile(t *testing.T) {
	for _, command := range []string{"tokens", "tree", "inspect"} {
		t.Run(command, func(t *testing.T) {
			_, _, err := run(t, afero.NewMemMapFs(), command, "nope.mun")
			require.Error(t, err)
			assert.NotErrorIs(t, err, errSyntax)
			assert.Contains(t, err.Error(), "opening nope.mun")
		})
	}
}

func TestMissingArgs(t *testing.T) {
	_, _, err := run(t, afero.NewMemMapFs(), "inspect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestTree(t *testing.T) {
	fs := sources(t, map[string]string{"a.mun": "fn f() {}"})

	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, fs, "tree", "a.mun")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "SOURCE_FILE@[0; 9)\n  FUNCTION_DEF@[0; 9)\n    FN_KW@[0; 2) \"fn\"\n"))
	})

	t.Run("json flag", func(t *testing.T) {
		out, _, err := run(t, fs, "tree", "--format", "json", "a.mun")
		require.NoError(t, err)
		require.True(t, gjson.Valid(out))
		assert.Equal(t, "SOURCE_FILE", gjson.Get(out, "kind").String())
		assert.Equal(t, "a.mun:1:1", gjson.Get(out, "children.0.pos").String())
	})

	t.Run("json env", func(t *testing.T) {
		t.Setenv("MUNSYN_FORMAT", "json")
		out, _, err := run(t, fs, "tree", "a.mun")
		require.NoError(t, err)
		assert.Equal(t, "FUNCTION_DEF", gjson.Get(out, "children.0.kind").String())
	})

	t.Run("syntax error", func(t *testing.T) {
		fs := sources(t, map[string]string{"e.mun": "1\n2"})
		out, errOut, err := run(t, fs, "tree", "e.mun")
		assert.ErrorIs(t, err, errSyntax)
		assert.Equal(t, "e.mun:1:1: expected an item\ne.mun:2:1: expected an item\n", errOut)
		assert.True(t, strings.HasPrefix(out, "SOURCE_FILE@[0; 3)\n"))
	})
}

func TestInspect(t *testing.T) {
	fs := sources(t, map[string]string{
		"a.mun": "fn f() { a + b }",
		"b.mun": "fn g() { t.0 }",
	})

	t.Run("text", func(t *testing.T) {
		out, _, err := run(t, fs, "inspect", "a.mun")
		require.NoError(t, err)
		assert.Equal(t, "a.mun:1:10: binary Add\n    fn f() { a + b }\n               ^\n", out)
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := run(t, fs, "inspect", "-o", "json", "--workers", "2", "a.mun", "b.mun")
		require.NoError(t, err)
		require.True(t, gjson.Valid(out))
		assert.Equal(t, "a.mun", gjson.Get(out, "0.file").String())
		assert.Equal(t, "Add", gjson.Get(out, "0.facts.0.class").String())
		assert.Equal(t, "b.mun", gjson.Get(out, "1.file").String())
		assert.Equal(t, "Index", gjson.Get(out, "1.facts.0.class").String())
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := run(t, fs, "inspect", "--output", "table", "b.mun")
		require.NoError(t, err)
		assert.Contains(t, out, "b.mun:1:10")
		assert.Contains(t, out, "Index")
	})

	t.Run("syntax errors", func(t *testing.T) {
		fs := sources(t, map[string]string{"c.mun": "fn f() { x. }"})
		out, _, err := run(t, fs, "inspect", "c.mun")
		assert.ErrorIs(t, err, errSyntax)
		assert.Contains(t, out, "error: expected a field name or index")
		assert.Contains(t, out, "field ? (incomplete field access)")
	})
}

func TestInspectConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "munsyn.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: yaml\nworkers: 1\n"), 0o600))
	fs := sources(t, map[string]string{"a.mun": "fn f() { !a }"})

	out, _, err := run(t, fs, "inspect", "--config", cfgPath, "a.mun")
	require.NoError(t, err)

	var reports []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "a.mun", reports[0]["file"])

	out, _, err = run(t, fs, "inspect", "--config", cfgPath, "-o", "json", "a.mun")
	require.NoError(t, err)
	assert.True(t, gjson.Valid(out), "flags override the config file")
}

func TestInvalidConfig(t *testing.T) {
	fs := sources(t, map[string]string{"a.mun": "fn f() {}"})
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{"color", []string{"--color", "sometimes"}, `invalid color "sometimes"`},
		{"output", []string{"-o", "html"}, `invalid output "html"`},
		{"log level", []string{"--log-level", "loud"}, "unknown log level loud"},
		{"log format", []string{"--log-format", "xml"}, "unsupported log format `xml`"},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, "error reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"inspect"}, tt.args...)
			_, _, err := run(t, fs, append(args, "a.mun")...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLogging(t *testing.T) {
	fs := sources(t, map[string]string{"a.mun": "fn f() { 1 }"})

	t.Run("quiet by default", func(t *testing.T) {
		_, errOut, err := run(t, fs, "tokens", "a.mun")
		require.NoError(t, err)
		assert.Empty(t, errOut)
	})

	t.Run("text", func(t *testing.T) {
		_, errOut, err := run(t, fs, "tokens", "--log-level", "debug", "a.mun")
		require.NoError(t, err)
		assert.Contains(t, errOut, `msg="Parsed file"`)
		assert.Contains(t, errOut, "file=a.mun")
		assert.Contains(t, errOut, "errors=0")
	})

	t.Run("json", func(t *testing.T) {
		_, errOut, err := run(t, fs, "inspect", "--log-level", "debug", "--log-format", "json", "a.mun")
		require.NoError(t, err)
		lines := nonEmptyLines(errOut)
		require.Len(t, lines, 1)
		assert.Equal(t, "Parsed file", gjson.Get(lines[0], "msg").String())
		assert.Equal(t, "a.mun", gjson.Get(lines[0], "file").String())
		assert.Equal(t, "debug", gjson.Get(lines[0], "level").String())
		assert.True(t, gjson.Get(lines[0], "tokens").Exists())
	})
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, useColor("always", &buf))
	assert.False(t, useColor("never", &buf))
	assert.False(t, useColor("auto", &buf), "buffers are not terminals")
}

func TestFormatText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fn", `"fn"`},
		{" \t\n", `" \t\n"`},
		{`"a\b"`, `"\"a\\b\""`},
		{"\r\n", `"\r\n"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatText(tt.in))
	}
}
