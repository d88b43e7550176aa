package e2e

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foeb/mun/internal/inspect"
)

// TestE2E inspects every .mun file in testdata/ and compares the text
// report with the .golden file next to it. Each test:
//  1. Reads and parses the file through the inspect pipeline
//  2. Checks that the tree reproduces the source and has no errors
//  3. Renders the report as text without colors
//  4. Compares the rendering against the .golden file
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.mun")
	require.NoError(t, err)
	require.NotEmpty(t, testFiles, "no .mun test files found in testdata/")

	fs := afero.NewBasePathFs(afero.NewOsFs(), "testdata")
	names := make([]string, len(testFiles))
	for i, f := range testFiles {
		names[i] = filepath.Base(f)
	}

	reports, err := inspect.Files(context.Background(), fs, names, inspect.Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, reports, len(names))

	for i, name := range names {
		r := reports[i]
		t.Run(strings.TrimSuffix(name, ".mun"), func(t *testing.T) {
			runE2ETest(t, fs, name, r)
		})
	}
}

// runE2ETest checks a single report against its source and golden file.
func runE2ETest(t *testing.T, fs afero.Fs, name string, r inspect.Report) {
	t.Helper()

	src, err := afero.ReadFile(fs, name)
	require.NoError(t, err)
	expected, err := afero.ReadFile(fs, strings.TrimSuffix(name, ".mun")+".golden")
	require.NoError(t, err, "reading golden file")

	assert.Equal(t, string(src), r.Tree().Text(), "tree must reproduce the source")
	require.Empty(t, r.Errors)

	var buf bytes.Buffer
	require.NoError(t, inspect.Render(&buf, "text", []inspect.Report{r}, inspect.RenderOptions{}))
	assert.Equal(t, string(expected), buf.String())
}
