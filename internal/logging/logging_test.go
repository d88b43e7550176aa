package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatText, false)
	require.NoError(t, err)

	logger.WithField("file", "a.mun").Info("parsed")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, `msg=parsed`)
	assert.Contains(t, out, "file=a.mun")
	assert.NotContains(t, out, "hidden")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "debug", FormatJSON, false)
	require.NoError(t, err)

	logger.WithFields(logrus.Fields{"file": "a.mun", "errors": 2}).Debug("parsed")

	out := buf.String()
	require.True(t, gjson.Valid(out))
	assert.Equal(t, "debug", gjson.Get(out, "level").String())
	assert.Equal(t, "parsed", gjson.Get(out, "msg").String())
	assert.Equal(t, "a.mun", gjson.Get(out, "file").String())
	assert.Equal(t, int64(2), gjson.Get(out, "errors").Int())
}

func TestNewRaw(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatRaw, false)
	require.NoError(t, err)

	logger.WithField("ignored", true).Warn("just this")
	assert.Equal(t, "just this\n", buf.String())
}

func TestNewErrors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatText, false)
	assert.EqualError(t, err, "unknown log level loud")

	_, err = New(&bytes.Buffer{}, "info", "xml", false)
	assert.EqualError(t, err, "unsupported log format `xml`")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() { logger.Error("nowhere") })
}
