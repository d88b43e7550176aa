// Package logging builds the logger used by the munsyn command.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatRaw  = "raw"
)

// New returns a logger that writes to w at the given level ("debug",
// "info", ...) in the given format. Colors are only used by the text format
// and only if color is set.
func New(w io.Writer, level, format string, color bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %s", level)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)

	switch format {
	case FormatText, "":
		logger.SetFormatter(&logrus.TextFormatter{
			ForceColors:      color,
			DisableColors:    !color,
			DisableTimestamp: true,
		})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	case FormatRaw:
		logger.SetFormatter(RawFormatter{})
	default:
		return nil, fmt.Errorf("unsupported log format `%s`", format)
	}
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// RawFormatter prints the message of an entry and nothing else.
type RawFormatter struct{}

// Format renders a single log entry.
func (RawFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}
