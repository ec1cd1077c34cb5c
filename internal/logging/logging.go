// Package logging builds the logrus loggers used by the pedal runtime and
// its command-line tools.
package logging

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv enables debug logging when it parses as true.
const DebugEnv = "PEDAL_DEBUG"

// New returns a text logger writing to stderr. The level is debug when
// PEDAL_DEBUG is set to a true value and info otherwise.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if debugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func debugEnabled() bool {
	debug, err := strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		return false
	}
	return debug
}
