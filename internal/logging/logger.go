// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const (
	LogFormatPlain = "plain"
	LogFormatText  = "text"
	LogFormatJSON  = "json"
)

// Logger is a key/value structured logger.
type Logger interface {
	Debug(msg string, keyVals ...interface{})
	Info(msg string, keyVals ...interface{})
	Error(msg string, keyVals ...interface{})
	With(keyVals ...interface{}) Logger
}

// ZeroLogger passes messages to a Zerolog logger.
type ZeroLogger struct {
	Zerolog zerolog.Logger
	Trace   bool
}

var _ Logger = (*ZeroLogger)(nil)

// NewLogger creates a logger that writes to w. The level may be a single
// level or a per-module specification such as "error;msglib=debug".
func NewLogger(w io.Writer, level, format string) (Logger, error) {
	w, err := NewConsoleWriterWith(w, format)
	if err != nil {
		return nil, err
	}

	// The module filter decodes JSON so it sits in front of the console
	// writer
	level, w, err = ParseLogLevel(level, w)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %v", err)
	}

	return NewZeroLogger(zerolog.New(w), level, false)
}

func NewZeroLogger(zl zerolog.Logger, level string, trace bool) (*ZeroLogger, error) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %v", err)
	}

	zl = zl.Level(logLevel).With().Timestamp().Logger()
	return &ZeroLogger{zl, trace}, nil
}

func (l *ZeroLogger) Info(msg string, keyVals ...interface{}) {
	l.Zerolog.Info().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, keyVals ...interface{}) {
	e := l.Zerolog.Error()
	if l.Trace {
		e = e.Stack()
	}

	e.Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) Debug(msg string, keyVals ...interface{}) {
	l.Zerolog.Debug().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) With(keyVals ...interface{}) Logger {
	return &ZeroLogger{
		Zerolog: l.Zerolog.With().Fields(getLogFields(keyVals...)).Logger(),
		Trace:   l.Trace,
	}
}

func getLogFields(keyVals ...interface{}) map[string]interface{} {
	if len(keyVals)%2 != 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(keyVals))
	for i := 0; i < len(keyVals); i += 2 {
		fields[fmt.Sprint(keyVals[i])] = keyVals[i+1]
	}

	return fields
}

// NewConsoleWriter parses the log format and creates an appropriate writer
// for stderr.
func NewConsoleWriter(format string) (io.Writer, error) {
	return NewConsoleWriterWith(os.Stderr, format)
}

func NewConsoleWriterWith(w io.Writer, format string) (io.Writer, error) {
	switch strings.ToLower(format) {
	case LogFormatPlain, LogFormatText:
		return newConsoleWriter(w), nil

	case LogFormatJSON:
		return w, nil

	default:
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}
}

// newConsoleWriter creates a zerolog console writer that formats log messages
// as plain text. Colour is only used when writing to a terminal.
func newConsoleWriter(w io.Writer) *zerolog.ConsoleWriter {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	return &zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i interface{}) string {
			if ll, ok := i.(string); ok {
				return strings.ToUpper(ll)
			}
			return "????"
		},
	}
}
