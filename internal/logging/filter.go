// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLogLevel parses a level specification. A plain level is returned
// unchanged. A specification such as "error;msglib=debug" returns the lowest
// level it names and wraps w so that each event is checked against the level
// of its module field. An entry without a module, or with module "*", sets
// the level of events that have no entry of their own.
//
// w must receive zerolog's JSON output, so any console formatting goes
// between the returned writer and the destination.
func ParseLogLevel(s string, w io.Writer) (string, io.Writer, error) {
	if !strings.Contains(s, "=") {
		return s, w, nil
	}

	f := &moduleFilter{out: w, fallback: zerolog.Disabled, modules: map[string]zerolog.Level{}}
	lowest := zerolog.Disabled
	for _, entry := range strings.Split(s, ";") {
		if entry == "" {
			continue
		}

		module, name, ok := strings.Cut(entry, "=")
		if !ok {
			module, name = "", entry
		}
		level, err := zerolog.ParseLevel(name)
		if err != nil {
			return "", nil, fmt.Errorf("module %q: %w", module, err)
		}

		lowest = min(lowest, level)
		if module == "" || module == "*" {
			f.fallback = level
		} else {
			f.modules[module] = level
		}
	}
	return lowest.String(), f, nil
}

// moduleFilter drops events below the level of their module.
type moduleFilter struct {
	out      io.Writer
	fallback zerolog.Level
	modules  map[string]zerolog.Level
}

var _ zerolog.LevelWriter = (*moduleFilter)(nil)

func (f *moduleFilter) Write(p []byte) (int, error) {
	return f.WriteLevel(zerolog.NoLevel, p)
}

func (f *moduleFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	// Only the fields the filter reads are decoded
	var evt struct {
		Module string `json:"module"`
		Level  string `json:"level"`
	}
	if err := json.Unmarshal(p, &evt); err != nil {
		return 0, fmt.Errorf("decode log event: %w", err)
	}

	if level == zerolog.NoLevel {
		level, _ = zerolog.ParseLevel(evt.Level)
	}

	threshold, ok := f.modules[evt.Module]
	if !ok {
		threshold = f.fallback
	}
	if level < threshold {
		return len(p), nil
	}
	return f.out.Write(p)
}
