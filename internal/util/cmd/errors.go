// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"gitlab.com/accumulatenetwork/portfolio-bridge/pkg/errors"
	"golang.org/x/term"
)

// Debug prints the full causal chain of errors passed to Check.
var Debug bool

func Fatalf(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, colorize(color.RedString, "Error: "+format+"\n", args...))
	os.Exit(1)
}

func Check(err error) {
	if err == nil {
		return
	}
	if Debug {
		Fatalf("%+v", err)
	}
	if code := errors.Code(err); code.IsKnownError() {
		Fatalf("%v (%v)", err, code)
	}
	Fatalf("%v", err)
}

func Checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		Fatalf(format+": %v", append(otherArgs, err)...)
	}
}

func Warnf(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, colorize(color.YellowString, "WARNING: "+format+"\n", args...))
}

// Successf prints a message to stdout, in green on a terminal.
func Successf(format string, args ...interface{}) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprint(os.Stdout, color.GreenString(format+"\n", args...))
	} else {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

func colorize(fn func(string, ...interface{}) string, format string, args ...interface{}) string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return fn(format, args...)
	}
	return fmt.Sprintf(format, args...)
}
