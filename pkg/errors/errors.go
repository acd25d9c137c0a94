// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a 4xx code.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsBridgeError returns true if the status is one of the path resolution
// failures.
func (s Status) IsBridgeError() bool { return s >= 440 && s < 450 }

// Error implements error.
func (s Status) Error() string { return s.String() }

// Skip returns a factory that attributes errors to the caller n frames above
// the immediate one. Helpers that build errors on behalf of their caller use
// it.
func (s Status) Skip(n int) Factory {
	return Factory{skip: n, code: s}
}

// Wrap returns nil if err is nil. Otherwise it returns an error with the
// status that has err as its cause. The cause's code is kept when s is
// UnknownError.
func (s Status) Wrap(err error) error { return s.Skip(1).Wrap(err) }

func (s Status) With(v ...any) *Error { return s.Skip(1).With(v...) }

// WithFormat formats the message like [fmt.Errorf]. A %w operand becomes the
// cause.
func (s Status) WithFormat(format string, args ...any) *Error {
	return s.Skip(1).WithFormat(format, args...)
}

func (s Status) WithCauseAndFormat(cause error, format string, args ...any) *Error {
	return s.Skip(1).WithCauseAndFormat(cause, format, args...)
}

// Factory creates errors with a status.
type Factory struct {
	skip int
	code Status
}

func (f Factory) Wrap(err error) error {
	if err == nil {
		// Returning a typed nil would make err != nil
		return nil
	}

	if x, ok := err.(*Error); ok && !trackLocation && !f.code.IsKnownError() {
		return x
	}

	e := f.new()
	e.setCause(fromError(err))
	return e
}

func (f Factory) With(v ...any) *Error {
	e := f.new()
	e.Message = fmt.Sprint(v...)
	return e
}

func (f Factory) WithCauseAndFormat(cause error, format string, args ...any) *Error {
	e := f.new()
	e.Message = fmt.Sprintf(format, args...)
	e.setCause(fromError(cause))
	return e
}

func (f Factory) WithFormat(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	e := f.new()
	e.Message = err.Error()
	if cause := errors.Unwrap(err); cause != nil {
		e.setCause(fromError(cause))
	}
	return e
}

func (f Factory) new() *Error {
	e := &Error{Code: f.code}
	e.recordCallSite(3 + f.skip)
	return e
}

// fromError converts err to an [Error], taking the code from the first
// status found in its chain.
func fromError(err error) *Error {
	var x *Error
	if errors.As(err, &x) {
		return x
	}

	e := &Error{Code: UnknownError, Message: err.Error()}
	var sc interface{ StatusCode() Status }
	var s Status
	switch {
	case errors.As(err, &s):
		e.Code = s
	case errors.As(err, &sc):
		e.Code = sc.StatusCode()
	default:
		if cause := errors.Unwrap(err); cause != nil {
			e.setCause(fromError(cause))
		}
	}
	return e
}

// Error is an error with a status code, an optional cause, and the call
// sites recorded while location tracking is enabled.
type Error struct {
	Message   string
	Code      Status
	Cause     *Error
	CallStack []*CallSite
}

type CallSite struct {
	FuncName string
	File     string
	Line     int64
}

func (e *Error) setCause(cause *Error) {
	e.Cause = cause
	switch {
	case cause == nil, e.Code.IsKnownError():
	case e.Message != "":
		e.Code = cause.Code
	default:
		// A bare wrapper takes on the cause, keeping both call stacks
		cs := e.CallStack
		*e = *cause
		e.CallStack = append(cs, cause.CallStack...)
	}
}

func (e *Error) recordCallSite(depth int) {
	if !trackLocation {
		return
	}

	for {
		pc, file, line, ok := runtime.Caller(depth)
		if !ok {
			return
		}
		if strings.HasSuffix(file, "pkg/errors/errors.go") {
			depth++
			continue
		}

		cs := &CallSite{File: file, Line: int64(line)}
		if fn := runtime.FuncForPC(pc); fn != nil {
			cs.FuncName = fn.Name()
		}
		e.CallStack = append(e.CallStack, cs)
		return
	}
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

// Is matches a [Status] or an [Error] with the same code anywhere in the
// chain.
func (e *Error) Is(target error) bool {
	var code Status
	switch t := target.(type) {
	case Status:
		code = t
	case *Error:
		code = t.Code
	default:
		return false
	}
	for ; e != nil; e = e.Cause {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Format prints the call stacks of the chain for %+v.
func (e *Error) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') {
		fmt.Fprint(f, e.Print())
		return
	}
	fmt.Fprint(f, e.Error())
}

// Print returns each error of the chain followed by its call stack. The
// cause's message is trimmed from the end of the wrapper's.
func (e *Error) Print() string {
	if e.CallStack == nil {
		return e.Error()
	}

	var sb strings.Builder
	for ; e != nil; e = e.Cause {
		msg := e.Message
		switch {
		case msg == "":
			msg = e.Code.String()
		case e.Cause != nil:
			msg = strings.TrimSuffix(msg, e.Cause.Message)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(msg + "\n")
		for _, cs := range e.CallStack {
			fmt.Fprintf(&sb, "%s\n    %s:%d\n", cs.FuncName, cs.File, cs.Line)
		}
	}
	return sb.String()
}
