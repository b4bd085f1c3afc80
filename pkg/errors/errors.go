// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
)

// Error is a status-coded error with an optional cause chain.
type Error struct {
	Code    Status
	Message string
	Cause   *Error
}

// Error implements error.
func (s Status) Error() string { return s.String() }

// With constructs an error from the given values.
func (s Status) With(v ...interface{}) *Error {
	return &Error{Code: s, Message: fmt.Sprint(v...)}
}

// WithFormat constructs an error from the given format and arguments. If the
// format wraps an error with %w, the wrapped error becomes the cause.
func (s Status) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)

	u, ok := err.(interface{ Unwrap() error })
	if ok {
		e := &Error{Code: s, Message: err.Error()}
		e.setCause(convert(u.Unwrap()))
		return e
	}

	e := convert(err)
	e.Code = s
	return e
}

// WithCauseAndFormat constructs an error with an explicit cause.
func (s Status) WithCauseAndFormat(cause error, format string, args ...interface{}) *Error {
	e := &Error{Code: s, Message: fmt.Sprintf(format, args...)}
	e.setCause(convert(cause))
	return e
}

// Wrap wraps an error, preserving its status code if it has one.
func (s Status) Wrap(err error) error {
	if err == nil {
		// The return type must be `error` - otherwise this return statement
		// can cause strange errors
		return nil
	}

	// If err is an Error and we're not going to add anything, return it
	if !s.IsKnownError() {
		if _, ok := err.(*Error); ok {
			return err
		}
	}

	e := &Error{Code: s}
	e.setCause(convert(err))
	return e
}

func convert(err error) *Error {
	if x := (*Error)(nil); errors.As(err, &x) {
		return x
	}

	var msg string
	if err == nil {
		msg = "(nil)"
	} else {
		msg = err.Error()
	}
	if x := Status(0); errors.As(err, &x) {
		return &Error{Code: x, Message: msg}
	}

	e := &Error{Code: UnknownError, Message: msg}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		if err := u.Unwrap(); err != nil {
			e.setCause(convert(err))
		}
	}
	return e
}

func (e *Error) setCause(f *Error) {
	e.Cause = f
	if f == nil {
		return
	}

	if e.Code.IsKnownError() {
		return
	}

	if e.Message != "" {
		// Copy the code
		e.Code = f.Code
		return
	}

	// Inherit everything
	*e = *f
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

func (e *Error) Is(target error) bool {
	switch f := target.(type) {
	case *Error:
		if e.Code == f.Code {
			return true
		}
	case Status:
		if e.Code == f {
			return true
		}
	}
	if e.Cause != nil {
		return e.Cause.Is(target)
	}
	return false
}
