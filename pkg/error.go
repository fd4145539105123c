package pkg

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a chain of errors. Its first element identifies
// the kind of the chain, so a chain made by wrapping a sentinel matches that
// sentinel with [errors.Is].
type Error []error

// Sentinel errors shared by the command and its sources.
var (
	// ErrReadInput is returned when reading a source file or profile fails.
	ErrReadInput = MakeErrorf("failed to read input")

	// ErrWriteOutput is returned when writing a rewritten file or manifest
	// fails.
	ErrWriteOutput = MakeErrorf("failed to write output")

	// ErrYAMLMarshal is returned when encoding YAML fails.
	ErrYAMLMarshal = MakeErrorf("YAML marshal error")

	// ErrYAMLUnmarshal is returned when decoding YAML fails.
	ErrYAMLUnmarshal = MakeErrorf("YAML unmarshal error")

	// ErrExprCompile is returned when a profile expression does not compile.
	ErrExprCompile = MakeErrorf("expression compile error")

	// ErrExprEvaluate is returned when a profile expression fails at run
	// time or yields a value that has no literal text.
	ErrExprEvaluate = MakeErrorf("expression evaluation error")

	// ErrAssignment is returned for a malformed KEY=VALUE assignment.
	ErrAssignment = MakeErrorf("invalid assignment")

	// ErrRewrite is returned when one or more files could not be rewritten.
	ErrRewrite = MakeErrorf("rewrite failed")

	// ErrStale is returned when recorded dependencies no longer match the
	// source they were recorded from.
	ErrStale = MakeErrorf("dependencies changed")
)

// MakeError constructs an Error from errs, flattening nested chains and
// dropping nil values.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error joins the messages of the chain with ": ".
func (e Error) Error() string {
	msg := make([]string, 0, len(e))
	for _, err := range e {
		msg = append(msg, err.Error())
	}

	return strings.Join(msg, ": ")
}

// Wrap returns a new chain with errs appended.
func (e Error) Wrap(errs ...error) Error {
	return append(e[:len(e):len(e)], errs...)
}

// Wrapf returns a new chain with a formatted error appended.
func (e Error) Wrapf(format string, args ...any) Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// Unwrap returns the errors of the chain.
func (e Error) Unwrap() []error { return e }

// Is reports whether target is a chain of the same kind as e.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) || len(t) == 0 || len(e) == 0 {
		return false
	}

	return e[0] == t[0]
}

// UnwrapErrors flattens the chain of err, innermost first.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	var chain Error

	switch e := err.(type) {
	case Error:
		return append(chain, e...)

	case interface{ Unwrap() []error }:
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}

	case interface{ Unwrap() error }:
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
