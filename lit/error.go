package lit

import (
	"errors"
	"go/token"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel kinds).
//
// Every error returned by this package is an [*Error] whose kind is one of
// these values. [errors.Is] matches an error against its own kind and every
// parent kind, so all synthesis failures also match [ErrSynthesis].
var (
	ErrClassification         = newKind("unsupported reference expression", nil)
	ErrResolution             = newKind("argument is not a string literal", nil)
	ErrArgumentCount          = newKind("wrong number of arguments", nil)
	ErrNotADeclaration        = newKind("not a const or var declaration", nil)
	ErrUnsupportedLiteralKind = newKind("unsupported literal kind", nil)

	ErrSynthesis          = newKind("invalid replacement value", nil)
	ErrMalformedEscape    = newKind("malformed quoted literal", ErrSynthesis)
	ErrCharCount          = newKind("value must contain exactly one character", ErrSynthesis)
	ErrByteCount          = newKind("value must contain exactly one byte", ErrSynthesis)
	ErrNonASCII           = newKind("value contains non-ASCII characters", ErrSynthesis)
	ErrMalformedBool      = newKind("malformed boolean literal", ErrSynthesis)
	ErrMalformedNumeric   = newKind("malformed numeric literal", ErrSynthesis)
	ErrMalformedArray     = newKind("malformed array literal", ErrSynthesis)
	ErrMalformedAggregate = newKind("malformed aggregate literal", ErrSynthesis)
)

// Error represents a materialization error with an optional source position
// and structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg    string
	kind   *Error // Sentinel this error derives from (self for sentinels)
	parent *Error // Parent kind, set only on sentinels
	pos    token.Position
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
}

func newKind(msg string, parent *Error) *Error {
	e := &Error{msg: msg, parent: parent}
	e.kind = e

	return e
}

// WrapError returns err as an [*Error], converting it when necessary.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message from the available fields:
	//
	//   "<pos>: <msg>: <err>"
	//
	// where each part is omitted when unset.
	part := make([]string, 0, 3)

	if e.pos.IsValid() {
		part = append(part, e.pos.String())
	}

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the kind of e or one of its parent kinds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.kind != t {
		return false
	}

	for k := e.kind; k != nil; k = k.parent {
		if k == t {
			return true
		}
	}

	return false
}

// Position returns the source position the error is attributed to.
func (e *Error) Position() token.Position { return e.pos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs, slog.String("pos", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error of the same kind wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.parent = nil
	c.err = err

	return &c
}

// At creates a new Error of the same kind attributed to pos.
func (e *Error) At(pos token.Position) *Error {
	c := *e
	c.parent = nil
	c.pos = pos

	return &c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := *e
	c.parent = nil
	c.attrs = newAttrs

	return &c
}
