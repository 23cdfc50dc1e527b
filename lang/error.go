package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error returned by this package is derived from one of these using
// [Error.With], [Error.WithPosition], or [Error.Wrap], so callers can test
// the kind of failure with [errors.Is].
var (
	// ErrSyntax reports a malformed token stream or a grammar violation.
	ErrSyntax = NewError("syntax error")

	// ErrStructure reports well-formed input that violates a structural
	// contract requested by the caller, such as single-root mode.
	ErrStructure = NewError("structure error")

	// ErrQuery reports a path expression that cannot be compiled.
	ErrQuery = NewError("invalid query")

	// ErrReadInput reports a failure to read the source document.
	ErrReadInput = NewError("failed to read input")

	// ErrEncode reports a failure to encode a tree into another format.
	ErrEncode = NewError("encode error")
)

// Position identifies a location in a source document.
// Line and Column are 1-based; Offset is a 0-based byte offset.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether the position refers to a real location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns the position as "file:line:col", omitting the file name
// when it is unknown.
func (p Position) String() string {
	if !p.IsValid() {
		return p.Filename
	}

	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.Filename != "" {
		s = p.Filename + ":" + s
	}

	return s
}

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
	pos    Position
	source string // Source text, used to render a snippet
	base   *Error // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<pos>: <msg>: <err>"
	//   2. "<msg>: <err>"
	//   3. "<msg>"
	//   4. "<err>"
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

// Is reports whether target is the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || (e.base != nil && e.base == t)
}

// Position returns the source location associated with the error, if any.
func (e *Error) Position() Position { return e.pos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs, slog.String("position", e.pos.String()))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.derive()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition records the source location of the error.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.derive()
	c.pos = pos

	return c
}

// WithSource attaches the source text so that [Error.Snippet] can render the
// offending line.
func (e *Error) WithSource(source string) *Error {
	c := e.derive()
	c.source = source

	return c
}

// Snippet renders the line containing the error with a caret under the
// offending column. It returns an empty string when no source or position is
// known.
func (e *Error) Snippet() string {
	if e.source == "" || !e.pos.IsValid() {
		return ""
	}

	lines := strings.Split(e.source, "\n")
	if e.pos.Line > len(lines) {
		return ""
	}

	var buf strings.Builder

	num := strconv.Itoa(e.pos.Line)

	buf.WriteString("  ")
	buf.WriteString(num)
	buf.WriteString(" | ")
	buf.WriteString(lines[e.pos.Line-1])
	buf.WriteByte('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(num)+5)
	if e.pos.Column > 0 {
		padding += strings.Repeat(" ", e.pos.Column-1)
	}

	buf.WriteString(padding + "^\n")

	return buf.String()
}

func (e *Error) derive() *Error {
	c := *e
	if e.base == nil {
		c.base = e
	}

	return &c
}
