package pkg

import (
	"errors"
	"log/slog"
)

// Error is an error carrying structured logging attributes.
//
// Package-level sentinels are declared with [NewError] and specialized where
// the failure happens:
//
//	return ErrReadInput.With(slog.String("file", path)).Wrap(err)
//
// Every value derived from a sentinel with [Error.With] or [Error.Wrap]
// matches that sentinel, and only that sentinel, under [errors.Is].
type Error struct {
	msg   string
	cause error
	attrs []slog.Attr
	root  *Error // sentinel this value was derived from
}

// Errors shared by the commands.
var (
	ErrReadInput     = NewError("read input")
	ErrWriteOutput   = NewError("write output")
	ErrInvalidFormat = NewError("invalid format")
)

// NewError returns a sentinel with the given message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.root = e

	return e
}

// WrapError returns the first *Error in the chain of err, or a new Error
// whose message is that of err.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{cause: err}
}

// Error returns "msg: cause", omitting whichever part is empty.
func (e *Error) Error() string {
	switch {
	case e.cause == nil:
		return e.msg
	case e.msg == "":
		return e.cause.Error()
	}

	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.root != nil && t == e.root
}

// LogValue groups the message, the cause and the attached attributes.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 2+len(e.attrs))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.cause = err

	return &c
}

// With returns a copy of e with attrs appended. The receiver is unchanged.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...)

	return &c
}
