package lang

import (
	"log/slog"
	"strings"

	"github.com/ardnew/pagebind/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrMalformedPath = pkg.NewError("malformed path")
	ErrKeyNotFound   = pkg.NewError("key not found")
	ErrIndexRange    = pkg.NewError("index out of range")
	ErrNotContainer  = pkg.NewError("value has no members")
	ErrUnsupported   = pkg.NewError("unsupported native value")
)

// PathError describes where the resolution of a dotted path stopped.
type PathError struct {
	Path    string // The full path being resolved
	Segment string // The segment that could not be resolved
	Depth   int    // Zero-based index of Segment within Path
	Err     error  // One of the sentinel errors above
}

// Error implements the error interface.
func (e *PathError) Error() string {
	var sb strings.Builder

	sb.WriteString("resolve ")
	sb.WriteString(strings.TrimSpace(e.Path))

	if e.Segment != "" {
		sb.WriteString(" at ")
		sb.WriteString(e.Segment)
	}

	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *PathError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *PathError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("path", e.Path),
		slog.String("segment", e.Segment),
		slog.Int("depth", e.Depth),
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("cause", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}
