package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Separator delimits the segments of a dotted path.
const Separator = "."

// Path is a parsed dotted path.
type Path []string

// ParsePath splits s into its segments.
//
// Every segment must be non-empty: a leading, trailing or repeated
// [Separator] is rejected with a [*PathError] wrapping [ErrMalformedPath].
// Whitespace is part of a segment, so " a" names a different key than "a".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, &PathError{Path: s, Err: ErrMalformedPath}
	}

	segs := strings.Split(s, Separator)
	for i, seg := range segs {
		if seg == "" {
			return nil, &PathError{
				Path:  s,
				Depth: i,
				Err: ErrMalformedPath.
					With(slog.Int("segment", i)),
			}
		}
	}

	return Path(segs), nil
}

// String joins the segments of p with [Separator].
func (p Path) String() string { return strings.Join(p, Separator) }

// Resolve returns the value at path within v, or [Undefined] if the path is
// malformed or any segment is absent.
func Resolve(v Value, path string) Value {
	r, _ := Lookup(v, path)

	return r
}

// Lookup returns the value at path within v.
//
// On failure it returns [Undefined] and a [*PathError] identifying the
// segment where the walk stopped.
func Lookup(v Value, path string) (Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return Undefined, err
	}

	return p.lookup(v, path, 0)
}

// Resolve returns the value at p within v, or [Undefined].
func (p Path) Resolve(v Value) Value {
	r, _ := p.lookup(v, p.String(), 0)

	return r
}

// lookup takes the first segment of p as the current key, looks it up in
// cur, and recurses into the remainder with the result.
func (p Path) lookup(cur Value, full string, depth int) (Value, error) {
	if len(p) == 0 {
		return cur, nil
	}

	head, rest := p[0], p[1:]

	next, err := member(cur, head)
	if err != nil {
		return Undefined, &PathError{
			Path:    full,
			Segment: head,
			Depth:   depth,
			Err:     err,
		}
	}

	return rest.lookup(next, full, depth+1)
}

// member returns the child of cur named by seg.
func member(cur Value, seg string) (Value, error) {
	switch cur.Kind() {
	case KindMapping:
		next, ok := cur.Get(seg)
		if !ok {
			return Undefined, ErrKeyNotFound
		}

		return next, nil

	case KindSequence:
		i, err := strconv.Atoi(seg)
		if err != nil {
			return Undefined, ErrKeyNotFound.Wrap(err)
		}

		next, ok := cur.Index(i)
		if !ok {
			return Undefined, ErrIndexRange.
				With(slog.Int("len", cur.Len()))
		}

		return next, nil

	default:
		return Undefined, ErrNotContainer.
			With(slog.String("kind", cur.Kind().String()))
	}
}
