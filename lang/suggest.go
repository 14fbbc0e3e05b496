package lang

import (
	"errors"
	"iter"
	"slices"
	"strconv"

	"github.com/sahilm/fuzzy"
)

// Paths returns an iterator over every path in v paired with its value, in
// pre-order: a mapping or sequence is yielded before its members.
// The root itself is not yielded.
func Paths(v Value) iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		walk(v, nil, yield)
	}
}

func walk(v Value, prefix Path, yield func(string, Value) bool) bool {
	visit := func(seg string, child Value) bool {
		p := append(prefix[:len(prefix):len(prefix)], seg)

		return yield(p.String(), child) && walk(child, p, yield)
	}

	switch v.Kind() {
	case KindMapping:
		for k, child := range v.Entries() {
			if !visit(k, child) {
				return false
			}
		}

	case KindSequence:
		for i, child := range v.Items() {
			if !visit(strconv.Itoa(i), child) {
				return false
			}
		}
	}

	return true
}

// Suggest returns up to limit known paths that plausibly match path, best
// first. It returns nil if path resolves.
//
// Candidates are the siblings of the segment where resolution stopped,
// ranked by fuzzy subsequence match against that segment.
func Suggest(v Value, path string, limit int) []string {
	_, err := Lookup(v, path)

	var perr *PathError
	if err == nil || !errors.As(err, &perr) || perr.Segment == "" {
		return nil
	}

	p, err := ParsePath(path)
	if err != nil {
		return nil
	}

	parent := p[:perr.Depth]
	container := parent.Resolve(v)

	var siblings []string

	switch container.Kind() {
	case KindMapping:
		siblings = slices.Collect(container.Keys())

	case KindSequence:
		for i := range container.Items() {
			siblings = append(siblings, strconv.Itoa(i))
		}
	}

	matches := fuzzy.Find(perr.Segment, siblings)
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, append(parent[:len(parent):len(parent)], m.Str).String())
	}

	return out
}
