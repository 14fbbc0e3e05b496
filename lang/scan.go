package lang

import (
	"iter"
	"strings"
)

// Placeholder delimiters.
const (
	OpenDelim  = '{'
	CloseDelim = '}'
)

// Placeholders returns an iterator over the contents of every {...} span in
// text, left to right, with the delimiters stripped.
//
// A span runs from a '{' to the next '}', so spans never nest: "{a{b}"
// yields "a{b". Empty spans are skipped and an unterminated '{' ends the
// scan. The iterator holds no state between runs and may be ranged over
// any number of times.
func Placeholders(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := text

		for {
			open := strings.IndexByte(rest, OpenDelim)
			if open < 0 {
				return
			}

			rest = rest[open+1:]

			end := strings.IndexByte(rest, CloseDelim)
			if end < 0 {
				return
			}

			token := rest[:end]
			rest = rest[end+1:]

			if token == "" {
				continue
			}

			if !yield(token) {
				return
			}
		}
	}
}

// Placeholder wraps token in placeholder delimiters.
func Placeholder(token string) string {
	return string(OpenDelim) + token + string(CloseDelim)
}
