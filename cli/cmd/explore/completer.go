package explore

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pagebind/lang"
)

// commands are the names accepted after the command prefix.
var commands = []string{"help", "paths", "clear", "quit"}

// commandPrefix starts a command instead of a path.
const commandPrefix = ":"

// isWordBoundary reports whether r separates path segments for completion.
// Hyphens and underscores belong to keys.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary, such as right after a dot.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the dotted path leading up to the word starting at
// wordStart. For input "MVPInstance.na" with the word "na", the parent path
// is "MVPInstance". Returns "" for top-level words.
func parentPath(input string, wordStart int) string {
	prefix := strings.TrimRight(input[:wordStart], ".")

	if i := strings.LastIndexAny(prefix, " \t"); i >= 0 {
		prefix = prefix[i+1:]
	}

	return prefix
}

// childCandidates returns the member names of the value at parent: keys of
// a mapping or indices of a sequence. An empty parent names the root.
func childCandidates(root lang.Value, parent string) []string {
	v := root
	if parent != "" {
		v = lang.Resolve(root, parent)
	}

	switch v.Kind() {
	case lang.KindMapping:
		names := make([]string, 0, v.Len())
		for k := range v.Keys() {
			names = append(names, k)
		}

		return names

	case lang.KindSequence:
		names := make([]string, v.Len())
		for i := range names {
			names[i] = strconv.Itoa(i)
		}

		return names

	default:
		return nil
	}
}

// computeMatches returns the fuzzy matches for the word under the cursor.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	if cmd, ok := strings.CutPrefix(input, commandPrefix); ok {
		if cmd == "" || strings.ContainsAny(cmd, " \t") {
			return nil, len(input), len(input)
		}

		return fuzzy.Find(cmd, commands), len(commandPrefix), len(input)
	}

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	parent := parentPath(input, wordStart)
	candidates := childCandidates(m.root, parent)

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	// With an empty word at the top level the hint stays visible. After a
	// dot, every member is offered.
	if word == "" {
		if parent == "" {
			return nil, wordStart, wordEnd
		}

		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle, highlightStyle := suggestionStyle, matchStyle
	if selected {
		baseStyle, highlightStyle = selectedStyle, selectedMatchStyle
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}

// previewWidth is the longest scalar shown in a preview.
const previewWidth = 40

// formatPreview generates a one-line summary of v.
func formatPreview(v lang.Value) string {
	switch v.Kind() {
	case lang.KindScalar:
		s := strconv.Quote(v.String())
		if len(s) > previewWidth {
			return s[:previewWidth-3] + "..."
		}

		return s

	case lang.KindMapping:
		return fmt.Sprintf("{ %d keys }", v.Len())

	case lang.KindSequence:
		return fmt.Sprintf("[ %d items ]", v.Len())

	default:
		return ""
	}
}
