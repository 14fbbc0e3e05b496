package explore

import (
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pagebind/lang"
)

func testRoot() lang.Value {
	return lang.Mapping(
		lang.Entry{Key: "MVPInstance", Value: lang.Mapping(
			lang.Entry{Key: "name", Value: lang.Scalar("SKA Mid")},
			lang.Entry{Key: "telescope", Value: lang.Scalar("mid")},
		)},
		lang.Entry{Key: "Namespace", Value: lang.Scalar("integration")},
		lang.Entry{Key: "ChartInfo", Value: lang.Mapping(
			lang.Entry{Key: "dependencies", Value: lang.Sequence(
				lang.Mapping(lang.Entry{Key: "name", Value: lang.Scalar("tango-base")}),
				lang.Mapping(lang.Entry{Key: "name", Value: lang.Scalar("tango-util")}),
			)},
		)},
	)
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "Name", 4, "Name", 0, 4},
		{"dot separated", "MVPInstance.na", 14, "na", 12, 14},
		{"mid word", "MVPInstance", 3, "MVPInstance", 0, 11},
		{"at start", "Name", 0, "Name", 0, 4},
		{"empty after dot", "ChartInfo.", 10, "", 10, 10},
		{"hyphenated", "tango-ba", 8, "tango-ba", 0, 8},
		{"cursor past end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      string
	}{
		{"Name", 0, ""},
		{"MVPInstance.na", 12, "MVPInstance"},
		{"ChartInfo.dependencies.0.na", 25, "ChartInfo.dependencies.0"},
		{"ChartInfo.", 10, "ChartInfo"},
		{"  MVPInstance.", 14, "MVPInstance"},
	}

	for _, tt := range tests {
		if got := parentPath(tt.input, tt.wordStart); got != tt.want {
			t.Errorf("parentPath(%q, %d) = %q, want %q",
				tt.input, tt.wordStart, got, tt.want)
		}
	}
}

func TestChildCandidates(t *testing.T) {
	root := testRoot()

	tests := []struct {
		parent string
		want   []string
	}{
		{"", []string{"MVPInstance", "Namespace", "ChartInfo"}},
		{"MVPInstance", []string{"name", "telescope"}},
		{"ChartInfo.dependencies", []string{"0", "1"}},
		{"Namespace", nil},
		{"Missing", nil},
		{"a..b", nil},
	}

	for _, tt := range tests {
		if got := childCandidates(root, tt.parent); !slices.Equal(got, tt.want) {
			t.Errorf("childCandidates(%q) = %q, want %q", tt.parent, got, tt.want)
		}
	}
}

func TestRenderCandidateBar(t *testing.T) {
	var matches fuzzy.Matches
	for i, s := range []string{"alpha", "beta", "gamma", "delta"} {
		matches = append(matches, fuzzy.Match{Str: s, Index: i})
	}

	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("empty matches rendered %q", got)
	}

	if got := renderCandidateBar(matches, 0, false, 0); got != "" {
		t.Errorf("zero width rendered %q", got)
	}

	full := stripANSI(renderCandidateBar(matches, 0, false, 80))
	if full != "alpha  beta  gamma  delta" {
		t.Errorf("bar = %q", full)
	}

	narrow := stripANSI(renderCandidateBar(matches, 0, false, 15))
	if narrow != "alpha  beta  ..." {
		t.Errorf("narrow bar = %q", narrow)
	}
}

func TestFormatPreview(t *testing.T) {
	root := testRoot()

	tests := []struct {
		path string
		want string
	}{
		{"Namespace", `"integration"`},
		{"MVPInstance", "{ 2 keys }"},
		{"ChartInfo.dependencies", "[ 2 items ]"},
		{"Missing", ""},
	}

	for _, tt := range tests {
		if got := formatPreview(lang.Resolve(root, tt.path)); got != tt.want {
			t.Errorf("formatPreview(%s) = %q, want %q", tt.path, got, tt.want)
		}
	}

	long := formatPreview(lang.Scalar(string(make([]byte, 100))))
	if len(long) != previewWidth {
		t.Errorf("long preview length = %d, want %d", len(long), previewWidth)
	}
}
