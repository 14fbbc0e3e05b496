package bind

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/ardnew/pagebind/dom"
	"github.com/ardnew/pagebind/model"
)

// LineBreak separates the lines of a version fragment.
const LineBreak = "<br>"

// VersionLines returns "<name>-<version>" for the chart followed by one line
// per dependency, in declaration order. Nothing is sorted or removed.
func VersionLines(chart model.Chart) []string {
	lines := make([]string, 0, len(chart.Dependencies)+1)
	lines = append(lines, chart.String())

	for _, d := range chart.Dependencies {
		lines = append(lines, d.String())
	}

	return lines
}

// VersionFragment returns the escaped [VersionLines] joined by [LineBreak].
func VersionFragment(chart model.Chart) string {
	lines := VersionLines(chart)
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}

	return strings.Join(lines, LineBreak)
}

// Versioning replaces the inner markup of el with [VersionFragment].
func Versioning(el dom.Element, chart model.Chart) error {
	if err := el.SetInnerHTML(VersionFragment(chart)); err != nil {
		return ErrVersioning.Wrap(err)
	}

	return nil
}
