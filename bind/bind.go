package bind

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/pagebind/dom"
	"github.com/ardnew/pagebind/lang"
)

// Marker classes.
const (
	ClassText       = "templateText"
	ClassImage      = "templateImage"
	ClassVersioning = "templateVersioning"
	ClassURL        = "templateURL"
	ClassPanel      = "openedByMenu"
)

// Markers returns the marker classes in the order [Bootstrap] visits them.
func Markers() []string {
	return []string{ClassText, ClassImage, ClassVersioning, ClassURL, ClassPanel}
}

// Text replaces each "{path}" placeholder in the text of el with the value
// at path in m, then shows el.
//
// Each scanned placeholder replaces the first remaining occurrence of its
// literal text, so repeated placeholders are all replaced. The element is
// left untouched when it contains no placeholders, which makes Text
// idempotent. The returned error joins a [*lang.PathError] for every
// placeholder that did not resolve to a defined value.
func Text(el dom.Element, m lang.Value) error {
	text := el.Text()
	out := text

	var errs []error

	for token := range lang.Placeholders(text) {
		v, err := lookup(m, token)
		if err != nil {
			errs = append(errs, err)
		}

		out = strings.Replace(out, lang.Placeholder(token), v.String(), 1)
	}

	if out != text {
		el.SetText(out)
	}

	dom.Show(el)

	return errors.Join(errs...)
}

// Image replaces the src attribute of el, read as a whole dotted path, with
// the value at that path in m, then shows the parent of el.
func Image(el dom.Element, m lang.Value) error {
	err := replaceAttr(el, "src", m)

	if parent, ok := el.Parent(); ok {
		dom.Show(parent)
	}

	return err
}

// Link replaces the href attribute of el, read as a whole dotted path, with
// the value at that path in m.
func Link(el dom.Element, m lang.Value) error {
	return replaceAttr(el, "href", m)
}

func replaceAttr(el dom.Element, name string, m lang.Value) error {
	path, ok := el.Attr(name)
	if !ok {
		return ErrMissingAttr.With(
			slog.String("attr", name),
			slog.String("id", el.ID()),
		)
	}

	v, err := lookup(m, path)
	el.SetAttr(name, v.String())

	return err
}

// lookup resolves path like [lang.Lookup], additionally reporting a path
// that exists but holds an undefined value.
func lookup(m lang.Value, path string) (lang.Value, error) {
	v, err := lang.Lookup(m, path)
	if err != nil || v.IsDefined() {
		return v, err
	}

	p, _ := lang.ParsePath(path)

	return v, &lang.PathError{
		Path:    path,
		Segment: p[len(p)-1],
		Depth:   len(p) - 1,
		Err:     ErrUndefined,
	}
}
