package dom

import "strings"

// HiddenClass hides an element while present.
const HiddenClass = "is-hidden"

// Element is one node of a page.
type Element interface {
	// ID returns the id attribute, or "" if there is none.
	ID() string
	// Text returns the concatenated text content of the element.
	Text() string
	// SetText replaces all children with a single text node.
	SetText(text string)
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	HasClass(class string) bool
	AddClass(class string)
	RemoveClass(class string)
	// SetInnerHTML replaces all children with the parsed markup fragment.
	SetInnerHTML(markup string) error
	// Parent returns the enclosing element, if any.
	Parent() (Element, bool)
	// Find returns the first descendant carrying class, in document order.
	Find(class string) (Element, bool)
	// OnActivate registers fn to run each time the element is activated.
	OnActivate(fn func())
}

// Document is a page of elements.
type Document interface {
	// ByClass returns every element carrying class, in document order.
	ByClass(class string) []Element
	ByID(id string) (Element, bool)
	// Ready is closed once the document is fully loaded.
	Ready() <-chan struct{}
}

// Show makes el visible.
func Show(el Element) { el.RemoveClass(HiddenClass) }

// Hide makes el invisible.
func Hide(el Element) { el.AddClass(HiddenClass) }

// Hidden reports whether el is hidden.
func Hidden(el Element) bool { return el.HasClass(HiddenClass) }

// hasClass reports whether the space-separated class list contains class.
func hasClass(list, class string) bool {
	for c := range strings.FieldsSeq(list) {
		if c == class {
			return true
		}
	}

	return false
}

// addClass appends class to list unless already present.
func addClass(list, class string) string {
	if class == "" || hasClass(list, class) {
		return list
	}

	if strings.TrimSpace(list) == "" {
		return class
	}

	return strings.TrimSpace(list) + " " + class
}

// removeClass drops every occurrence of class from list.
func removeClass(list, class string) string {
	fields := strings.Fields(list)
	kept := fields[:0]

	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}

	return strings.Join(kept, " ")
}
