package dom

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/ardnew/pagebind/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrParse    = pkg.NewError("failed to parse document")
	ErrFragment = pkg.NewError("failed to parse fragment")
	ErrRender   = pkg.NewError("failed to render document")
)

// HTML is a [Document] backed by a parsed HTML tree.
//
// Activation handlers run synchronously on the goroutine that calls
// [HTML.Activate], one activation at a time.
type HTML struct {
	root  *html.Node
	ready chan struct{}

	mu       sync.Mutex // guards handlers
	handlers map[*html.Node][]func()

	run sync.Mutex // serializes Activate and Render
}

// Parse reads a complete HTML document from r. The returned document is
// ready immediately.
func Parse(r io.Reader) (*HTML, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, ErrParse.Wrap(err)
	}

	d := &HTML{
		root:     root,
		ready:    make(chan struct{}),
		handlers: make(map[*html.Node][]func()),
	}
	close(d.ready)

	return d, nil
}

// Render writes the document, including every mutation made so far, to w.
func (d *HTML) Render(w io.Writer) error {
	d.run.Lock()
	defer d.run.Unlock()

	if err := html.Render(w, d.root); err != nil {
		return ErrRender.Wrap(err)
	}

	return nil
}

// Ready implements [Document].
func (d *HTML) Ready() <-chan struct{} { return d.ready }

// ByClass implements [Document].
func (d *HTML) ByClass(class string) []Element {
	var out []Element

	for n := range d.root.Descendants() {
		if n.Type == html.ElementNode && hasClass(getAttr(n, "class"), class) {
			out = append(out, &node{doc: d, n: n})
		}
	}

	return out
}

// ByID implements [Document].
func (d *HTML) ByID(id string) (Element, bool) {
	if n := d.byID(id); n != nil {
		return &node{doc: d, n: n}, true
	}

	return nil, false
}

func (d *HTML) byID(id string) *html.Node {
	if id == "" {
		return nil
	}

	for n := range d.root.Descendants() {
		if n.Type == html.ElementNode && getAttr(n, "id") == id {
			return n
		}
	}

	return nil
}

// Activate runs the handlers registered on the element with the given id,
// in registration order. It reports whether such an element exists.
//
// Handlers must not call Activate or Render themselves.
func (d *HTML) Activate(id string) bool {
	n := d.byID(id)
	if n == nil {
		return false
	}

	d.mu.Lock()
	fns := append([]func(){}, d.handlers[n]...)
	d.mu.Unlock()

	d.run.Lock()
	defer d.run.Unlock()

	for _, fn := range fns {
		fn()
	}

	return true
}

// Handlers returns the number of activation handlers registered on the
// element with the given id.
func (d *HTML) Handlers(id string) int {
	n := d.byID(id)
	if n == nil {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.handlers[n])
}

// node implements [Element] for one element of an [HTML] document.
type node struct {
	doc *HTML
	n   *html.Node
}

func (e *node) ID() string { return getAttr(e.n, "id") }

func (e *node) Text() string {
	var sb strings.Builder

	for c := range e.n.Descendants() {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}

	return sb.String()
}

func (e *node) SetText(text string) {
	removeChildren(e.n)
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *node) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}

func (e *node) SetAttr(name, value string) { setAttr(e.n, name, value) }

func (e *node) HasClass(class string) bool {
	return hasClass(getAttr(e.n, "class"), class)
}

func (e *node) AddClass(class string) {
	setAttr(e.n, "class", addClass(getAttr(e.n, "class"), class))
}

func (e *node) RemoveClass(class string) {
	list := removeClass(getAttr(e.n, "class"), class)
	if list == "" {
		delAttr(e.n, "class")

		return
	}

	setAttr(e.n, "class", list)
}

func (e *node) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return ErrFragment.With(slog.String("id", e.ID())).Wrap(err)
	}

	removeChildren(e.n)

	for _, c := range nodes {
		e.n.AppendChild(c)
	}

	return nil
}

func (e *node) Parent() (Element, bool) {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil, false
	}

	return &node{doc: e.doc, n: p}, true
}

func (e *node) Find(class string) (Element, bool) {
	for c := range e.n.Descendants() {
		if c.Type == html.ElementNode && hasClass(getAttr(c, "class"), class) {
			return &node{doc: e.doc, n: c}, true
		}
	}

	return nil, false
}

func (e *node) OnActivate(fn func()) {
	if fn == nil {
		return
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	e.doc.handlers[e.n] = append(e.doc.handlers[e.n], fn)
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}

	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val

			return
		}
	}

	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func delAttr(n *html.Node, key string) {
	kept := n.Attr[:0]

	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			kept = append(kept, a)
		}
	}

	n.Attr = kept
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}
