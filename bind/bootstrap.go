package bind

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	"github.com/ardnew/pagebind/dom"
	"github.com/ardnew/pagebind/lang"
	"github.com/ardnew/pagebind/log"
	"github.com/ardnew/pagebind/model"
)

// DefaultSuggestions is the number of fuzzy path suggestions logged with
// each unresolved path.
const DefaultSuggestions = 3

// Report summarizes one [Bootstrap] pass.
type Report struct {
	// Bound counts the elements visited per marker class.
	Bound map[string]int
	// Unresolved lists every path that did not resolve, in visiting order.
	Unresolved []string
	// Failed counts the elements whose binding failed for any other reason.
	Failed int
}

// Count returns the number of elements visited for class.
func (r Report) Count(class string) int { return r.Bound[class] }

// Total returns the number of elements visited.
func (r Report) Total() int {
	n := 0
	for c := range maps.Values(r.Bound) {
		n += c
	}

	return n
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(r.Bound)+2)

	for _, class := range Markers() {
		if n := r.Bound[class]; n > 0 {
			attrs = append(attrs, slog.Int(class, n))
		}
	}

	attrs = append(attrs,
		slog.Int("unresolved", len(r.Unresolved)),
		slog.Int("failed", r.Failed),
	)

	return slog.GroupValue(attrs...)
}

type config struct {
	logger  log.Logger
	suggest int
}

// Option configures [Bootstrap].
type Option func(config) config

// WithLogger sets the logger that receives binding diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// WithSuggestions sets how many fuzzy path suggestions accompany each
// unresolved path. Zero disables suggestions.
func WithSuggestions(n int) Option {
	return func(c config) config {
		c.suggest = max(n, 0)

		return c
	}
}

// Bootstrap binds every marked element of doc.
//
// It blocks until doc is ready or ctx is done, returning the cause of
// cancellation in the latter case. It then runs a single pass over the
// marker classes in [Markers] order. Binding failures are logged and
// recorded in the returned [Report]; they never end the pass.
func Bootstrap(
	ctx context.Context,
	doc dom.Document,
	m lang.Value,
	chart model.Chart,
	opts ...Option,
) (Report, error) {
	c := config{logger: log.Default(), suggest: DefaultSuggestions}
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	select {
	case <-ctx.Done():
		return Report{}, context.Cause(ctx)
	case <-doc.Ready():
	}

	c.logger.DebugContext(ctx, "document ready")

	b := binder{
		ctx:    ctx,
		config: c,
		doc:    doc,
		model:  m,
		chart:  chart,
		report: Report{Bound: make(map[string]int)},
	}

	for _, class := range Markers() {
		for _, el := range doc.ByClass(class) {
			b.bind(class, el)
		}
	}

	c.logger.InfoContext(ctx, "page bound", slog.Any("report", b.report))

	return b.report, nil
}

type binder struct {
	ctx context.Context
	config
	doc    dom.Document
	model  lang.Value
	chart  model.Chart
	report Report
}

func (b *binder) bind(class string, el dom.Element) {
	var err error

	switch class {
	case ClassText:
		err = Text(el, b.model)
	case ClassImage:
		err = Image(el, b.model)
	case ClassVersioning:
		err = Versioning(el, b.chart)
	case ClassURL:
		err = Link(el, b.model)
	case ClassPanel:
		err = WirePanel(b.doc, el)
	}

	b.report.Bound[class]++

	elem := slog.Group("element",
		slog.String("class", class),
		slog.String("id", el.ID()),
	)

	if err == nil {
		b.logger.TraceContext(b.ctx, "bound", elem)

		return
	}

	perrs := pathErrors(err)
	for _, perr := range perrs {
		b.report.Unresolved = append(b.report.Unresolved, perr.Path)

		attrs := []slog.Attr{elem, slog.Any("error", perr)}
		if hint := lang.Suggest(b.model, perr.Path, b.suggest); len(hint) > 0 {
			attrs = append(attrs, slog.Any("suggest", hint))
		}

		b.logger.WarnContext(b.ctx, "unresolved path", attrs...)
	}

	if len(perrs) == 0 {
		b.report.Failed++
		b.logger.WarnContext(b.ctx, "binding failed", elem, slog.Any("error", err))
	}
}

// pathErrors returns every [*lang.PathError] in the tree of err.
func pathErrors(err error) []*lang.PathError {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*lang.PathError
		for _, e := range joined.Unwrap() {
			out = append(out, pathErrors(e)...)
		}

		return out
	}

	var perr *lang.PathError
	if errors.As(err, &perr) {
		return []*lang.PathError{perr}
	}

	return nil
}
