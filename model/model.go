package model

import (
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/pagebind/lang"
	"github.com/ardnew/pagebind/log"
)

// Top-level keys of every model.
const (
	KeyInstance  = "MVPInstance"
	KeyNamespace = "Namespace"
	KeyChart     = "ChartInfo"
)

// Model is the read-only value model of one landing page.
type Model struct {
	value    lang.Value
	chart    Chart
	instance Instance
	selected bool
}

// Value returns the model root.
func (m *Model) Value() lang.Value {
	if m == nil {
		return lang.Undefined
	}

	return m.value
}

// Chart returns the chart descriptor the model was built from.
func (m *Model) Chart() Chart {
	if m == nil {
		return Chart{}
	}

	return m.chart
}

// Instance returns the selected deployment instance. The second result is
// false if the selector matched no known instance.
func (m *Model) Instance() (Instance, bool) {
	if m == nil {
		return Instance{}, false
	}

	return m.instance, m.selected
}

type config struct {
	selector    string
	namespace   string
	chart       Chart
	definitions *Definitions
	logger      log.Logger
}

// Option configures [Build].
type Option func(config) config

// WithSelector selects the deployment instance, such as "ska-mid".
func WithSelector(selector string) Option {
	return func(c config) config {
		c.selector = selector

		return c
	}
}

// WithNamespace sets the Kubernetes namespace of the deployment.
func WithNamespace(namespace string) Option {
	return func(c config) config {
		c.namespace = namespace

		return c
	}
}

// WithChart sets the chart descriptor.
func WithChart(chart Chart) Option {
	return func(c config) config {
		c.chart = chart

		return c
	}
}

// WithDefinitions replaces [DefaultDefinitions].
func WithDefinitions(d Definitions) Option {
	return func(c config) config {
		c.definitions = &d

		return c
	}
}

// WithLogger sets the logger used to report derived values.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// Build constructs a [Model].
//
// An unknown selector is not an error: the MVPInstance key is then present
// but undefined, and every path beneath it resolves to [lang.Undefined].
// Derive rules are evaluated in order and each result is visible to the
// rules that follow.
func Build(opts ...Option) (*Model, error) {
	c := config{logger: log.Default()}
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	defs := DefaultDefinitions()
	if c.definitions != nil {
		defs = *c.definitions
	}

	inst, ok := defs.Instance(c.selector)

	instValue := lang.Undefined
	if ok {
		instValue = inst.Value()
	} else {
		c.logger.Debug("unknown instance selector",
			slog.String("selector", c.selector))
	}

	entries := []lang.Entry{
		{Key: KeyInstance, Value: instValue},
		{Key: KeyNamespace, Value: lang.Scalar(c.namespace)},
		{Key: KeyChart, Value: c.chart.Value()},
	}

	env := builtins()
	env[envInstance] = map[string]any{}
	env[envNamespace] = c.namespace
	env[envChart] = c.chart.Value().Native()
	env[envSelector] = c.selector

	if ok {
		env[envInstance] = instValue.Native()
	}

	for _, rule := range defs.Derive {
		v, err := evaluate(rule, env)
		if err != nil {
			return nil, err
		}

		c.logger.Trace("derived value",
			slog.String("key", rule.Key),
			slog.String("value", v.String()))

		env[rule.Key] = v.Native()
		entries = append(entries, lang.Entry{Key: rule.Key, Value: v})
	}

	return &Model{
		value:    lang.Mapping(entries...),
		chart:    c.chart,
		instance: inst,
		selected: ok,
	}, nil
}

func evaluate(rule Rule, env map[string]any) (lang.Value, error) {
	program, err := expr.Compile(rule.Expr, expr.Env(env))
	if err != nil {
		return lang.Undefined, ErrCompileRule.
			With(slog.String("key", rule.Key), slog.String("source", rule.Expr)).
			Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return lang.Undefined, ErrEvalRule.
			With(slog.String("key", rule.Key), slog.String("source", rule.Expr)).
			Wrap(err)
	}

	v, err := lang.FromNative(out)
	if err != nil {
		return lang.Undefined, ErrEvalRule.
			With(slog.String("key", rule.Key)).
			Wrap(err)
	}

	return v, nil
}
