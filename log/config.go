package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// Defaults applied by [Make] before any option.
const (
	DefaultTimeLayout = time.RFC3339
	DefaultCaller     = false
	DefaultPretty     = true
)

// config is the immutable description of a Logger's handler.
// Options take and return it by value.
type config struct {
	output io.Writer
	layout string // resolved time layout; empty omits the time attribute
	level  Level
	format Format
	caller bool
	pretty bool
}

// Option modifies a Logger configuration.
type Option func(config) config

func defaultConfig(w io.Writer) config {
	return WithDefaults(w)(config{})
}

func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// formatTime renders t with the configured layout, or returns the empty
// string when timestamps are disabled.
func (c config) formatTime(t time.Time) string {
	if c.layout == "" {
		return ""
	}

	return t.Format(c.layout)
}

func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch v := a.Value.Any().(type) {
	case time.Time:
		if a.Key != slog.TimeKey {
			return a
		}

		if c.layout == "" {
			return slog.Attr{}
		}

		return slog.String(a.Key, c.formatTime(v))

	case slog.Level:
		if a.Key != slog.LevelKey {
			return a
		}

		return slog.String(a.Key, strings.ToUpper(Level(v).String()))
	}

	return a
}

func (c config) handler() slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}

	if c.pretty {
		switch c.format {
		case FormatJSON:
			return newPrettyHandler(c.output, opts, layoutBlock)
		case FormatText:
			return newPrettyHandler(c.output, opts, layoutLine)
		}

		return slog.DiscardHandler
	}

	switch c.format {
	case FormatJSON:
		return slog.NewJSONHandler(c.output, opts)
	case FormatText:
		return slog.NewTextHandler(c.output, opts)
	}

	return slog.DiscardHandler
}

// WithDefaults resets every setting to its default and writes to w.
func WithDefaults(w io.Writer) Option {
	return func(config) config {
		return config{
			layout: DefaultTimeLayout,
			level:  DefaultLevel,
			format: DefaultFormat,
			caller: DefaultCaller,
			pretty: DefaultPretty,
		}.with(WithOutput(w))
	}
}

// WithOutput sends log records to w. A nil w discards them.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		c.output = w
		if c.output == nil {
			c.output = io.Discard
		}

		return c
	}
}

// WithLevel drops records below level.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level

		return c
	}
}

// WithFormat selects JSON or text records.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format

		return c
	}
}

// WithTimeLayout sets the timestamp layout.
//
// Names of the common [time] layouts are recognized regardless of case and
// punctuation ("RFC3339", "rfc-3339-nano", "DateTime", "Kitchen", "Stamp",
// "StampMilli"). Any other string is used verbatim as a [time.Time.Format]
// layout. A blank layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.layout = resolveLayout(layout)

		return c
	}
}

// WithCaller adds the source file and line of the logging call.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable

		return c
	}
}

// WithPretty colorizes records for a terminal: text records stay on one
// line and JSON records become indented blocks.
func WithPretty(enable bool) Option {
	return func(c config) config {
		c.pretty = enable

		return c
	}
}

// namedLayouts maps normalized layout names to [time] layouts.
var namedLayouts = map[string]string{
	"none":        "",
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
}

func resolveLayout(layout string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}

		return -1
	}, layout)

	if name == "" {
		return ""
	}

	if std, ok := namedLayouts[name]; ok {
		return std
	}

	return layout
}
