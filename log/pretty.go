package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// layout selects how a pretty record is arranged.
type layout int

const (
	layoutLine  layout = iota // key=value pairs on one line
	layoutBlock               // braced block, one "key: value" per line
)

// field is one flattened attribute. Group members are flattened into dotted
// keys, e.g. "error.cause".
type field struct {
	key string
	val slog.Value
}

// prettyHandler implements a colorized handler for log messages.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	layout layout
	fields []field // accumulated by WithAttrs
	prefix string  // accumulated by WithGroup
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	l layout,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		layout: l,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, len(h.fields)+r.NumAttrs()+4)

	if !r.Time.IsZero() {
		fields = h.builtin(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = h.builtin(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = h.builtin(fields, slog.String(
				slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line),
			))
		}
	}

	fields = h.builtin(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.fields...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, a)

		return true
	})

	buf := new(bytes.Buffer)

	switch h.layout {
	case layoutBlock:
		buf.WriteString("{\n")

		for i, f := range fields {
			if i > 0 {
				buf.WriteString(",\n")
			}

			buf.WriteString("  ")
			writeKey(buf, f.key)
			buf.WriteString(": ")
			writeValue(buf, f, r.Level)
		}

		buf.WriteString("\n}\n")

	default:
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(' ')
			}

			writeKey(buf, f.key)
			buf.WriteByte('=')
			writeValue(buf, f, r.Level)
		}

		buf.WriteByte('\n')
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		c.fields = flatten(c.fields, c.prefix, a)
	}

	return c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := h.clone()
	c.prefix += name + "."

	return c
}

func (h *prettyHandler) clone() *prettyHandler {
	return &prettyHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		layout: h.layout,
		fields: h.fields[:len(h.fields):len(h.fields)],
		prefix: h.prefix,
	}
}

// builtin applies ReplaceAttr to a record-level attribute and appends it
// unless the replacement dropped it.
func (h *prettyHandler) builtin(fields []field, a slog.Attr) []field {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, field{key: a.Key, val: a.Value.Resolve()})
}

// flatten appends a, resolving LogValuers and expanding groups into dotted
// keys beneath prefix.
func flatten(fields []field, prefix string, a slog.Attr) []field {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		sub := prefix
		if a.Key != "" {
			sub += a.Key + "."
		}

		for _, g := range v.Group() {
			fields = flatten(fields, sub, g)
		}

		return fields
	}

	if a.Key == "" {
		return fields
	}

	return append(fields, field{key: prefix + a.Key, val: v})
}

func writeKey(buf *bytes.Buffer, key string) {
	buf.WriteString(colorGray)
	buf.WriteString(key)
	buf.WriteString(colorReset)
}

func writeValue(buf *bytes.Buffer, f field, level slog.Level) {
	v := f.val

	color, text := colorCyan, ""

	switch v.Kind() {
	case slog.KindString:
		text = v.String()

		if f.key == slog.LevelKey {
			color = levelColor(level)
		}

	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color, text = colorRed, "false"
		if v.Bool() {
			color, text = colorGreen, "true"
		}

	case slog.KindDuration:
		color, text = colorMagenta, v.Duration().String()

	case slog.KindTime:
		color, text = colorBlue, v.Time().String()

	case slog.KindAny:
		switch x := v.Any().(type) {
		case slog.Level:
			color, text = levelColor(x), strings.ToUpper(Level(x).String())
		case nil:
			color, text = colorGray, "null"
		case error:
			color, text = colorRed, x.Error()
		default:
			text = fmt.Sprint(x)
		}

	default:
		text = v.String()
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
