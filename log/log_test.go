package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}
	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}
	if logger.Format() != FormatJSON {
		t.Errorf("expected default format JSON, got %v", logger.Format())
	}
	if !logger.config.pretty {
		t.Error("expected pretty enabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelError))
	logger2.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_ShowsTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace), WithPretty(false))
	logger.Trace("deep")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if result["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", result["level"])
	}
}

func TestLogger_Make_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller info does not name this file: %s", buf.String())
	}

	buf.Reset()
	logger2 := Make(&buf, WithCaller(false), WithPretty(false))
	logger2.Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_Make_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}
		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, "test message") {
			t.Error("message not found in text output")
		}
		if !strings.Contains(output, "key=value") {
			t.Error("key=value not found in text output")
		}
	})
}

func TestLogger_TimeLayoutNone_OmitsTime(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithTimeLayout("none"), WithPretty(false))
	logger.Info("timeless")

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if _, ok := result["time"]; ok {
		t.Errorf("time present with layout none: %v", result["time"])
	}
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"debug at debug", (Logger).Debug, LevelDebug, true},
		{"debug at info", (Logger).Debug, LevelInfo, false},
		{"info at info", (Logger).Info, LevelInfo, true},
		{"info at warn", (Logger).Info, LevelWarn, false},
		{"warn at warn", (Logger).Warn, LevelWarn, true},
		{"warn at error", (Logger).Warn, LevelError, false},
		{"error at error", (Logger).Error, LevelError, true},
		{"error at debug", (Logger).Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithLevel(tt.minLevel))
			tt.logFunc(logger, "test message")

			if hasOutput := buf.Len() > 0; hasOutput != tt.logged {
				t.Errorf(
					"expected logged=%v, got output length=%d",
					tt.logged,
					buf.Len(),
				)
			}
		})
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	var buf syncBuffer
	logger := Make(&buf, WithPretty(false))

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("concurrent message", slog.Int("id", id))
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer
		logger := Make(&buf, WithPretty(pretty), WithFormat(FormatText))
		logger = logger.With(slog.String("component", "bind"))
		logger.Info("bound")

		if !strings.Contains(buf.String(), "component") ||
			!strings.Contains(buf.String(), "bind") {
			t.Errorf("pretty=%v: attribute missing from %q", pretty, buf.String())
		}
	}
}

func TestLogger_WithGroup_QualifiesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatText)).WithGroup("page")
	logger.Info("bound", slog.Int("elements", 3))

	if !strings.Contains(stripANSI(buf.String()), "page.elements=3") {
		t.Errorf("group prefix missing: %q", stripANSI(buf.String()))
	}
}

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", "a.b"), slog.Int("depth", 1))
}

func TestPretty_ResolvesLogValuerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Warn("unresolved", slog.Any("error", valuer{}))

	out := stripANSI(buf.String())
	for _, want := range []string{"error.path: a.b", "error.depth: 1", "level: WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestPretty_ErrorValue(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatText))
	logger.Error("failed", slog.Any("cause", errors.New("boom")))

	if !strings.Contains(stripANSI(buf.String()), "cause=boom") {
		t.Errorf("error value not rendered: %q", stripANSI(buf.String()))
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var logger Logger

	// None of these may panic.
	logger.Info("ignored")
	logger.With(slog.String("k", "v")).Warn("ignored")
	logger.InfoContext(context.Background(), "ignored")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}
}

func TestLogger_Wrap_OverridesConfig(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	wrapped.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("Wrap did not override level")
	}

	if base.Level() != LevelError {
		t.Error("Wrap mutated the receiver")
	}
}

func TestLogger_Wrap_RebuildsHandler(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithPretty(false)).With(slog.String("page", "index.html"))
	base.Info("before")

	wrapped := base.Wrap(WithFormat(FormatText))
	wrapped.Info("after")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}

	if !strings.Contains(lines[0], `"page":"index.html"`) {
		t.Errorf("With attribute missing before Wrap: %s", lines[0])
	}

	if strings.Contains(lines[1], "page=") || !strings.Contains(lines[1], "msg=after") {
		t.Errorf("Wrap kept attributes or format: %s", lines[1])
	}
}

func TestLogger_Wrap_ZeroStartsFromDefaults(t *testing.T) {
	var zero Logger

	l := zero.Wrap(WithLevel(LevelDebug))
	if l.Logger == nil {
		t.Fatal("Wrap on zero Logger returned a zero Logger")
	}

	if l.Level() != LevelDebug || l.Format() != DefaultFormat || l.output != io.Discard {
		t.Errorf("zero Wrap config = %+v", l.config)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()

	if l.output != io.Discard {
		t.Errorf("Discard output = %v", l.output)
	}

	for _, level := range []Level{LevelTrace, LevelInfo, LevelError} {
		if l.Enabled(context.Background(), slog.Level(level)) {
			t.Errorf("Discard enabled at %v", level)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"trace": LevelTrace,
		"TRACE": LevelTrace,
		"debug": LevelDebug,
		"info":  LevelInfo,
		"WARN":  LevelWarn,
		"error": LevelError,
		"bogus": DefaultLevel,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" TEXT ") != FormatText {
		t.Error("ParseFormat(TEXT) != FormatText")
	}

	if ParseFormat("yaml") != DefaultFormat {
		t.Error("unknown format did not fall back to default")
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := Make(&buf, WithPretty(false))

	for b.Loop() {
		buf.Reset()
		logger.Info("benchmark", slog.String("key", "value"))
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}

func stripANSI(s string) string {
	var sb strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			for i < len(s) && s[i] != 'm' {
				i++
			}

			continue
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}
