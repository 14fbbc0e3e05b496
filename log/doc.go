// Package log is the structured logger used across pagebind.
//
// A [Logger] wraps a [log/slog] handler together with the configuration it
// was built from, so it can be rebuilt with different options:
//
//	logger := log.Make(os.Stderr, log.WithFormat(log.FormatText))
//	logger = logger.Wrap(log.WithLevel(log.LevelDebug))
//
// Records are JSON by default. [WithPretty] (on by default) colorizes both
// formats for a terminal. [LevelTrace] sits below [LevelDebug] and is used
// for per-element binding detail.
//
// The package-level functions write through a process-wide default that the
// command line reconfigures with [Config] before any command runs. Tests
// swap it with [SetDefault] and restore the returned previous Logger.
package log
