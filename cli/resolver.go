package cli

import (
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/pagebind/log"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Nested mappings are flattened into hyphenated flag names, and underscores
// are accepted in place of hyphens. For example, both of the following set
// --log-level=debug and --log-pretty=false:
//
//	log:
//	  level: debug
//	  pretty: false
//
//	log_level: debug
//	log-pretty: false
//
// Command-line flags and environment variables override config file values.
// A file that cannot be parsed is reported and ignored.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring invalid configuration", slog.Any("error", err))
		}

		return config{}, nil
	}

	cfg := make(config)
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] over a flattened configuration map.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[normalize(flag.Name)]; ok {
		return value, nil
	}

	return nil, nil
}

func normalize(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", "-"))
}

func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := normalize(key)
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = scalar(value)
	}
}

// scalar converts numbers to strings, which kong requires for parsing.
func scalar(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = scalar(item)
		}

		return out
	default:
		return value
	}
}
