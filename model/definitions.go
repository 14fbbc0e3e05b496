package model

import (
	"bytes"
	_ "embed"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/pagebind/lang"
	"github.com/ardnew/pagebind/pkg"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultDefinitions returns the built-in definitions.
//
//nolint:gochecknoglobals
var DefaultDefinitions = sync.OnceValue(func() Definitions {
	d, err := ParseDefinitions(bytes.NewReader(defaultsYAML))
	if err != nil {
		panic(err)
	}

	return d
})

// Definitions declares the known deployment instances and the rules that
// derive additional model values.
type Definitions struct {
	Instances map[string]Instance `json:"instances" yaml:"instances"`
	Derive    []Rule              `json:"derive"    yaml:"derive"`
}

// Instance identifies one telescope deployment.
type Instance struct {
	Name      string   `json:"name"              yaml:"name"`
	Telescope string   `json:"telescope"         yaml:"telescope"`
	Image     string   `json:"image"             yaml:"image"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Value returns the instance as a mapping with keys name, telescope and
// image.
func (i Instance) Value() lang.Value {
	return lang.Mapping(
		lang.Entry{Key: "name", Value: lang.Scalar(i.Name)},
		lang.Entry{Key: "telescope", Value: lang.Scalar(i.Telescope)},
		lang.Entry{Key: "image", Value: lang.Scalar(i.Image)},
	)
}

// Rule derives the top-level model value Key by evaluating Expr.
type Rule struct {
	Key  string `json:"key"  yaml:"key"`
	Expr string `json:"expr" yaml:"expr"`
}

// Instance returns the instance registered under selector or one of its
// aliases. Matching ignores case and surrounding whitespace.
func (d Definitions) Instance(selector string) (Instance, bool) {
	selector = normalizeSelector(selector)
	if selector == "" {
		return Instance{}, false
	}

	for key, inst := range d.Instances {
		if normalizeSelector(key) == selector {
			return inst, true
		}
	}

	for _, inst := range d.Instances {
		for _, alias := range inst.Aliases {
			if normalizeSelector(alias) == selector {
				return inst, true
			}
		}
	}

	return Instance{}, false
}

func normalizeSelector(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseDefinitions decodes and validates a YAML definitions document.
//
// Every instance key and alias must select exactly one instance, ignoring
// case. Every rule needs a single-segment key that no other rule and no
// base model key uses, and a non-empty expression.
func ParseDefinitions(r io.Reader) (Definitions, error) {
	var d Definitions

	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&d); err != nil {
		return Definitions{}, ErrDefinitions.Wrap(err)
	}

	if err := d.validate(); err != nil {
		return Definitions{}, err
	}

	return d, nil
}

// LoadDefinitions reads a definitions file from path.
func LoadDefinitions(path string) (Definitions, error) {
	f, err := os.Open(path)
	if err != nil {
		return Definitions{}, ErrDefinitions.
			With(slog.String("path", path)).
			Wrap(err)
	}
	defer f.Close()

	d, err := ParseDefinitions(f)
	if err != nil {
		return Definitions{}, pkg.WrapError(err).With(slog.String("path", path))
	}

	return d, nil
}

func (d Definitions) validate() error {
	if err := d.validateSelectors(); err != nil {
		return err
	}

	seen := map[string]bool{
		KeyInstance:  true,
		KeyNamespace: true,
		KeyChart:     true,
		envInstance:  true,
		envNamespace: true,
		envChart:     true,
		envSelector:  true,
		envList:      true,
	}

	for i, rule := range d.Derive {
		p, err := lang.ParsePath(rule.Key)
		if err != nil || len(p) != 1 {
			return ErrDefinitions.With(
				slog.Int("rule", i),
				slog.String("key", rule.Key),
				slog.String("reason", "key must be a single path segment"),
			)
		}

		if seen[p[0]] {
			return ErrDefinitions.With(
				slog.Int("rule", i),
				slog.String("key", rule.Key),
				slog.String("reason", "key is reserved or already defined"),
			)
		}

		if strings.TrimSpace(rule.Expr) == "" {
			return ErrDefinitions.With(
				slog.Int("rule", i),
				slog.String("key", rule.Key),
				slog.String("reason", "empty expression"),
			)
		}

		seen[p[0]] = true
	}

	return nil
}

// validateSelectors rejects an empty selector and any selector, key or
// alias, that names more than one instance. Keys are visited in sorted
// order so the reported conflict is stable.
func (d Definitions) validateSelectors() error {
	owner := make(map[string]string, len(d.Instances))

	claim := func(selector, key string) error {
		norm := normalizeSelector(selector)
		if norm == "" {
			return ErrDefinitions.With(
				slog.String("instance", key),
				slog.String("reason", "empty instance key or alias"),
			)
		}

		if prev, ok := owner[norm]; ok {
			return ErrDefinitions.With(
				slog.String("instance", key),
				slog.String("selector", selector),
				slog.String("claimed-by", prev),
				slog.String("reason", "instance key or alias already in use"),
			)
		}

		owner[norm] = key

		return nil
	}

	keys := slices.Sorted(maps.Keys(d.Instances))

	for _, key := range keys {
		if err := claim(key, key); err != nil {
			return err
		}
	}

	for _, key := range keys {
		for _, alias := range d.Instances[key].Aliases {
			if err := claim(alias, key); err != nil {
				return err
			}
		}
	}

	return nil
}
