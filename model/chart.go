package model

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"

	"github.com/ardnew/pagebind/lang"
	"github.com/ardnew/pagebind/pkg"
)

// Chart describes the deployed umbrella chart and its subcharts.
type Chart struct {
	Name         string       `json:"name"         yaml:"name"`
	Version      string       `json:"version"      yaml:"version"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies"`
}

// Dependency is one subchart of a [Chart], in declaration order.
type Dependency struct {
	Name    string `json:"name"    yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// String returns the "<name>-<version>" form used on the landing page.
func (d Dependency) String() string { return d.Name + "-" + d.Version }

// String returns the "<name>-<version>" form used on the landing page.
func (c Chart) String() string {
	return Dependency{Name: c.Name, Version: c.Version}.String()
}

// Value returns the chart as a mapping with keys name, version and
// dependencies.
func (c Chart) Value() lang.Value {
	deps := make([]lang.Value, 0, len(c.Dependencies))
	for _, d := range c.Dependencies {
		deps = append(deps, lang.Mapping(
			lang.Entry{Key: "name", Value: lang.Scalar(d.Name)},
			lang.Entry{Key: "version", Value: lang.Scalar(d.Version)},
		))
	}

	return lang.Mapping(
		lang.Entry{Key: "name", Value: lang.Scalar(c.Name)},
		lang.Entry{Key: "version", Value: lang.Scalar(c.Version)},
		lang.Entry{Key: "dependencies", Value: lang.Sequence(deps...)},
	)
}

// LoadChart reads a chart descriptor from path.
//
// A directory or a packaged archive (.tgz, .tar.gz) is loaded as a Helm
// chart. Any other file is parsed as a YAML descriptor with [ParseChart],
// which also accepts a bare Chart.yaml.
func LoadChart(path string) (Chart, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Chart{}, ErrLoadChart.With(slog.String("path", path)).Wrap(err)
	}

	if info.IsDir() || isArchive(path) {
		ch, err := loader.Load(path)
		if err != nil {
			return Chart{}, ErrLoadChart.With(slog.String("path", path)).Wrap(err)
		}

		return FromHelm(ch), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, ErrLoadChart.With(slog.String("path", path)).Wrap(err)
	}

	c, err := ParseChart(bytes.NewReader(data))
	if err != nil {
		return Chart{}, pkg.WrapError(err).With(slog.String("path", path))
	}

	return c, nil
}

func isArchive(path string) bool {
	name := strings.ToLower(filepath.Base(path))

	return strings.HasSuffix(name, ".tgz") || strings.HasSuffix(name, ".tar.gz")
}

// ParseChart decodes a YAML chart descriptor.
// The chart name is required; dependencies keep their document order.
func ParseChart(r io.Reader) (Chart, error) {
	var c Chart

	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Chart{}, ErrChart.Wrap(err)
	}

	c.Name = strings.TrimSpace(c.Name)
	c.Version = strings.TrimSpace(c.Version)

	if c.Name == "" {
		return Chart{}, ErrChart.With(slog.String("field", "name"))
	}

	for i, d := range c.Dependencies {
		if strings.TrimSpace(d.Name) == "" {
			return Chart{}, ErrChart.With(
				slog.String("field", "dependencies"),
				slog.Int("index", i),
			)
		}
	}

	return c, nil
}

// FromHelm converts a loaded Helm chart.
//
// Dependencies follow the order declared in Chart.yaml. When a declared
// dependency is vendored under charts/, its concrete version replaces the
// declared version constraint.
func FromHelm(ch *chart.Chart) Chart {
	if ch == nil || ch.Metadata == nil {
		return Chart{}
	}

	vendored := make(map[string]string, len(ch.Dependencies()))
	for _, sub := range ch.Dependencies() {
		if sub.Metadata != nil {
			vendored[sub.Metadata.Name] = sub.Metadata.Version
		}
	}

	c := Chart{
		Name:         ch.Metadata.Name,
		Version:      ch.Metadata.Version,
		Dependencies: make([]Dependency, 0, len(ch.Metadata.Dependencies)),
	}

	for _, d := range ch.Metadata.Dependencies {
		if d == nil {
			continue
		}

		version := d.Version
		if v, ok := vendored[d.Name]; ok && v != "" {
			version = v
		}

		c.Dependencies = append(c.Dependencies, Dependency{
			Name:    d.Name,
			Version: version,
		})
	}

	return c
}
