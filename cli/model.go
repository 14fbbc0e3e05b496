package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pagebind/log"
	"github.com/ardnew/pagebind/model"
)

type modelConfig struct {
	Instance    string `env:"MVP"       help:"Deployment instance (e.g. ska-mid, mvp-low)."                       short:"i"`
	Namespace   string `env:"NAMESPACE" help:"Kubernetes namespace of the deployment."                            short:"n"`
	Chart       string `                help:"Helm chart directory or archive, or a YAML chart descriptor." short:"c" type:"path"`
	Definitions string `                help:"YAML file of instances and derived values."                             type:"existingfile"`
}

func (*modelConfig) group() kong.Group {
	var group kong.Group

	group.Key = "model"
	group.Title = "Value model options"

	return group
}

// build loads the chart and definitions named by the flags and constructs
// the value model.
func (c *modelConfig) build(ctx context.Context) (*model.Model, error) {
	opts := []model.Option{
		model.WithSelector(c.Instance),
		model.WithNamespace(c.Namespace),
		model.WithLogger(log.Default()),
	}

	if c.Chart != "" {
		chart, err := model.LoadChart(c.Chart)
		if err != nil {
			return nil, err
		}

		opts = append(opts, model.WithChart(chart))
	}

	if c.Definitions != "" {
		defs, err := model.LoadDefinitions(c.Definitions)
		if err != nil {
			return nil, err
		}

		opts = append(opts, model.WithDefinitions(defs))
	}

	m, err := model.Build(opts...)
	if err != nil {
		return nil, err
	}

	inst, ok := m.Instance()

	log.DebugContext(ctx, "value model built",
		slog.String("selector", c.Instance),
		slog.Bool("known", ok),
		slog.String("instance", inst.Name),
		slog.String("namespace", c.Namespace),
		slog.String("chart", m.Chart().String()),
	)

	return m, nil
}
