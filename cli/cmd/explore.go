package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/pagebind/cli/cmd/explore"
	"github.com/ardnew/pagebind/log"
)

// Explore opens an interactive browser over the value model.
type Explore struct {
	History bool `default:"true" help:"Persist submitted paths in the cache directory" negatable:""`
}

// Run executes the explore command.
func (e *Explore) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := modelFrom(ctx)
	if err != nil {
		return err
	}

	return explore.Run(ctx, m.Value(), e.history(ctx), log.Default())
}

func (e *Explore) history(ctx context.Context) *explore.History {
	if !e.History {
		return nil
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return nil
	}

	dir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok || dir == "" {
		return nil
	}

	return explore.NewHistory(filepath.Join(dir, explore.BaseHistory))
}
