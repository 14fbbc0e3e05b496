package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/pagebind/bind"
	"github.com/ardnew/pagebind/dom"
	"github.com/ardnew/pagebind/log"
	"github.com/ardnew/pagebind/pkg"
)

// Render binds a landing page against the value model and writes the result.
type Render struct {
	Output      string   `default:"-"              help:"Output file or '-' for stdout"                    short:"o" type:"path"`
	Strict      bool     `                         help:"Fail if any placeholder path is unresolved"`
	Activate    []string `                         help:"Activate the elements with these ids before writing" placeholder:"ID"`
	Suggestions int      `default:"${suggestions}" help:"Number of path suggestions logged per unresolved path"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := modelFrom(ctx)
	if err != nil {
		return err
	}

	in := input(ctx)
	defer in.Close()

	doc, err := dom.Parse(in)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err)
	}

	report, err := bind.Bootstrap(ctx, doc, m.Value(), m.Chart(),
		bind.WithLogger(log.Default()),
		bind.WithSuggestions(r.Suggestions),
	)
	if err != nil {
		return err
	}

	if r.Strict && len(report.Unresolved) > 0 {
		return ErrUnresolved.With(slog.Any("paths", report.Unresolved))
	}

	for _, id := range r.Activate {
		if !doc.Activate(id) {
			log.WarnContext(ctx, "no activation handler", slog.String("id", id))
		}
	}

	return r.write(ctx, doc)
}

func (r *Render) write(ctx context.Context, doc *dom.HTML) (err error) {
	var w io.Writer = os.Stdout

	if r.Output != "" && r.Output != stdinSource {
		file, err := os.Create(r.Output)
		if err != nil {
			return pkg.ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(err)
		}

		defer func() {
			if cerr := file.Close(); cerr != nil && err == nil {
				err = pkg.ErrWriteOutput.With(slog.String("file", r.Output)).Wrap(cerr)
			}
		}()

		w = file
	}

	if err := doc.Render(w); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	log.DebugContext(ctx, "page written", slog.String("output", r.Output))

	return nil
}
