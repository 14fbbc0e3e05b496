package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/pagebind/lang"
	"github.com/ardnew/pagebind/log"
	"github.com/ardnew/pagebind/pkg"
)

// Resolve prints the values of dotted paths in the value model.
type Resolve struct {
	Paths       []string `arg:"" help:"Dotted paths to resolve (default: entire model)"   name:"path" optional:""`
	Format      string   `default:"text"           enum:"text,json,yaml" help:"Output format" short:"F"`
	Indent      int      `default:"2"                                    help:"Indentation for json and yaml output (0 for compact)"`
	Suggestions int      `default:"${suggestions}"                       help:"Number of path suggestions logged per unresolved path"`

	out io.Writer `kong:"-"`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := modelFrom(ctx)
	if err != nil {
		return err
	}

	root := m.Value()

	var (
		result     lang.Value
		unresolved []string
	)

	if len(r.Paths) == 0 {
		result = root
	} else {
		entries := make([]lang.Entry, 0, len(r.Paths))

		for _, path := range r.Paths {
			v, err := lang.Lookup(root, path)
			if err != nil {
				unresolved = append(unresolved, path)
				log.WarnContext(ctx, "unresolved path",
					slog.Any("error", err),
					slog.Any("suggest", lang.Suggest(root, path, r.Suggestions)),
				)
			}

			entries = append(entries, lang.Entry{Key: path, Value: v})
		}

		result = lang.Mapping(entries...)
	}

	if err := r.format(ctx, result, len(r.Paths) == 0); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if len(unresolved) > 0 {
		return ErrUnresolved.With(slog.Any("paths", unresolved))
	}

	return nil
}

func (r *Resolve) writer() io.Writer {
	if r.out != nil {
		return r.out
	}

	return os.Stdout
}

func (r *Resolve) format(ctx context.Context, v lang.Value, whole bool) error {
	w := r.writer()

	switch r.Format {
	case "json":
		return formatJSON(w, v, r.Indent)

	case "yaml":
		return formatYAML(ctx, w, v, r.Indent)

	case "", "text":
		return formatText(w, v, whole)

	default:
		return pkg.ErrInvalidFormat.With(
			slog.String("format", r.Format),
			slog.String("valid", "text,json,yaml"),
		)
	}
}

// formatText writes one line per requested path. When whole is set, every
// scalar leaf of v is written as "path = value" instead.
func formatText(w io.Writer, v lang.Value, whole bool) error {
	if whole {
		for path, leaf := range lang.Paths(v) {
			if leaf.Kind() != lang.KindScalar {
				continue
			}

			if _, err := fmt.Fprintf(w, "%s = %s\n", path, leaf); err != nil {
				return err
			}
		}

		return nil
	}

	for _, leaf := range v.Entries() {
		if _, err := fmt.Fprintln(w, leaf.String()); err != nil {
			return err
		}
	}

	return nil
}

func formatJSON(w io.Writer, v lang.Value, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func formatYAML(ctx context.Context, w io.Writer, v lang.Value, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
