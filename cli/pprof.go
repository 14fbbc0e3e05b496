//go:build pprof

package cli

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pagebind/log"
	"github.com/ardnew/pagebind/pkg"
	"github.com/ardnew/pagebind/profile"
)

type pprofConfig struct {
	Mode string `default:""            enum:",${pprofModeEnum}" help:"Profile the command in this mode."   placeholder:"${enum}" short:"p"`
	Dir  string `default:"${pprofDir}"                          help:"Directory receiving profile files." type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
		"pprofDir":      filepath.Join(pkg.CacheDir(), profile.Tag),
	}
}

func (pprofConfig) group() kong.Group {
	return kong.Group{Key: profile.Tag, Title: "Profiling (pprof build)"}
}

// start begins a profiling session for the selected mode. The returned
// func flushes it and is safe to call when no mode is selected.
func (f pprofConfig) start(ctx context.Context) (stop func()) {
	p := profile.Profiler{Mode: f.Mode, Path: f.Dir, Quiet: true}
	attrs := []slog.Attr{slog.String("mode", p.Mode), slog.String("dir", p.Path)}

	session := p.Start()
	if p.Mode != "" {
		log.DebugContext(ctx, "profiling", attrs...)
	}

	return func() {
		session.Stop()

		if p.Mode != "" {
			log.DebugContext(ctx, "profile written", attrs...)
		}
	}
}
