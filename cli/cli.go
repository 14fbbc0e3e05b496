package cli

import (
	"context"
	"strconv"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pagebind/bind"
	"github.com/ardnew/pagebind/cli/cmd"
	"github.com/ardnew/pagebind/model"
	"github.com/ardnew/pagebind/pkg"
)

// CLI is the top-level command-line interface for pagebind.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`
	Model modelConfig `embed:"" group:"model"`

	Source  []string         `help:"Input page file(s) or '-' for stdin" name:"source" short:"s" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Render  cmd.Render  `cmd:"" default:"1" help:"Bind a landing page and write the result"`
	Resolve cmd.Resolve `cmd:""             help:"Print the values of dotted paths"`
	Explore cmd.Explore `cmd:""             help:"Interactively browse the value model"`
	Init    cmd.Init    `cmd:""             help:"Initialize configuration file"`
}

// Run executes the pagebind CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	yamlConfig := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: yamlConfig,
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"suggestions":        strconv.Itoa(bind.DefaultSuggestions),
		"version":            pkg.Version(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Model.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(loadYAML, yamlConfig),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ctx = cmd.WithModel(ctx, sync.OnceValues(func() (*model.Model, error) {
		return cli.Model.build(ctx)
	}))

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
