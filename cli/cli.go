package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/envlit/cli/cmd"
	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
	"github.com/ardnew/envlit/source"
)

// CLI is the top-level command-line interface for envlit.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit."                                   short:"V"`
	Profile string           `help:"Read values from an expression profile."                  placeholder:"FILE" type:"existingfile"`
	Set     []string         `help:"Set KEY to VALUE, overriding every other source (repeatable)." placeholder:"KEY=VALUE" sep:"none" short:"s"`

	Gen   cmd.Gen   `cmd:"" default:"withargs" help:"Rewrite Go files with literals from the environment."`
	Check cmd.Check `cmd:""                    help:"Report every materialization site without writing."`
	Lit   cmd.Lit   `cmd:""                    help:"Materialize a single literal."`
	Init  cmd.Init  `cmd:""                    help:"Write the current flag values to the configuration file."`
}

// Run executes the envlit CLI with the given context and arguments.
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

	configFilePath := pkg.ConfigFile()

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with every parsed value, including the
	// flags that bypass UnmarshalText.
	cli.Log.start(ctx)

	src, err := cli.source()
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSource(ctx, src)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

// source builds the lookup source: --set assignments first, then the
// expression profile, then the process environment.
func (c *CLI) source() (source.Source, error) {
	chain := source.Chain{}

	if len(c.Set) > 0 {
		m, err := source.ParseAssignments(c.Set...)
		if err != nil {
			return nil, err
		}

		chain = append(chain, m)
	}

	if c.Profile != "" {
		p, err := source.LoadProfile(c.Profile)
		if err != nil {
			return nil, err
		}

		chain = append(chain, p)
	}

	chain = append(chain, source.Process{})

	log.Debug("source",
		slog.Int("assignments", len(c.Set)),
		slog.String("profile", c.Profile),
	)

	return chain, nil
}
