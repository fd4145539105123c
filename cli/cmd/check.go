package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
	"github.com/ardnew/envlit/source"
)

// Check reports every materialization site of Go source files without
// writing anything.
type Check struct {
	Deps    string `help:"Also fail when a dependency recorded in FILE by gen --deps changed." placeholder:"FILE" type:"existingfile"`
	Suggest int    `default:"3"                                                                 help:"Maximum number of suggestions for a missing key (0 disables)."`

	Files []string `arg:"" default:"." help:"Go files, directories, or directory/... patterns ('-' reads standard input)." name:"file" optional:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	inputs, err := expand(c.Files)
	if err != nil {
		return err
	}

	src := sourceFrom(ctx)
	r, _ := newRewriter(ctx)
	rep := newReport(stdout(ctx), source.Keys(src), c.Suggest)

	failed := 0

	for _, o := range rewriteAll(ctx, r, inputs) {
		rep.file(o)

		if o.err != nil {
			failed++
		}
	}

	rep.summary()

	var errs []error

	if failed > 0 {
		errs = append(errs, pkg.ErrRewrite.Wrapf("%d of %d files", failed, len(inputs)))
	}

	if c.Deps != "" {
		if err := c.stale(rep, src); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// stale compares the manifest at c.Deps with src.
func (c *Check) stale(rep *report, src source.Source) error {
	f, err := os.Open(c.Deps)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	m, err := source.ReadManifest(f)
	if err != nil {
		return err
	}

	stale := m.Stale(src)

	log.Debug("dependencies",
		slog.String("file", c.Deps),
		slog.Int("count", len(m.Dependencies)),
		slog.Int("stale", len(stale)),
	)

	for _, d := range stale {
		rep.stale(c.Deps, d)
	}

	if len(stale) > 0 {
		return pkg.ErrStale.Wrapf("%d of %d dependencies", len(stale), len(m.Dependencies))
	}

	return nil
}
