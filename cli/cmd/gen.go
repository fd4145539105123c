package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
	"github.com/ardnew/envlit/rewrite"
	"github.com/ardnew/envlit/source"
)

// Gen rewrites Go source files.
type Gen struct {
	Write bool   `help:"Write results to the source files instead of standard output." short:"w"`
	Deps  string `help:"Write the keys the files depend on to FILE as YAML."            placeholder:"FILE" type:"path"`

	Files []string `arg:"" default:"." help:"Go files, directories, or directory/... patterns ('-' reads standard input)." name:"file" optional:""`
}

// Run executes the gen command.
//
// Each file is rewritten independently; a file with a failing site is left
// untouched and its failures are returned once every file is processed.
// The dependency manifest is only written when every file succeeded.
func (g *Gen) Run(ctx context.Context) error {
	inputs, err := expand(g.Files)
	if err != nil {
		return err
	}

	r, tracked := newRewriter(ctx)
	w := stdout(ctx)

	var errs []error

	for _, o := range rewriteAll(ctx, r, inputs) {
		if o.err != nil {
			errs = append(errs, o.err)

			continue
		}

		if err := g.emit(w, o); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return pkg.ErrRewrite.Wrap(errors.Join(errs...))
	}

	if g.Deps != "" {
		return writeManifest(g.Deps, tracked)
	}

	return nil
}

// emit writes the rewritten source of o to w, or back to its file with
// --write. Standard input is always written to w.
func (g *Gen) emit(w io.Writer, o outcome) error {
	res := o.result

	log.Debug("generated",
		slog.String("file", res.Filename),
		slog.Int("sites", len(res.Sites)),
		slog.Int("hits", res.Hits()),
	)

	if !g.Write || o.input.isStdin() {
		if _, err := w.Write(res.Output); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	if !res.Changed {
		return nil
	}

	return writeFile(o.input.path, res)
}

// writeFile replaces the contents of path, keeping its permissions.
func writeFile(path string, res rewrite.Result) error {
	info, err := os.Stat(path)
	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	log.Info("wrote", slog.String("file", path), slog.Int("hits", res.Hits()))

	return nil
}

func writeManifest(path string, tracked *source.Tracked) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pkg.ErrWriteOutput.Wrap(cerr)
		}
	}()

	if err := tracked.WriteManifest(f); err != nil {
		return err
	}

	log.Debug("wrote dependencies",
		slog.String("file", path),
		slog.Int("count", len(tracked.Manifest().Dependencies)),
	)

	return nil
}
