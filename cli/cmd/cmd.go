package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/envlit/lit"
	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/rewrite"
	"github.com/ardnew/envlit/source"
)

type (
	contextKey struct{}
	sourceKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithSource returns a new context.Context containing the source that
// supplies replacement text to every command.
func WithSource(ctx context.Context, src source.Source) context.Context {
	return context.WithValue(ctx, sourceKey{}, src)
}

// sourceFrom returns the source stored by [WithSource], or the process
// environment when none was stored.
func sourceFrom(ctx context.Context) source.Source {
	if src, ok := ctx.Value(sourceKey{}).(source.Source); ok && src != nil {
		return src
	}

	return source.Process{}
}

// stdout returns the writer kong was configured with, or [os.Stdout].
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// newRewriter returns a rewriter whose lookups are recorded by the returned
// tracked source.
func newRewriter(ctx context.Context) (*rewrite.Rewriter, *source.Tracked) {
	src := source.Track(sourceFrom(ctx))
	logger := log.Default()

	engine := lit.New(src, lit.WithLogger(logger))

	return rewrite.New(engine, rewrite.WithLogger(logger)), src
}
