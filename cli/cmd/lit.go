package cmd

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"strconv"

	"github.com/ardnew/envlit/lit"
	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
)

// Lit materializes a single literal, as envlit.Lit(KEY, DEFAULT) would be
// rewritten in a source file.
type Lit struct {
	Key     string `arg:"" help:"Lookup key."`
	Default string `arg:"" help:"Default value written as a Go expression, e.g. '8080' or '[]string{\"a\"}'."`
}

// Run executes the lit command. On a miss the default is printed as given.
func (l *Lit) Run(ctx context.Context) error {
	fset := token.NewFileSet()

	def, err := parser.ParseExprFrom(fset, "default", l.Default, parser.SkipObjectResolution)
	if err != nil {
		return ErrInvalidDefault.With(slog.String("default", l.Default)).Wrap(err)
	}

	call := &ast.CallExpr{
		Fun: ast.NewIdent("Lit"),
		Args: []ast.Expr{
			&ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(l.Key)},
			def,
		},
	}

	out, err := lit.New(sourceFrom(ctx), lit.WithLogger(log.Default())).Inline(fset, call)
	if err != nil {
		return err
	}

	text := l.Default
	if out.Hit {
		text = out.Literal.Text
	}

	if _, err := fmt.Fprintln(stdout(ctx), text); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
