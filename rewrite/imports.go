package rewrite

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/ardnew/envlit/pkg"
)

// dropImport removes the import of the marker package from src when
// nothing in src uses it anymore.
func (r *Rewriter) dropImport(filename string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()

	// astutil.UsesImport depends on object resolution.
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, pkg.ErrRewrite.Wrap(err)
	}

	decl, spec := findImport(f, r.importPath)
	if spec == nil || astutil.UsesImport(f, r.importPath) {
		return src, nil
	}

	tok := fset.File(f.FileStart)

	var start, end int

	if len(decl.Specs) == 1 {
		start, end = tok.Offset(decl.Pos()), tok.Offset(decl.End())
	} else {
		start, end = tok.Offset(spec.Pos()), tok.Offset(spec.End())
		if spec.Comment != nil {
			end = tok.Offset(spec.Comment.End())
		}
	}

	start, end = wholeLine(src, start, end)

	// Drop one of the blank lines that surrounded the removed text, or the
	// blank line left hanging before a closing parenthesis.
	if start >= 2 && src[start-1] == '\n' && src[start-2] == '\n' {
		switch {
		case end < len(src) && src[end] == '\n':
			end++
		case bytes.HasPrefix(bytes.TrimLeft(src[end:], " \t"), []byte(")")):
			start--
		}
	}

	r.logger.Trace("drop import",
		slog.String("file", filename),
		slog.String("path", r.importPath),
	)

	return splice(src, []patch{{start: start, end: end}}), nil
}

// findImport returns the import of path and its declaration.
func findImport(f *ast.File, path string) (*ast.GenDecl, *ast.ImportSpec) {
	for _, d := range f.Decls {
		decl, ok := d.(*ast.GenDecl)
		if !ok || decl.Tok != token.IMPORT {
			continue
		}

		for _, s := range decl.Specs {
			spec := s.(*ast.ImportSpec)

			if p, err := strconv.Unquote(spec.Path.Value); err == nil && p == path {
				return decl, spec
			}
		}
	}

	return nil, nil
}

// wholeLine widens src[start:end] to the full lines containing it,
// including the final newline, when only blanks surround it on those lines.
// Otherwise the range is returned unchanged.
func wholeLine(src []byte, start, end int) (int, int) {
	s := start
	for s > 0 && (src[s-1] == ' ' || src[s-1] == '\t') {
		s--
	}

	if s > 0 && src[s-1] != '\n' {
		return start, end
	}

	e := end
	for e < len(src) && (src[e] == ' ' || src[e] == '\t' || src[e] == '\r') {
		e++
	}

	switch {
	case e == len(src):
		return s, e
	case src[e] == '\n':
		return s, e + 1
	default:
		return start, end
	}
}
