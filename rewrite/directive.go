package rewrite

import (
	"cmp"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/envlit/lit"
)

// directive is a directive comment and the declaration it decorates.
type directive struct {
	comment *ast.Comment
	decl    ast.Node
	arg     ast.Expr
	err     error
}

// directives returns every directive comment of the file in source order,
// including those on declarations inside function bodies.
// A directive that does not decorate a declaration, or decorates one that
// already has a directive, carries an error instead of a declaration.
func (fr *fileRewriter) directives() []directive {
	all := make(map[*ast.Comment]bool)

	for _, cg := range fr.file.Comments {
		for _, c := range cg.List {
			if fr.isDirective(c.Text) {
				all[c] = false
			}
		}
	}

	if len(all) == 0 {
		return nil
	}

	var found []directive

	attach := func(doc *ast.CommentGroup, decl ast.Node) {
		if doc == nil {
			return
		}

		var cs []*ast.Comment

		for _, c := range doc.List {
			if _, ok := all[c]; ok {
				all[c] = true
				cs = append(cs, c)
			}
		}

		if len(cs) == 1 {
			found = append(found, directive{comment: cs[0], decl: decl})

			return
		}

		for _, c := range cs {
			found = append(found, directive{
				comment: c,
				err: lit.ErrNotADeclaration.At(fr.position(c.Pos())).With(
					slog.String("reason", "declaration has more than one directive"),
				),
			})
		}
	}

	ast.Inspect(fr.file, func(n ast.Node) bool {
		switch d := n.(type) {
		case *ast.GenDecl:
			attach(d.Doc, d)

			if d.Lparen.IsValid() {
				for _, s := range d.Specs {
					switch s := s.(type) {
					case *ast.ValueSpec:
						attach(s.Doc, s)
					case *ast.TypeSpec:
						attach(s.Doc, s)
					case *ast.ImportSpec:
						attach(s.Doc, s)
					}
				}
			}

		case *ast.FuncDecl:
			attach(d.Doc, d)
		}

		return true
	})

	for c, used := range all {
		if !used {
			found = append(found, directive{
				comment: c,
				err: lit.ErrNotADeclaration.At(fr.position(c.Pos())).With(
					slog.String("reason", "directive does not decorate a declaration"),
				),
			})
		}
	}

	for i := range found {
		if found[i].err == nil {
			found[i].arg, found[i].err = fr.directiveArg(found[i].comment)
		}
	}

	slices.SortFunc(found, func(a, b directive) int {
		return cmp.Compare(a.comment.Pos(), b.comment.Pos())
	})

	return found
}

func (fr *fileRewriter) isDirective(text string) bool {
	rest, ok := strings.CutPrefix(text, fr.directive)

	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

// directiveArg parses the optional key argument of a directive. The
// returned string literal is positioned at the argument in the comment.
func (fr *fileRewriter) directiveArg(c *ast.Comment) (ast.Expr, error) {
	text := strings.TrimPrefix(c.Text, fr.directive)

	args := strings.TrimSpace(text)
	if args == "" {
		return nil, nil
	}

	pos := fr.position(c.Pos())

	x, err := parser.ParseExpr(args)
	if err != nil {
		return nil, lit.ErrResolution.Wrap(err).At(pos).With(slog.String("args", args))
	}

	key, err := lit.ResolveKey(x, "")
	if err != nil {
		return nil, lit.WrapError(err).At(pos).With(slog.String("args", args))
	}

	offset := len(fr.directive) + strings.Index(text, args)

	return &ast.BasicLit{
		ValuePos: c.Pos() + token.Pos(offset),
		Kind:     token.STRING,
		Value:    strconv.Quote(key),
	}, nil
}
