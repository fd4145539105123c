package rewrite

import (
	"cmp"
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path"
	"slices"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/ardnew/envlit"
	"github.com/ardnew/envlit/lit"
	"github.com/ardnew/envlit/log"
	"github.com/ardnew/envlit/pkg"
)

// markerFunc is the name of the marker function in the marker package.
const markerFunc = "Lit"

// Rewriter rewrites Go source files with a literal engine.
type Rewriter struct {
	engine     *lit.Engine
	logger     log.Logger
	importPath string
	directive  string
}

// Option configures a [Rewriter].
type Option func(*Rewriter)

// WithLogger sets the logger used for per-site output.
func WithLogger(logger log.Logger) Option {
	return func(r *Rewriter) {
		r.logger = logger
	}
}

// WithImportPath sets the import path of the marker package.
// The default is [envlit.ImportPath].
func WithImportPath(path string) Option {
	return func(r *Rewriter) {
		r.importPath = path
	}
}

// WithDirective sets the directive comment that decorates declarations.
// The default is [envlit.Directive].
func WithDirective(directive string) Option {
	return func(r *Rewriter) {
		r.directive = directive
	}
}

// New returns a Rewriter that materializes literals with engine.
func New(engine *lit.Engine, opts ...Option) *Rewriter {
	r := &Rewriter{
		engine:     engine,
		logger:     log.Default(),
		importPath: envlit.ImportPath,
		directive:  envlit.Directive,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// File reads and rewrites the file at path.
func (r *Rewriter) File(ctx context.Context, path string) (Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{Filename: path}, pkg.ErrReadInput.Wrap(err)
	}

	return r.Source(ctx, path, src)
}

// Source rewrites the Go source src. The filename is used for positions.
//
// Decorated declarations are processed first, then every marker call that
// is neither inside a replaced initializer nor inside another marker call.
// When any site fails, the returned error joins every failure and the
// result carries no output.
func (r *Rewriter) Source(ctx context.Context, filename string, src []byte) (Result, error) {
	res := Result{Filename: filename}

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return res, pkg.ErrReadInput.Wrap(err)
	}

	fr := &fileRewriter{
		Rewriter: r,
		ctx:      ctx,
		fset:     fset,
		file:     f,
		tok:      fset.File(f.FileStart),
		src:      src,
	}

	fr.items()
	fr.inlines()

	slices.SortStableFunc(fr.sites, func(a, b Site) int {
		return cmp.Compare(a.Pos.Offset, b.Pos.Offset)
	})

	res.Sites = fr.sites

	if len(fr.errs) > 0 {
		return res, errors.Join(fr.errs...)
	}

	out := fr.apply()

	if fr.inlined > 0 {
		if out, err = r.dropImport(filename, out); err != nil {
			return res, err
		}
	}

	res.Output = out
	res.Changed = len(fr.patches) > 0

	r.logger.Debug("rewrite",
		slog.String("file", filename),
		slog.Int("sites", len(res.Sites)),
		slog.Int("hits", res.Hits()),
		slog.Bool("changed", res.Changed),
	)

	return res, nil
}

// patch replaces src[start:end] with text.
type patch struct {
	start, end int
	text       string
}

// fileRewriter holds the state of rewriting one file.
type fileRewriter struct {
	*Rewriter

	ctx  context.Context
	fset *token.FileSet
	file *ast.File
	tok  *token.File
	src  []byte

	sites   []Site
	errs    []error
	patches []patch
	inlined int
}

func (fr *fileRewriter) offset(pos token.Pos) int { return fr.tok.Offset(pos) }

func (fr *fileRewriter) position(pos token.Pos) token.Position { return fr.fset.Position(pos) }

func (fr *fileRewriter) replace(x ast.Node, text string) {
	fr.patches = append(fr.patches, patch{
		start: fr.offset(x.Pos()),
		end:   fr.offset(x.End()),
		text:  text,
	})

	fr.logger.Trace("patch",
		slog.String("pos", fr.position(x.Pos()).String()),
		slog.String("text", text),
	)
}

// replaced reports whether n lies inside a replaced range.
func (fr *fileRewriter) replaced(n ast.Node) bool {
	start, end := fr.offset(n.Pos()), fr.offset(n.End())

	for _, p := range fr.patches {
		if start >= p.start && end <= p.end {
			return true
		}
	}

	return false
}

func (fr *fileRewriter) fail(s Site, err error) {
	s.Err = err
	fr.sites = append(fr.sites, s)
	fr.errs = append(fr.errs, err)

	fr.logger.Debug("site failed", slog.Any("site", s), slog.Any("error", err))
}

func (fr *fileRewriter) record(s Site) {
	fr.sites = append(fr.sites, s)

	fr.logger.Debug("site", slog.Any("site", s))
}

// canceled records the context error once and reports whether processing
// must stop.
func (fr *fileRewriter) canceled() bool {
	err := fr.ctx.Err()
	if err == nil {
		return false
	}

	if len(fr.errs) == 0 || !errors.Is(fr.errs[len(fr.errs)-1], err) {
		fr.errs = append(fr.errs, err)
	}

	return true
}

// items processes every decorated declaration.
func (fr *fileRewriter) items() {
	for _, d := range fr.directives() {
		if fr.canceled() {
			return
		}

		site := Site{Kind: Item, Pos: fr.position(d.comment.Pos())}

		if d.err != nil {
			fr.fail(site, d.err)

			continue
		}

		out, err := fr.engine.Item(fr.fset, d.decl, d.arg)
		if err != nil {
			fr.fail(site, err)

			continue
		}

		site.Pos = fr.position(out.Target.Pos())
		site.Key = out.Key
		site.Hit = out.Hit

		if out.Hit {
			site.Category = out.Literal.Category
			site.Text = out.Literal.Text
			fr.replace(out.Target, out.Literal.Text)
		}

		fr.record(site)
	}
}

// inlines processes every marker call.
func (fr *fileRewriter) inlines() {
	name := fr.markerName()
	if name == "" {
		return
	}

	ast.Inspect(fr.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !isMarker(call, name) {
			return true
		}

		if fr.replaced(call) || fr.canceled() {
			return false
		}

		fr.inline(call)

		return false
	})
}

func (fr *fileRewriter) inline(call *ast.CallExpr) {
	site := Site{Kind: Inline, Pos: fr.position(call.Pos())}

	out, err := fr.engine.Inline(fr.fset, call)
	if err != nil {
		fr.fail(site, err)

		return
	}

	site.Key = out.Key
	site.Hit = out.Hit

	var (
		text string
		expr ast.Expr
	)

	if out.Hit {
		site.Category = out.Literal.Category
		site.Text = out.Literal.Text
		text = out.Literal.Text
		expr = out.Literal.Expr
	} else {
		text = string(fr.src[fr.offset(out.Default.Pos()):fr.offset(out.Default.End())])
		expr = out.Default
	}

	path, _ := astutil.PathEnclosingInterval(fr.file, call.Pos(), call.End())
	if needsParens(path, expr) {
		text = "(" + text + ")"
	}

	// Keep a leading sign from merging with an operator before the call,
	// as in x-envlit.Lit("K", -1).
	if start := fr.offset(call.Pos()); start > 0 && len(text) > 0 {
		if prev := fr.src[start-1]; (prev == '-' || prev == '+') && text[0] == prev {
			text = "(" + text + ")"
		}
	}

	fr.replace(call, text)
	fr.inlined++

	fr.record(site)
}

// markerName returns the name under which the file imports the marker
// package, or "" when it is not imported by name.
func (fr *fileRewriter) markerName() string {
	for _, imp := range fr.file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil || p != fr.importPath {
			continue
		}

		if imp.Name == nil {
			return path.Base(p)
		}

		if imp.Name.Name == "_" || imp.Name.Name == "." {
			return ""
		}

		return imp.Name.Name
	}

	return ""
}

// isMarker reports whether call invokes the marker function through the
// package name, with or without explicit type arguments.
func isMarker(call *ast.CallExpr, name string) bool {
	fun := call.Fun

	switch x := fun.(type) {
	case *ast.IndexExpr:
		fun = x.X
	case *ast.IndexListExpr:
		fun = x.X
	}

	sel, ok := fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != markerFunc {
		return false
	}

	id, ok := sel.X.(*ast.Ident)

	return ok && id.Name == name
}

// apply returns src with every patch applied.
func (fr *fileRewriter) apply() []byte {
	if len(fr.patches) == 0 {
		return fr.src
	}

	return splice(fr.src, fr.patches)
}

// splice applies non-overlapping patches to src, returning a new slice.
func splice(src []byte, patches []patch) []byte {
	ps := slices.Clone(patches)
	slices.SortFunc(ps, func(a, b patch) int { return cmp.Compare(b.start, a.start) })

	out := slices.Clone(src)

	for _, p := range ps {
		out = slices.Concat(out[:p.start], []byte(p.text), out[p.end:])
	}

	return out
}

// needsParens reports whether x must be parenthesized to take the place of
// the marker call at path[0] without changing how the file parses.
//
// A binary expression always loses its grouping with the call. A unary
// expression binds looser than a selector, index, slice, type assertion or
// call applied to it. A composite literal of a named type is ambiguous in
// the header of an if, for or switch statement.
func needsParens(path []ast.Node, x ast.Expr) bool {
	if len(path) < 2 {
		return false
	}

	switch n := x.(type) {
	case *ast.BinaryExpr:
		return true

	case *ast.UnaryExpr, *ast.StarExpr:
		return isPostfixOperand(path[1], path[0])

	case *ast.CompositeLit:
		switch n.Type.(type) {
		case *ast.ArrayType, *ast.MapType, nil:
			return false
		}

		return inControlHeader(path)
	}

	return false
}

// isPostfixOperand reports whether child is the operand that parent applies
// a selector, index, slice, type assertion or call to.
func isPostfixOperand(parent, child ast.Node) bool {
	switch p := parent.(type) {
	case *ast.SelectorExpr:
		return p.X == child
	case *ast.IndexExpr:
		return p.X == child
	case *ast.IndexListExpr:
		return p.X == child
	case *ast.SliceExpr:
		return p.X == child
	case *ast.TypeAssertExpr:
		return p.X == child
	case *ast.CallExpr:
		return p.Fun == child
	}

	return false
}

// inControlHeader reports whether path[0] lies in the header of an if, for,
// or switch statement, outside any enclosing parentheses, brackets or braces.
func inControlHeader(path []ast.Node) bool {
	pos := path[0].Pos()

	for _, n := range path[1:] {
		switch n := n.(type) {
		case *ast.IfStmt, *ast.ForStmt, *ast.RangeStmt,
			*ast.SwitchStmt, *ast.TypeSwitchStmt:
			return true

		case *ast.ParenExpr, *ast.BlockStmt, *ast.CompositeLit,
			*ast.FuncLit, *ast.FuncDecl, *ast.GenDecl:
			return false

		case *ast.CallExpr:
			if pos > n.Lparen {
				return false
			}

		case *ast.IndexExpr:
			if pos > n.Lbrack {
				return false
			}

		case *ast.IndexListExpr:
			if pos > n.Lbrack {
				return false
			}

		case *ast.SliceExpr:
			if pos > n.Lbrack {
				return false
			}
		}
	}

	return false
}
