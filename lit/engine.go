package lit

import (
	"go/ast"
	"go/token"
	"log/slog"

	"github.com/ardnew/envlit/log"
)

// Lookuper is a key-value source queried by the engine.
type Lookuper interface {
	Lookup(name string) (value string, ok bool)
}

// Engine materializes literals for the two call shapes: a decorated
// declaration ([Engine.Item]) and an inline marker call ([Engine.Inline]).
//
// An Engine keeps no state between calls and is safe for concurrent use if
// its source is.
type Engine struct {
	src    Lookuper
	logger log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for trace output.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New returns an Engine that looks up keys in src.
func New(src Lookuper, opts ...Option) *Engine {
	e := &Engine{src: src, logger: log.Default()}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Outcome is the result of a single materialization.
type Outcome struct {
	// Key is the resolved lookup key.
	Key string

	// Hit reports whether the source contained Key. When false, Literal is
	// the zero value and the original text must be kept.
	Hit bool

	// Target is the expression to replace: the declaration's initializer for
	// [Engine.Item] or the whole call for [Engine.Inline].
	Target ast.Expr

	// Default is the default argument of an inline call. It replaces Target
	// verbatim on a miss.
	Default ast.Expr

	// Literal is the synthesized replacement for Target on a hit.
	Literal Literal
}

// Item materializes the initializer of a decorated declaration.
//
// decl must be a const or var [*ast.GenDecl] holding a single spec, or an
// [*ast.ValueSpec]; it must declare exactly one name with one value.
// arg is the explicit key argument of the directive, or nil to use the
// declared name.
//
// On a miss, the returned Outcome has Hit false and the declaration must be
// emitted unchanged. On a hit, any classification or synthesis failure is
// fatal and attributed to the declaration.
func (e *Engine) Item(fset *token.FileSet, decl ast.Node, arg ast.Expr) (Outcome, error) {
	spec, err := valueSpec(decl)
	if err != nil {
		return Outcome{}, err.At(position(fset, nodePos(decl)))
	}

	name := spec.Names[0].Name

	key, kerr := ResolveKey(arg, name)
	if kerr != nil {
		return Outcome{}, WrapError(kerr).At(position(fset, arg.Pos())).With(
			slog.String("decl", name),
		)
	}

	out := Outcome{Key: key, Target: spec.Values[0]}

	raw, ok := e.lookup(key)
	if !ok {
		return out, nil
	}

	lit, merr := e.materialize(key, spec.Values[0], raw)
	if merr != nil {
		return Outcome{}, WrapError(merr).At(position(fset, nodePos(decl))).With(
			slog.String("decl", name),
			slog.String("key", key),
		)
	}

	out.Hit = true
	out.Literal = lit

	return out, nil
}

// Inline materializes an inline marker call of the form f(key, default).
//
// The call must have exactly two arguments. On a miss, the returned Outcome
// has Hit false and the default argument must replace the call verbatim;
// the default is not classified. On a hit, the default is classified and the
// synthesized literal replaces the call. Synthesis failures are attributed
// to the key argument.
func (e *Engine) Inline(fset *token.FileSet, call *ast.CallExpr) (Outcome, error) {
	if len(call.Args) != 2 {
		return Outcome{}, ErrArgumentCount.At(position(fset, call.Pos())).With(
			slog.Int("count", len(call.Args)),
			slog.Int("want", 2),
		)
	}

	keyArg, def := call.Args[0], call.Args[1]

	key, err := ResolveKey(keyArg, "")
	if err != nil {
		return Outcome{}, WrapError(err).At(position(fset, keyArg.Pos()))
	}

	out := Outcome{Key: key, Target: call, Default: def}

	raw, ok := e.lookup(key)
	if !ok {
		return out, nil
	}

	lit, err := e.materialize(key, def, raw)
	if err != nil {
		return Outcome{}, WrapError(err).At(position(fset, keyArg.Pos())).With(
			slog.String("key", key),
		)
	}

	out.Hit = true
	out.Literal = lit

	return out, nil
}

func (e *Engine) lookup(key string) (string, bool) {
	raw, ok := e.src.Lookup(key)

	e.logger.Trace("lookup",
		slog.String("key", key),
		slog.Bool("hit", ok),
	)

	return raw, ok
}

func (e *Engine) materialize(key string, ref ast.Expr, raw string) (Literal, error) {
	r, err := Classify(ref)
	if err != nil {
		return Literal{}, err
	}

	lit, err := Synthesize(r, raw)
	if err != nil {
		return Literal{}, err
	}

	e.logger.Debug("materialize",
		slog.String("key", key),
		slog.String("category", lit.Category.String()),
		slog.String("literal", lit.Text),
	)

	return lit, nil
}

// valueSpec returns the single value spec of a const or var declaration.
func valueSpec(decl ast.Node) (*ast.ValueSpec, *Error) {
	var spec *ast.ValueSpec

	switch d := decl.(type) {
	case *ast.GenDecl:
		if d == nil || (d.Tok != token.CONST && d.Tok != token.VAR) {
			return nil, ErrNotADeclaration.With(slog.String("decl", declKind(decl)))
		}

		if len(d.Specs) != 1 {
			return nil, ErrNotADeclaration.With(
				slog.String("decl", "group of "+d.Tok.String()+" declarations"),
			)
		}

		spec, _ = d.Specs[0].(*ast.ValueSpec)

	case *ast.ValueSpec:
		spec = d
	}

	if spec == nil {
		return nil, ErrNotADeclaration.With(slog.String("decl", declKind(decl)))
	}

	if len(spec.Names) != 1 || len(spec.Values) != 1 {
		return nil, ErrNotADeclaration.With(
			slog.String("decl", "declaration must bind one name to one value"),
			slog.Int("names", len(spec.Names)),
			slog.Int("values", len(spec.Values)),
		)
	}

	return spec, nil
}

func declKind(decl ast.Node) string {
	switch d := decl.(type) {
	case nil:
		return "nil"
	case *ast.GenDecl:
		if d == nil {
			return "nil"
		}

		return d.Tok.String() + " declaration"
	case *ast.FuncDecl:
		return "function declaration"
	case *ast.TypeSpec:
		return "type declaration"
	case *ast.ImportSpec:
		return "import declaration"
	default:
		return "unsupported node"
	}
}

func nodePos(n ast.Node) token.Pos {
	if n == nil {
		return token.NoPos
	}

	return n.Pos()
}

func position(fset *token.FileSet, pos token.Pos) token.Position {
	if fset == nil || !pos.IsValid() {
		return token.Position{}
	}

	return fset.Position(pos)
}
