package lit

import (
	"go/ast"
	"go/token"
	"log/slog"
	"strconv"
)

// ResolveKey returns the lookup key named by arg, or def when arg is nil.
//
// An explicit argument must be a string literal, optionally wrapped in any
// number of parentheses. Every other shape is rejected with [ErrResolution].
func ResolveKey(arg ast.Expr, def string) (string, error) {
	if arg == nil {
		return def, nil
	}

	switch n := arg.(type) {
	case *ast.ParenExpr:
		return ResolveKey(n.X, def)

	case *ast.BasicLit:
		if n.Kind != token.STRING {
			break
		}

		key, err := strconv.Unquote(n.Value)
		if err != nil {
			return "", ErrResolution.Wrap(err)
		}

		return key, nil
	}

	return "", ErrResolution.With(slog.String("expr", exprKind(arg)))
}
