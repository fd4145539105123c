package lit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

// mapSource is a fixed Lookuper.
type mapSource map[string]string

func (m mapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]

	return v, ok
}

func mustExpr(t *testing.T, src string) ast.Expr {
	t.Helper()

	x, err := parser.ParseExpr(src)
	if err != nil {
		t.Fatalf("ParseExpr(%q): %v", src, err)
	}

	return x
}

func mustFile(t *testing.T, src string) (*token.FileSet, *ast.File) {
	t.Helper()

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	return fset, f
}
