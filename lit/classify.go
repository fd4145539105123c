package lit

import (
	"fmt"
	"go/ast"
	"go/token"
	"log/slog"

	"golang.org/x/tools/go/ast/astutil"
)

// numericTypes are the predeclared type names accepted as conversions around
// numeric literals. A conversion is the Go spelling of a typed literal, e.g.
// uint32(0) where other languages write 0u32.
var numericTypes = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "byte": true, "rune": true,
	"float32": true, "float64": true,
	"complex64": true, "complex128": true,
}

// byteTypes are the predeclared names of the byte type.
var byteTypes = map[string]bool{"byte": true, "uint8": true}

// numeric is a signed numeric expression:
//
//	N := literal | ('+'|'-') N | '(' N ')' | T '(' N ')'
//
// where T is one of numericTypes.
type numeric struct {
	lit    *ast.BasicLit
	typ    ast.Expr // outermost conversion type, if any
	signed bool
}

// numericExpr matches x against the signed numeric grammar. A rune literal
// is a numeric constant in Go and is accepted as the literal only under a
// sign, as in -'a'.
func numericExpr(x ast.Expr) (numeric, bool) {
	num, ok := numericOperand(x)
	if !ok || (num.lit.Kind == token.CHAR && !num.signed) {
		return numeric{}, false
	}

	return num, true
}

func numericOperand(x ast.Expr) (numeric, bool) {
	switch n := x.(type) {
	case *ast.BasicLit:
		if basicCategory(n.Kind).Numeric() || n.Kind == token.CHAR {
			return numeric{lit: n}, true
		}

	case *ast.UnaryExpr:
		if n.Op == token.ADD || n.Op == token.SUB {
			num, ok := numericOperand(n.X)
			num.signed = true

			return num, ok
		}

	case *ast.ParenExpr:
		return numericOperand(n.X)

	case *ast.CallExpr:
		id, ok := n.Fun.(*ast.Ident)
		if ok && numericTypes[id.Name] && len(n.Args) == 1 && !n.Ellipsis.IsValid() {
			num, ok := numericOperand(n.Args[0])
			num.typ = n.Fun

			return num, ok
		}
	}

	return numeric{}, false
}

// Classify determines the literal category of a reference expression.
// Enclosing parentheses are ignored. Any expression that is not one of the
// supported literal forms is rejected with [ErrClassification].
func Classify(expr ast.Expr) (Reference, error) {
	x := astutil.Unparen(expr)
	ref := Reference{Expr: x}

	switch n := x.(type) {
	case *ast.BasicLit:
		ref.Category = basicCategory(n.Kind)

	case *ast.Ident:
		if n.Name == "true" || n.Name == "false" {
			ref.Category = Bool
		}

	case *ast.UnaryExpr:
		if num, ok := numericExpr(n); ok {
			ref.Category = NegatedNumeric
			ref.Type = num.typ
		}

	case *ast.CallExpr:
		ref.Category, ref.Type = classifyConversion(n)

	case *ast.CompositeLit:
		switch n.Type.(type) {
		case *ast.ArrayType:
			ref.Category = Array
			ref.Type = n.Type
			ref.Arity = len(n.Elts)

		case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
			ref.Category = Aggregate
			ref.Type = n.Type
		}
	}

	if ref.Category == CategoryInvalid {
		return Reference{}, ErrClassification.With(
			slog.String("expr", exprKind(x)),
		)
	}

	return ref, nil
}

// basicCategory maps a basic literal token to its category.
func basicCategory(kind token.Token) Category {
	switch kind {
	case token.STRING:
		return String
	case token.CHAR:
		return Char
	case token.INT:
		return Integer
	case token.FLOAT, token.IMAG:
		return Float
	default:
		return CategoryInvalid
	}
}

// classifyConversion classifies the conversions that stand for typed
// literals: []byte("..."), byte('.'), and T(n) for numeric T and signed
// numeric n.
func classifyConversion(call *ast.CallExpr) (Category, ast.Expr) {
	if arr, ok := call.Fun.(*ast.ArrayType); ok && arr.Len == nil {
		elt, ok := arr.Elt.(*ast.Ident)
		if !ok || !byteTypes[elt.Name] {
			return CategoryInvalid, nil
		}

		lit, ok := conversionArg(call, nil)
		if ok && lit.Kind == token.STRING {
			return ByteString, call.Fun
		}

		return CategoryInvalid, nil
	}

	if lit, ok := conversionArg(call, byteTypes); ok && lit.Kind == token.CHAR {
		return Byte, call.Fun
	}

	num, ok := numericExpr(call)
	if !ok {
		return CategoryInvalid, nil
	}

	if num.signed {
		return NegatedNumeric, num.typ
	}

	return basicCategory(num.lit.Kind), num.typ
}

// conversionArg returns the basic literal converted by call. When names is
// non-nil, the conversion type must be an identifier contained in names.
func conversionArg(call *ast.CallExpr, names map[string]bool) (*ast.BasicLit, bool) {
	if len(call.Args) != 1 || call.Ellipsis.IsValid() {
		return nil, false
	}

	if names != nil {
		id, ok := call.Fun.(*ast.Ident)
		if !ok || !names[id.Name] {
			return nil, false
		}
	}

	lit, ok := astutil.Unparen(call.Args[0]).(*ast.BasicLit)

	return lit, ok
}

// exprKind describes the syntactic form of x for diagnostics.
func exprKind(x ast.Expr) string {
	switch n := x.(type) {
	case nil:
		return "nil"
	case *ast.Ident:
		return "identifier " + n.Name
	case *ast.CallExpr:
		return "call expression"
	case *ast.BinaryExpr:
		return "binary expression " + n.Op.String()
	case *ast.UnaryExpr:
		return "unary expression " + n.Op.String()
	case *ast.SelectorExpr:
		return "selector expression"
	case *ast.CompositeLit:
		return "composite literal"
	case *ast.FuncLit:
		return "function literal"
	default:
		return fmt.Sprintf("%T", x)
	}
}
