package lit

import (
	"go/ast"
	"go/token"
)

// Category is the literal kind established by a reference expression.
type Category int

const (
	CategoryInvalid Category = iota // invalid
	String                          // string
	ByteString                      // byte string
	Char                            // char
	Byte                            // byte
	Bool                            // bool
	Integer                         // integer
	Float                           // float
	Array                           // array
	Aggregate                       // aggregate
	NegatedNumeric                  // negated numeric
)

// String returns the name of the category.
func (c Category) String() string {
	switch c {
	case String:
		return "string"
	case ByteString:
		return "byte string"
	case Char:
		return "char"
	case Byte:
		return "byte"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Array:
		return "array"
	case Aggregate:
		return "aggregate"
	case NegatedNumeric:
		return "negated numeric"
	default:
		return "invalid"
	}
}

// Quoted reports whether replacement text of this category is wrapped in
// quotes before decoding, instead of being parsed as an expression.
func (c Category) Quoted() bool {
	switch c {
	case String, ByteString, Char, Byte:
		return true
	default:
		return false
	}
}

// Numeric reports whether c belongs to the numeric family. A signed
// replacement for an Integer or Float reference re-classifies as
// NegatedNumeric, its signed member.
func (c Category) Numeric() bool {
	switch c {
	case Integer, Float, NegatedNumeric:
		return true
	default:
		return false
	}
}

// Reference is a classified reference expression. It is derived once from
// the authored expression and never re-derived during synthesis.
type Reference struct {
	Category Category

	// Expr is the reference expression with enclosing parentheses removed.
	Expr ast.Expr

	// Type is the conversion type of ByteString, Byte, and typed numeric
	// references, or the composite type of Array and Aggregate references.
	// It is nil otherwise.
	Type ast.Expr

	// Arity is the number of elements of an Array reference. It is recorded
	// for diagnostics and never enforced.
	Arity int
}

// Pos returns the position of the reference expression.
func (r Reference) Pos() token.Pos {
	if r.Expr == nil {
		return token.NoPos
	}

	return r.Expr.Pos()
}

// Literal is a synthesized literal. It shares the category of the Reference
// it was synthesized for, but not its value.
type Literal struct {
	Category Category

	// Expr is the synthesized expression.
	Expr ast.Expr

	// Text is the Go source text of Expr.
	Text string

	// Pos is the position of the reference the literal replaces.
	Pos token.Pos
}
