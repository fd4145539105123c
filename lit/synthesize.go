package lit

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/tools/go/ast/astutil"
)

// Synthesize builds a literal of the reference's category from raw text.
//
// Quoted categories (String, ByteString, Char, Byte) wrap raw in quotes and
// decode it with Go's literal escape rules, so raw text is written exactly
// as it would appear between the quotes of a Go literal. All other
// categories parse raw directly as a Go expression, so numeric bases,
// exponents, signs, and conversions behave as they do in Go source.
//
// Synthesize never trims raw and keeps no state between calls.
func Synthesize(ref Reference, raw string) (Literal, error) {
	var (
		lit Literal
		err error
	)

	switch ref.Category {
	case String:
		lit, err = synthesizeString(raw)
	case ByteString:
		lit, err = synthesizeByteString(ref, raw)
	case Char:
		lit, err = synthesizeChar(raw)
	case Byte:
		lit, err = synthesizeByte(ref, raw)
	case Bool:
		lit, err = synthesizeBool(raw)
	case Integer, Float, NegatedNumeric:
		lit, err = synthesizeNumeric(ref, raw)
	case Array, Aggregate:
		lit, err = synthesizeComposite(ref, raw)
	default:
		return Literal{}, ErrUnsupportedLiteralKind.With(
			slog.String("category", ref.Category.String()),
		)
	}

	if err != nil {
		return Literal{}, WrapError(err).With(
			slog.String("category", ref.Category.String()),
		)
	}

	lit.Category = ref.Category
	lit.Pos = ref.Pos()

	if b, ok := lit.Expr.(*ast.BasicLit); ok {
		b.ValuePos = lit.Pos
	}

	return lit, nil
}

func synthesizeString(raw string) (Literal, error) {
	text := `"` + raw + `"`

	if _, err := unquote(text); err != nil {
		return Literal{}, err
	}

	return basicLiteral(token.STRING, text), nil
}

func synthesizeByteString(ref Reference, raw string) (Literal, error) {
	if !isASCII(raw) {
		return Literal{}, ErrNonASCII
	}

	text := `"` + raw + `"`

	if _, err := unquote(text); err != nil {
		return Literal{}, err
	}

	return conversion(ErrMalformedEscape, ref.Type, text)
}

func synthesizeChar(raw string) (Literal, error) {
	chars, err := decode(raw, '\'')
	if err != nil {
		return Literal{}, err
	}

	if len(chars) != 1 {
		return Literal{}, ErrCharCount.With(slog.Int("count", len(chars)))
	}

	return basicLiteral(token.CHAR, "'"+raw+"'"), nil
}

func synthesizeByte(ref Reference, raw string) (Literal, error) {
	if !isASCII(raw) {
		return Literal{}, ErrNonASCII
	}

	chars, err := decode(raw, '\'')
	if err != nil {
		return Literal{}, err
	}

	if len(chars) != 1 || chars[0].multibyte || chars[0].value > 0xFF {
		return Literal{}, ErrByteCount.With(slog.Int("count", len(chars)))
	}

	return conversion(ErrMalformedEscape, ref.Type, "'"+raw+"'")
}

func synthesizeBool(raw string) (Literal, error) {
	fset, x, err := parse(raw)
	if err != nil {
		return Literal{}, ErrMalformedBool.Wrap(err)
	}

	id, ok := astutil.Unparen(x).(*ast.Ident)
	if !ok || (id.Name != "true" && id.Name != "false") {
		return Literal{}, ErrMalformedBool.With(slog.String("expr", exprKind(x)))
	}

	return rendered(ErrMalformedBool, fset, x)
}

func synthesizeNumeric(ref Reference, raw string) (Literal, error) {
	fset, x, err := parse(raw)
	if err != nil {
		return Literal{}, ErrMalformedNumeric.Wrap(err)
	}

	num, ok := numericExpr(x)
	if !ok {
		return Literal{}, ErrMalformedNumeric.With(slog.String("expr", exprKind(x)))
	}

	switch c := basicCategory(num.lit.Kind); ref.Category {
	case Integer, Float:
		if c != ref.Category {
			return Literal{}, ErrMalformedNumeric.With(
				slog.String("want", ref.Category.String()),
				slog.String("got", c.String()),
			)
		}
	}

	// A typed reference keeps its conversion when the replacement does not
	// name one, so the declared constant type survives the rewrite.
	if ref.Type != nil && num.typ == nil {
		text, err := render(fset, x)
		if err != nil {
			return Literal{}, ErrMalformedNumeric.Wrap(err)
		}

		return conversion(ErrMalformedNumeric, ref.Type, text)
	}

	return rendered(ErrMalformedNumeric, fset, x)
}

func synthesizeComposite(ref Reference, raw string) (Literal, error) {
	malformed := ErrMalformedAggregate
	if ref.Category == Array {
		malformed = ErrMalformedArray
	}

	src := raw

	// A bare brace-enclosed element list inherits the reference's type, as
	// elided composite types do inside Go composite literals.
	if strings.HasPrefix(strings.TrimSpace(raw), "{") && ref.Type != nil {
		typ, err := render(token.NewFileSet(), ref.Type)
		if err != nil {
			return Literal{}, malformed.Wrap(err)
		}

		src = typ + raw
	}

	fset, x, err := parse(src)
	if err != nil {
		return Literal{}, malformed.Wrap(err)
	}

	comp, ok := astutil.Unparen(x).(*ast.CompositeLit)
	if !ok {
		return Literal{}, malformed.With(slog.String("expr", exprKind(x)))
	}

	switch comp.Type.(type) {
	case *ast.ArrayType:
		ok = ref.Category == Array

	case *ast.Ident, *ast.SelectorExpr, *ast.IndexExpr, *ast.IndexListExpr:
		ok = ref.Category == Aggregate

	default:
		ok = false
	}

	if !ok {
		return Literal{}, malformed.With(slog.String("expr", "composite literal of another kind"))
	}

	return rendered(malformed, fset, x)
}

// char is one decoded character of a quoted literal.
type char struct {
	value     rune
	multibyte bool
}

// byteOrderMark may not appear unescaped in Go source after the first byte.
const byteOrderMark = "\uFEFF"

// decode splits the body of a quoted literal into decoded characters using
// Go's escape rules. An unescaped quote, newline, NUL, or byte order mark is
// malformed.
func decode(body string, quote byte) ([]char, error) {
	if !utf8.ValidString(body) {
		return nil, ErrMalformedEscape.With(slog.String("reason", "invalid UTF-8"))
	}

	var chars []char

	for s := body; len(s) > 0; {
		switch {
		case s[0] == '\n':
			return nil, ErrMalformedEscape.With(slog.String("reason", "newline in literal"))
		case s[0] == 0:
			return nil, ErrMalformedEscape.With(slog.String("reason", "NUL in literal"))
		case strings.HasPrefix(s, byteOrderMark):
			return nil, ErrMalformedEscape.With(slog.String("reason", "byte order mark in literal"))
		}

		value, multibyte, tail, err := strconv.UnquoteChar(s, quote)
		if err != nil {
			return nil, ErrMalformedEscape.Wrap(err).With(
				slog.Int("offset", len(body)-len(s)),
			)
		}

		chars = append(chars, char{value: value, multibyte: multibyte})
		s = tail
	}

	return chars, nil
}

// unquote decodes a complete interpreted string literal.
func unquote(text string) (string, error) {
	body := text[1 : len(text)-1]

	if _, err := decode(body, '"'); err != nil {
		return "", err
	}

	s, err := strconv.Unquote(text)
	if err != nil {
		return "", ErrMalformedEscape.Wrap(err)
	}

	return s, nil
}

func isASCII(s string) bool {
	for i := range len(s) {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}

	return true
}

func basicLiteral(kind token.Token, text string) Literal {
	return Literal{
		Expr: &ast.BasicLit{Kind: kind, Value: text},
		Text: text,
	}
}

// conversion wraps the source text of a synthesized operand in the
// reference's conversion type. The result is parsed afresh so that every
// node of the literal belongs to the same file set. Failures are reported
// as kind.
func conversion(kind *Error, typ ast.Expr, operand string) (Literal, error) {
	if typ == nil {
		return Literal{}, ErrUnsupportedLiteralKind.With(
			slog.String("reason", "missing conversion type"),
		)
	}

	name, err := render(token.NewFileSet(), typ)
	if err != nil {
		return Literal{}, kind.Wrap(err)
	}

	fset, x, err := parse(name + "(" + operand + ")")
	if err != nil {
		return Literal{}, kind.Wrap(err)
	}

	return rendered(kind, fset, x)
}

func rendered(kind *Error, fset *token.FileSet, x ast.Expr) (Literal, error) {
	text, err := render(fset, x)
	if err != nil {
		return Literal{}, kind.Wrap(err)
	}

	return Literal{Expr: x, Text: text}, nil
}

// parse parses raw text as a single Go expression.
func parse(src string) (*token.FileSet, ast.Expr, error) {
	fset := token.NewFileSet()

	x, err := parser.ParseExprFrom(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, nil, err
	}

	return fset, x, nil
}

// render prints x as Go source text.
func render(fset *token.FileSet, x ast.Node) (string, error) {
	var buf bytes.Buffer

	err := printer.Fprint(&buf, fset, x)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
