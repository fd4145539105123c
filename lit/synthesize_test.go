package lit

import (
	"errors"
	"go/ast"
	"go/parser"
	"strconv"
	"testing"
)

func synthesize(t *testing.T, ref, raw string) (Literal, error) {
	t.Helper()

	r, err := Classify(mustExpr(t, ref))
	if err != nil {
		t.Fatalf("Classify(%s): %v", ref, err)
	}

	return Synthesize(r, raw)
}

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		raw  string
		want string
	}{
		{"string", `"Hello"`, `world`, `"world"`},
		{"string escape", `"Hello"`, `world\tfoo`, `"world\tfoo"`},
		{"string empty", `"Hello"`, ``, `""`},
		{"string unicode", `"Hello"`, `héllo ✓`, `"héllo ✓"`},
		{"string escaped quote", `"Hello"`, `say \"hi\"`, `"say \"hi\""`},
		{"string keeps spaces", `"Hello"`, `  padded  `, `"  padded  "`},
		{"raw string reference", "`raw`", `x\ny`, `"x\ny"`},
		{"byte string", `[]byte("abc")`, `xyz`, `[]byte("xyz")`},
		{"byte string escape", `[]byte("abc")`, `a\x80\n`, `[]byte("a\x80\n")`},
		{"byte string uint8", `[]uint8("abc")`, `q`, `[]uint8("q")`},
		{"char", `'a'`, `b`, `'b'`},
		{"char escape", `'a'`, `\t`, `'\t'`},
		{"char hex", `'a'`, `\x41`, `'\x41'`},
		{"char unicode", `'a'`, `é`, `'é'`},
		{"char quote", `'a'`, `\'`, `'\''`},
		{"char double quote", `'a'`, `"`, `'"'`},
		{"byte", `byte('a')`, `Z`, `byte('Z')`},
		{"byte max", `byte('a')`, `\xff`, `byte('\xff')`},
		{"byte octal", `uint8('a')`, `\000`, `uint8('\000')`},
		{"bool", `true`, `false`, `false`},
		{"bool parens", `false`, `(true)`, `(true)`},
		{"integer", `42`, `7`, `7`},
		{"integer hex", `42`, `0x1F`, `0x1F`},
		{"integer separators", `42`, `1_000_000`, `1_000_000`},
		{"integer negative", `0`, `-123`, `-123`},
		{"integer spaced sign", `0`, ` - 123 `, `-123`},
		{"integer typed", `uint32(0)`, `uint32(1)`, `uint32(1)`},
		{"integer keeps type", `uint32(0)`, `1`, `uint32(1)`},
		{"integer retyped", `uint32(0)`, `uint64(2)`, `uint64(2)`},
		{"float", `1.5`, `2.25`, `2.25`},
		{"float exponent", `1.5`, `6.02e23`, `6.02e23`},
		{"float imaginary", `1.5`, `3i`, `3i`},
		{"float keeps type", `float32(1.5)`, `0.5`, `float32(0.5)`},
		{"negated", `-0`, `-1`, `-1`},
		{"negated unsigned", `-0`, `5`, `5`},
		{"negated float", `-1`, `-2.5`, `-2.5`},
		{"negated typed", `-int8(3)`, `-4`, `int8(-4)`},
		{"negated nested", `-0`, `-(-1)`, `-(-1)`},
		{"negated plus", `-0`, `+1`, `+1`},
		{"negated rune", `-'a'`, `-'b'`, `-'b'`},
		{"negated from rune", `-0`, `-'\n'`, `-'\n'`},
		{"integer typed negative", `int64(0)`, `int64(-9)`, `int64(-9)`},
		{"array", `[3]int{1, 2, 3}`, `[3]int{4, 5, 6}`, `[3]int{4, 5, 6}`},
		{"array elided", `[3]int{1, 2, 3}`, `{10, 11}`, `[3]int{10, 11}`},
		{"array other arity", `[3]int{1, 2, 3}`, `[2]int{1, 2}`, `[2]int{1, 2}`},
		{"slice", `[]string{"a"}`, `[]string{"b", "c"}`, `[]string{"b", "c"}`},
		{"aggregate", `Point{X: 1}`, `Point{X: 2, Y: 3}`, `Point{X: 2, Y: 3}`},
		{"aggregate elided", `Point{X: 1}`, `{Y: 5}`, `Point{Y: 5}`},
		{"aggregate qualified", `image.Point{}`, `{1, 2}`, `image.Point{1, 2}`},
		{"aggregate generic", `Box[int]{}`, `{V: 1}`, `Box[int]{V: 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, err := synthesize(t, tt.ref, tt.raw)
			if err != nil {
				t.Fatalf("Synthesize(%s, %q): %v", tt.ref, tt.raw, err)
			}

			if lit.Text != tt.want {
				t.Errorf("Synthesize(%s, %q) = %s, want %s", tt.ref, tt.raw, lit.Text, tt.want)
			}

			// The synthesized literal classifies into the same category,
			// or into the signed member of the numeric family.
			again, err := Classify(lit.Expr)
			if err != nil {
				t.Fatalf("Classify(%s): %v", lit.Text, err)
			}

			if again.Category != lit.Category &&
				(!again.Category.Numeric() || !lit.Category.Numeric()) {
				t.Errorf("Classify(%s) = %v, want %v", lit.Text, again.Category, lit.Category)
			}
		})
	}
}

func TestSynthesize_Decoded(t *testing.T) {
	lit, err := synthesize(t, `"Hello"`, `world\tfoo`)
	if err != nil {
		t.Fatal(err)
	}

	got, err := strconv.Unquote(lit.Expr.(*ast.BasicLit).Value)
	if err != nil {
		t.Fatal(err)
	}

	if got != "world\tfoo" {
		t.Errorf("decoded value = %q, want %q", got, "world\tfoo")
	}
}

func TestSynthesize_EscapedControl(t *testing.T) {
	tests := []struct {
		ref string
		raw string
	}{
		{`"Hello"`, `a\x00b`},
		{`"Hello"`, `\uFEFF`},
		{`'a'`, `\x00`},
		{`'a'`, `\uFEFF`},
		{`[]byte("abc")`, `\000`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			lit, err := synthesize(t, tt.ref, tt.raw)
			if err != nil {
				t.Fatalf("Synthesize(%s, %q): %v", tt.ref, tt.raw, err)
			}

			if _, err := parser.ParseExpr(lit.Text); err != nil {
				t.Errorf("ParseExpr(%q): %v", lit.Text, err)
			}
		})
	}
}

func TestSynthesize_Errors(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		raw  string
		want error
	}{
		{"string unescaped quote", `"Hello"`, `say "hi"`, ErrMalformedEscape},
		{"string bad escape", `"Hello"`, `\q`, ErrMalformedEscape},
		{"string single quote escape", `"Hello"`, `\'`, ErrMalformedEscape},
		{"string trailing backslash", `"Hello"`, `abc\`, ErrMalformedEscape},
		{"string newline", `"Hello"`, "a\nb", ErrMalformedEscape},
		{"string invalid utf8", `"Hello"`, "\xff", ErrMalformedEscape},
		{"string raw NUL", `"Hello"`, "a\x00b", ErrMalformedEscape},
		{"string byte order mark", `"Hello"`, "a\uFEFFb", ErrMalformedEscape},
		{"string leading byte order mark", `"Hello"`, "\uFEFF", ErrMalformedEscape},
		{"byte string raw NUL", `[]byte("abc")`, "\x00", ErrMalformedEscape},
		{"char raw NUL", `'a'`, "\x00", ErrMalformedEscape},
		{"char byte order mark", `'a'`, "\uFEFF", ErrMalformedEscape},
		{"byte string non-ascii", `[]byte("abc")`, `héllo`, ErrNonASCII},
		{"byte string bad escape", `[]byte("abc")`, `\z`, ErrMalformedEscape},
		{"char empty", `'a'`, ``, ErrCharCount},
		{"char two", `'a'`, `bb`, ErrCharCount},
		{"char two escapes", `'a'`, `\t\t`, ErrCharCount},
		{"char unescaped quote", `'a'`, `'`, ErrMalformedEscape},
		{"char double quote escape", `'a'`, `\"`, ErrMalformedEscape},
		{"byte empty", `byte('a')`, ``, ErrByteCount},
		{"byte two", `byte('a')`, `ab`, ErrByteCount},
		{"byte non-ascii", `byte('a')`, `é`, ErrNonASCII},
		{"byte unicode escape", `byte('a')`, `\u00e9`, ErrByteCount},
		{"byte octal overflow", `byte('a')`, `\400`, ErrMalformedEscape},
		{"bool word", `true`, `yes`, ErrMalformedBool},
		{"bool number", `true`, `1`, ErrMalformedBool},
		{"bool syntax", `true`, `true)`, ErrMalformedBool},
		{"integer float", `42`, `1.5`, ErrMalformedNumeric},
		{"integer word", `42`, `many`, ErrMalformedNumeric},
		{"integer empty", `42`, ``, ErrMalformedNumeric},
		{"integer expression", `42`, `1 + 2`, ErrMalformedNumeric},
		{"integer string", `42`, `"7"`, ErrMalformedNumeric},
		{"float integer", `1.5`, `2`, ErrMalformedNumeric},
		{"negated word", `-1`, `-x`, ErrMalformedNumeric},
		{"negated not", `-1`, `^1`, ErrMalformedNumeric},
		{"negated unsigned rune", `-1`, `'a'`, ErrMalformedNumeric},
		{"integer signed rune", `42`, `-'a'`, ErrMalformedNumeric},
		{"array scalar", `[3]int{1, 2, 3}`, `7`, ErrMalformedArray},
		{"array aggregate", `[3]int{1, 2, 3}`, `Point{}`, ErrMalformedArray},
		{"array syntax", `[3]int{1, 2, 3}`, `{1, 2`, ErrMalformedArray},
		{"aggregate array", `Point{}`, `[]int{1}`, ErrMalformedAggregate},
		{"aggregate map", `Point{}`, `map[string]int{}`, ErrMalformedAggregate},
		{"aggregate pointer", `Point{}`, `&Point{}`, ErrMalformedAggregate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := synthesize(t, tt.ref, tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Synthesize(%s, %q) error = %v, want %v", tt.ref, tt.raw, err, tt.want)
			}

			if !errors.Is(err, ErrSynthesis) {
				t.Errorf("error %v does not match ErrSynthesis", err)
			}
		})
	}
}

func TestSynthesize_Unsupported(t *testing.T) {
	_, err := Synthesize(Reference{}, "x")
	if !errors.Is(err, ErrUnsupportedLiteralKind) {
		t.Errorf("error = %v, want ErrUnsupportedLiteralKind", err)
	}

	if errors.Is(err, ErrSynthesis) {
		t.Errorf("ErrUnsupportedLiteralKind matches ErrSynthesis")
	}
}

func TestSynthesize_Position(t *testing.T) {
	fset, f := mustFile(t, "package p\n\nconst C = 'a'\n")
	ref, err := Classify(f.Decls[0].(*ast.GenDecl).Specs[0].(*ast.ValueSpec).Values[0])
	if err != nil {
		t.Fatal(err)
	}

	lit, err := Synthesize(ref, "z")
	if err != nil {
		t.Fatal(err)
	}

	if lit.Pos != ref.Pos() || lit.Expr.Pos() != ref.Pos() {
		t.Errorf("literal at %v, reference at %v", fset.Position(lit.Pos), fset.Position(ref.Pos()))
	}
}

func TestSynthesize_Stateless(t *testing.T) {
	r, err := Classify(mustExpr(t, `"Hello"`))
	if err != nil {
		t.Fatal(err)
	}

	for _, raw := range []string{"one", "two", "one"} {
		lit, err := Synthesize(r, raw)
		if err != nil {
			t.Fatal(err)
		}

		if want := strconv.Quote(raw); lit.Text != want {
			t.Errorf("Synthesize(%q) = %s, want %s", raw, lit.Text, want)
		}
	}
}

func TestConversion_ErrorKind(t *testing.T) {
	tests := []struct {
		name string
		kind *Error
	}{
		{"escape", ErrMalformedEscape},
		{"numeric", ErrMalformedNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// An unbalanced type name makes the conversion unparsable.
			_, err := conversion(tt.kind, ast.NewIdent("("), `"a"`)
			if !errors.Is(err, tt.kind) {
				t.Errorf("conversion error = %v, want %v", err, tt.kind)
			}

			if !errors.Is(err, ErrSynthesis) {
				t.Errorf("error %v does not match ErrSynthesis", err)
			}
		})
	}
}
