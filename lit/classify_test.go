package lit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	type result struct {
		Category Category
		Type     bool
		Arity    int
	}

	tests := []struct {
		expr string
		want result
	}{
		{`"Hello"`, result{Category: String}},
		{"`raw`", result{Category: String}},
		{`("Hello")`, result{Category: String}},
		{`[]byte("abc")`, result{Category: ByteString, Type: true}},
		{`[]uint8("abc")`, result{Category: ByteString, Type: true}},
		{`'a'`, result{Category: Char}},
		{`'\n'`, result{Category: Char}},
		{`byte('a')`, result{Category: Byte, Type: true}},
		{`uint8('\x00')`, result{Category: Byte, Type: true}},
		{`true`, result{Category: Bool}},
		{`((false))`, result{Category: Bool}},
		{`42`, result{Category: Integer}},
		{`0x2A`, result{Category: Integer}},
		{`uint32(0)`, result{Category: Integer, Type: true}},
		{`1.5`, result{Category: Float}},
		{`2i`, result{Category: Float}},
		{`float32(1e3)`, result{Category: Float, Type: true}},
		{`-0`, result{Category: NegatedNumeric}},
		{`-1.5`, result{Category: NegatedNumeric}},
		{`-(7)`, result{Category: NegatedNumeric}},
		{`-int8(3)`, result{Category: NegatedNumeric, Type: true}},
		{`int8(-3)`, result{Category: NegatedNumeric, Type: true}},
		{`+1`, result{Category: NegatedNumeric}},
		{`-(-1)`, result{Category: NegatedNumeric}},
		{`-'a'`, result{Category: NegatedNumeric}},
		{`rune(-'a')`, result{Category: NegatedNumeric, Type: true}},
		{`byte(65)`, result{Category: Integer, Type: true}},
		{`[3]int{1, 2, 3}`, result{Category: Array, Type: true, Arity: 3}},
		{`[]string{}`, result{Category: Array, Type: true}},
		{`[...]byte{'a', 'b'}`, result{Category: Array, Type: true, Arity: 2}},
		{`Point{X: 1, Y: 2}`, result{Category: Aggregate, Type: true}},
		{`image.Point{}`, result{Category: Aggregate, Type: true}},
		{`Pair[int, string]{}`, result{Category: Aggregate, Type: true}},
		{`Box[int]{V: 1}`, result{Category: Aggregate, Type: true}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ref, err := Classify(mustExpr(t, tt.expr))
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}

			got := result{Category: ref.Category, Type: ref.Type != nil, Arity: ref.Arity}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_Unsupported(t *testing.T) {
	for _, expr := range []string{
		`x`,
		`nil`,
		`a + b`,
		`f()`,
		`len("abc")`,
		`int32('a')`,
		`string(65)`,
		`[]int("abc")`,
		`&Point{}`,
		`map[string]int{}`,
		`struct{ X int }{1}`,
		`-x`,
		`-"abc"`,
		`!true`,
		`func() {}`,
		`x.y`,
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := Classify(mustExpr(t, expr))
			if !errors.Is(err, ErrClassification) {
				t.Errorf("Classify(%s) error = %v, want ErrClassification", expr, err)
			}
		})
	}
}

func TestCategory_Family(t *testing.T) {
	for c := CategoryInvalid; c <= NegatedNumeric; c++ {
		wantQuoted := c == String || c == ByteString || c == Char || c == Byte
		wantNumeric := c == Integer || c == Float || c == NegatedNumeric

		if c.Quoted() != wantQuoted {
			t.Errorf("%v.Quoted() = %v", c, c.Quoted())
		}

		if c.Numeric() != wantNumeric {
			t.Errorf("%v.Numeric() = %v", c, c.Numeric())
		}

		if c != CategoryInvalid && c.String() == "invalid" {
			t.Errorf("category %d has no name", int(c))
		}
	}
}
