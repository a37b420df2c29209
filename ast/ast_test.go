package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/titivuk/simple-lang/token"
)

func TestString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&Assign{
				Name: &Identifier{Value: "x"},
				Value: &StringConcat{
					Left:     &Literal{Value: "it's"},
					Operator: token.CONCAT,
					Right:    &Grouping{Expression: &Binary{Left: &Literal{Value: int64(5)}, Operator: token.PLUS, Right: &Literal{Value: 3.0}}},
				},
			},
			&FunDecl{
				Name:       &Identifier{Value: "f"},
				Parameters: []*Identifier{{Value: "a"}, {Value: "b"}},
				Body: &Program{Statements: []Statement{
					&If{
						Condition:   &LogicalUnary{Operator: token.NOT, Right: &Identifier{Value: "a"}},
						Consequence: &Program{Statements: []Statement{&Ret{}}},
						Alternative: &Program{},
					},
					&Ret{ReturnValue: &Call{
						Function:  &Identifier{Value: "g"},
						Arguments: []Expression{&Unary{Operator: token.MINUS, Right: &Identifier{Value: "b"}}, &Literal{Value: true}},
					}},
				}},
			},
		},
	}

	want := `x := 'it\'s' # (5 + 3.0)
fun f(a, b) {
	if not a {
		ret
	}
	ret g(-b, true)
}`
	assert.Equal(t, want, program.String())
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{int64(42), "42"},
		{2.5, "2.5"},
		{2.0, "2.0"},
		{1e300, "1e+300"},
		{1e21, "1e+21"},
		{1e20, "100000000000000000000.0"},
		{0.0000001, "1e-07"},
		{false, "false"},
		{"a\\b\nc\td'", `'a\\b\nc\td\''`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, (&Literal{Value: tt.value}).String())
	}
}

func TestEqualIgnoresTokens(t *testing.T) {
	a := &Binary{
		Token:    token.Token{Type: token.PLUS, Text: "+", Line: 1},
		Left:     &Identifier{Token: token.Token{Line: 1}, Value: "x"},
		Operator: token.PLUS,
		Right:    &Literal{Value: int64(1)},
	}
	b := &Binary{
		Token:    token.Token{Type: token.PLUS, Text: "+", Line: 7},
		Left:     &Identifier{Token: token.Token{Line: 7}, Value: "x"},
		Operator: token.PLUS,
		Right:    &Literal{Value: int64(1)},
	}

	assert.True(t, Equal(a, b))
	assert.True(t, Equal(b, a))
}

func TestEqualDetectsDifferences(t *testing.T) {
	base := func() *Binary {
		return &Binary{Left: &Identifier{Value: "x"}, Operator: token.PLUS, Right: &Literal{Value: int64(1)}}
	}

	op := base()
	op.Operator = token.MINUS
	assert.False(t, Equal(base(), op))

	float := base()
	float.Right = &Literal{Value: 1.0}
	assert.False(t, Equal(base(), float), "int and float literals differ")

	grouped := &Grouping{Expression: base()}
	assert.False(t, Equal(base(), grouped))

	assert.False(t, Equal(&Ret{}, &Ret{ReturnValue: &Literal{Value: int64(1)}}))
	assert.True(t, Equal(&Ret{}, &Ret{}))

	withElse := &If{Condition: &Identifier{Value: "c"}, Consequence: &Program{}, Alternative: &Program{}}
	withoutElse := &If{Condition: &Identifier{Value: "c"}, Consequence: &Program{}}
	assert.False(t, Equal(withElse, withoutElse))

	assert.False(t, Equal(
		&FunDecl{Name: &Identifier{Value: "f"}, Parameters: []*Identifier{{Value: "a"}}, Body: &Program{}},
		&FunDecl{Name: &Identifier{Value: "f"}, Parameters: []*Identifier{{Value: "b"}}, Body: &Program{}},
	))
}
