package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/titivuk/simple-lang/token"
)

// Literal holds a NUMBER, STRING, true or false.
// Value is int64, float64, string or bool.
type Literal struct {
	Token token.Token
	Value any
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Text }
func (l *Literal) String() string {
	switch v := l.Value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return FormatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return quote(v)
	default:
		return l.Token.Text
	}
}

// FormatFloat prints f in the shortest form that reads back as the same
// float, with an exponent below 1e-4 and from 1e21 on. Integral values
// keep a trailing .0 so they do not read as integers.
func FormatFloat(f float64) string {
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		format = 'e'
	}

	s := strconv.FormatFloat(f, format, -1, 64)
	if strings.ContainsAny(s, ".eIN") { // decimals, exponent, Inf, NaN
		return s
	}
	return s + ".0"
}

var quoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`)

func quote(s string) string {
	return "'" + quoter.Replace(s) + "'"
}

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Text }
func (i *Identifier) String() string       { return i.Value }

// Grouping is a parenthesized expression
type Grouping struct {
	Token      token.Token // the '(' token
	Expression Expression
}

func (g *Grouping) expressionNode()      {}
func (g *Grouping) TokenLiteral() string { return g.Token.Text }
func (g *Grouping) String() string       { return "(" + g.Expression.String() + ")" }

// Unary is prefix + or -
type Unary struct {
	Token    token.Token
	Operator token.TokenType
	Right    Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Text }
func (u *Unary) String() string       { return string(u.Operator) + u.Right.String() }

// LogicalUnary is prefix not
type LogicalUnary struct {
	Token    token.Token
	Operator token.TokenType
	Right    Expression
}

func (u *LogicalUnary) expressionNode()      {}
func (u *LogicalUnary) TokenLiteral() string { return u.Token.Text }
func (u *LogicalUnary) String() string       { return "not " + u.Right.String() }

// Binary is one of + - * / ^
type Binary struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Text }
func (b *Binary) String() string       { return infix(b.Left, string(b.Operator), b.Right) }

// LogicalBinary is `and` or `or`
type LogicalBinary struct {
	Token    token.Token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (b *LogicalBinary) expressionNode()      {}
func (b *LogicalBinary) TokenLiteral() string { return b.Token.Text }
func (b *LogicalBinary) String() string {
	return infix(b.Left, strings.ToLower(string(b.Operator)), b.Right)
}

// Comparison is one of < <= > >= =
type Comparison struct {
	Token    token.Token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (c *Comparison) expressionNode()      {}
func (c *Comparison) TokenLiteral() string { return c.Token.Text }
func (c *Comparison) String() string       { return infix(c.Left, string(c.Operator), c.Right) }

type StringConcat struct {
	Token    token.Token
	Left     Expression
	Operator token.TokenType
	Right    Expression
}

func (s *StringConcat) expressionNode()      {}
func (s *StringConcat) TokenLiteral() string { return s.Token.Text }
func (s *StringConcat) String() string       { return infix(s.Left, string(s.Operator), s.Right) }

type Call struct {
	Token     token.Token // the '(' token
	Function  Expression  // Identifier or any expression producing a function
	Arguments []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Text }
func (c *Call) String() string {
	args := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		args[i] = a.String()
	}
	return c.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

func infix(left Expression, op string, right Expression) string {
	return left.String() + " " + op + " " + right.String()
}
