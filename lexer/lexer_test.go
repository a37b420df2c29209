package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titivuk/simple-lang/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := Scan(src)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	require.Equal(t, token.TokenType(token.EOF), tokens[len(tokens)-1].Type, "last token must be EOF")
	return tokens
}

func types(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestArithmetic(t *testing.T) {
	got := scan(t, "5 * 341 - 4 / 81 * (532 + 7)")

	want := []token.Token{
		{Type: token.NUMBER, Text: "5", Value: int64(5), Line: 1},
		{Type: token.MUL, Text: "*", Line: 1},
		{Type: token.NUMBER, Text: "341", Value: int64(341), Line: 1},
		{Type: token.MINUS, Text: "-", Line: 1},
		{Type: token.NUMBER, Text: "4", Value: int64(4), Line: 1},
		{Type: token.DIV, Text: "/", Line: 1},
		{Type: token.NUMBER, Text: "81", Value: int64(81), Line: 1},
		{Type: token.MUL, Text: "*", Line: 1},
		{Type: token.LPAREN, Text: "(", Line: 1},
		{Type: token.NUMBER, Text: "532", Value: int64(532), Line: 1},
		{Type: token.PLUS, Text: "+", Line: 1},
		{Type: token.NUMBER, Text: "7", Value: int64(7), Line: 1},
		{Type: token.RPAREN, Text: ")", Line: 1},
		{Type: token.EOF, Line: 1},
	}
	assert.Equal(t, want, got)
}

func TestTwoCharOperators(t *testing.T) {
	got := scan(t, "x := a <= b >= c < d > e = f")

	assert.Equal(t, []token.TokenType{
		token.IDENT, token.ASSIGN, token.IDENT, token.LE, token.IDENT, token.GE,
		token.IDENT, token.LT, token.IDENT, token.GT, token.IDENT, token.EQUAL, token.IDENT,
		token.EOF,
	}, types(got))
	assert.Equal(t, ":=", got[1].Text)
	assert.Equal(t, "<=", got[3].Text)
	assert.Equal(t, ">=", got[5].Text)
}

func TestKeywords(t *testing.T) {
	got := scan(t, "if else while fun ret true false and or not iffy _x1")

	assert.Equal(t, []token.TokenType{
		token.IF, token.ELSE, token.WHILE, token.FUN, token.RET, token.TRUE, token.FALSE,
		token.AND, token.OR, token.NOT, token.IDENT, token.IDENT, token.EOF,
	}, types(got))
	assert.Equal(t, true, got[5].Value)
	assert.Equal(t, false, got[6].Value)
	assert.Equal(t, "iffy", got[10].Text)
	assert.Equal(t, "_x1", got[11].Text)
}

func TestNumbers(t *testing.T) {
	got := scan(t, "42 3.25 7.")

	assert.Equal(t, int64(42), got[0].Value)
	assert.Equal(t, 3.25, got[1].Value)
	assert.Equal(t, 7.0, got[2].Value)
	assert.Equal(t, "7.", got[2].Text)
}

func TestExponents(t *testing.T) {
	got := scan(t, "1e3 2.5E-2 1e+300 1e")

	assert.Equal(t, 1000.0, got[0].Value)
	assert.Equal(t, "1e3", got[0].Text)
	assert.Equal(t, 0.025, got[1].Value)
	assert.Equal(t, 1e300, got[2].Value)

	// without digits the e is an identifier
	assert.Equal(t, int64(1), got[3].Value)
	assert.Equal(t, token.TokenType(token.IDENT), got[4].Type)
	assert.Equal(t, "e", got[4].Text)
}

func TestStrings(t *testing.T) {
	got := scan(t, `s := 'it\'s' # 'a\\b' # '' # 'x\ny'`)

	require.Len(t, got, 10)
	assert.Equal(t, token.TokenType(token.STRING), got[2].Type)
	assert.Equal(t, "it's", got[2].Value)
	assert.Equal(t, `'it\'s'`, got[2].Text)
	assert.Equal(t, `a\b`, got[4].Value)
	assert.Equal(t, "", got[6].Value)
	assert.Equal(t, "x\ny", got[8].Value)
}

func TestLinesAndSeparators(t *testing.T) {
	got := scan(t, "a := 1\n\nb := 2; c := 3\n")

	assert.Equal(t, []token.TokenType{
		token.IDENT, token.ASSIGN, token.NUMBER, token.EOL,
		token.EOL,
		token.IDENT, token.ASSIGN, token.NUMBER, token.EOL, token.IDENT, token.ASSIGN, token.NUMBER, token.EOL,
		token.EOF,
	}, types(got))

	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 1, got[3].Line, "newline token belongs to the line it ends")
	assert.Equal(t, 3, got[5].Line)
	assert.Equal(t, 3, got[9].Line)
	assert.Equal(t, 4, got[13].Line)
}

func TestMultilineStringKeepsStartLine(t *testing.T) {
	got := scan(t, "'a\nb' x")

	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 2, got[1].Line)
}

func TestConcatAndPunctuation(t *testing.T) {
	got := scan(t, "f(a, b) # {x}^2\t+3")

	assert.Equal(t, []token.TokenType{
		token.IDENT, token.LPAREN, token.IDENT, token.COMMA, token.IDENT, token.RPAREN,
		token.CONCAT, token.LBRACE, token.IDENT, token.RBRACE, token.POW, token.NUMBER,
		token.PLUS, token.NUMBER, token.EOF,
	}, types(got))
}

func TestEmptyInput(t *testing.T) {
	got := scan(t, "   \t ")
	assert.Equal(t, []token.Token{{Type: token.EOF, Line: 1}}, got)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		line       int
		incomplete bool
	}{
		{"unknown character", "x := 1\ny := 2 @ 3", 2, false},
		{"lone colon", "x : 1", 1, false},
		{"unterminated string", "x := 'abc", 1, true},
		{"bad escape", `'\q'`, 1, false},
		{"integer overflow", "99999999999999999999", 1, false},
		{"second dot", "1.2.3", 1, false},
		{"NUL byte", "x := 1\x00 y := $$$", 1, false},
		{"NUL on a later line", "x := 1\n\x00", 2, false},
		{"exponent overflow", "x := 1e400", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan(tt.input)
			require.Error(t, err)

			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.incomplete, lexErr.Incomplete)
		})
	}
}

func TestErrorChar(t *testing.T) {
	tests := []struct {
		input string
		char  byte
		msg   string
	}{
		{"a @ b", '@', `unexpected character '@'`},
		{"x := 1\x00 y", 0, `unexpected character '\x00'`},
		{"99999999999999999999 + 1", 0, `invalid number "99999999999999999999"`},
		{"1e999", 0, `invalid number "1e999"`},
	}

	for _, tt := range tests {
		_, err := Scan(tt.input)

		var lexErr *Error
		require.ErrorAs(t, err, &lexErr, tt.input)
		assert.Equal(t, tt.char, lexErr.Char, tt.input)
		assert.Equal(t, tt.msg, lexErr.Msg, tt.input)
	}
}

func TestNulInsideString(t *testing.T) {
	got := scan(t, "s := 'a\x00b'")

	assert.Equal(t, "a\x00b", got[2].Value)
	assert.Equal(t, token.TokenType(token.EOF), got[3].Type)
}

func TestNextTokenIsIncremental(t *testing.T) {
	l := New("a+")

	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.Token{Type: token.IDENT, Text: "a", Line: 1}, tok)

	tok, err = l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, token.TokenType(token.PLUS), tok.Type)

	for i := 0; i < 2; i++ {
		tok, err = l.NextToken()
		require.NoError(t, err)
		assert.Equal(t, token.TokenType(token.EOF), tok.Type, "EOF repeats")
	}
}
