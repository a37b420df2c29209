package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	for word, typ := range keywords {
		assert.Equal(t, typ, LookupIdent(word))
	}

	assert.Equal(t, TokenType(IDENT), LookupIdent("fun_"))
	assert.Equal(t, TokenType(IDENT), LookupIdent("If"), "keywords are case sensitive")
	assert.Equal(t, TokenType(IDENT), LookupIdent("none"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "NUMBER(42)", Token{Type: NUMBER, Text: "42", Value: int64(42)}.String())
	assert.Equal(t, "STRING(hi)", Token{Type: STRING, Text: "'hi'", Value: "hi"}.String())
	assert.Equal(t, "+", Token{Type: PLUS, Text: "+"}.String())
}

func TestTokensCompareByValue(t *testing.T) {
	a := Token{Type: NUMBER, Text: "1.5", Value: 1.5, Line: 3}
	b := Token{Type: NUMBER, Text: "1.5", Value: 1.5, Line: 3}
	assert.True(t, a == b)

	b.Line = 4
	assert.False(t, a == b)
}
