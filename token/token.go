package token

import "fmt"

const (
	ILLEGAL = "ILLEGAL" // ILLEGAL signifies a token/character we don’t know about
	EOF     = "EOF"     // EOF stands for "end of file", which tells our parser later on that it can stop
	EOL     = "EOL"     // newline or ';', separates statements

	// identifiers + literals
	IDENT  = "IDENT"  // add, x, foo, ...
	NUMBER = "NUMBER" // 12345, 3.14
	STRING = "STRING" // 'hello'

	// operators
	ASSIGN = ":="
	PLUS   = "+"
	MINUS  = "-"
	MUL    = "*"
	DIV    = "/"
	POW    = "^"
	CONCAT = "#"

	LT    = "<"
	LE    = "<="
	GT    = ">"
	GE    = ">="
	EQUAL = "="

	// Delimeters
	COMMA = ","

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"

	// Keywords
	FUN   = "FUN"
	RET   = "RET"
	IF    = "IF"
	ELSE  = "ELSE"
	WHILE = "WHILE"
	TRUE  = "TRUE"
	FALSE = "FALSE"
	AND   = "AND"
	OR    = "OR"
	NOT   = "NOT"
)

var keywords = map[string]TokenType{
	"fun":   FUN,
	"ret":   RET,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"true":  TRUE,
	"false": FALSE,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
}

type TokenType string

// Token is comparable, so == is structural equality.
type Token struct {
	Type  TokenType
	Text  string // raw source text
	Value any    // parsed literal: int64, float64, string or bool
	Line  int
}

func (t Token) String() string {
	if t.Value != nil {
		return fmt.Sprintf("%s(%v)", t.Type, t.Value)
	}
	return string(t.Type)
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}

	return IDENT

}

