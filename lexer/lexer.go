package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/titivuk/simple-lang/token"
)

// Error is returned when the input contains something that cannot be tokenized.
type Error struct {
	Line int
	Char byte // offending character, 0 when the error is about a whole literal
	Msg  string

	// Incomplete is set when more input could have fixed the error,
	// e.g. an unterminated string literal.
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Lexer supports only ASCII
// it allows us to use byte and access ch by index
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current read position in input (after current char)
	ch           byte // current char under examination
	line         int
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

// Scan tokenizes the whole input. The result always ends with a single EOF token.
func Scan(input string) ([]token.Token, error) {
	l := New(input)

	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition += 1
}

// atEnd distinguishes the end of input from a NUL byte in it
func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() (token.Token, error) {
	var tok token.Token

	l.skipWhitespace()

	if l.atEnd() {
		return token.Token{Type: token.EOF, Line: l.line}, nil
	}

	switch l.ch {
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		tok = l.newToken(token.MINUS)
	case '*':
		tok = l.newToken(token.MUL)
	case '/':
		tok = l.newToken(token.DIV)
	case '^':
		tok = l.newToken(token.POW)
	case '#':
		tok = l.newToken(token.CONCAT)
	case '=':
		tok = l.newToken(token.EQUAL)
	case ',':
		tok = l.newToken(token.COMMA)
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case ';':
		tok = l.newToken(token.EOL)
	case '\n':
		tok = l.newToken(token.EOL)
		l.line++
	case '<':
		tok = l.newTwoCharToken('=', token.LE, token.LT)
	case '>':
		tok = l.newTwoCharToken('=', token.GE, token.GT)
	case ':':
		if l.peekChar() != '=' {
			return token.Token{}, l.errorf("unexpected character ':', did you mean ':='?")
		}
		tok = l.newTwoCharToken('=', token.ASSIGN, token.ILLEGAL)
	case '\'':
		return l.readString()
	default:
		if isLetter(l.ch) {
			text := l.readIdentifier()
			tok = token.Token{Type: token.LookupIdent(text), Text: text, Line: l.line}
			switch tok.Type {
			case token.TRUE:
				tok.Value = true
			case token.FALSE:
				tok.Value = false
			}
			return tok, nil
		} else if isDigit(l.ch) {
			return l.readNumber()
		}

		return token.Token{}, l.errorf("unexpected character %q", l.ch)
	}

	l.readChar()

	return tok, nil
}

func (l *Lexer) newToken(t token.TokenType) token.Token {
	return token.Token{Type: t, Text: string(l.ch), Line: l.line}
}

// newTwoCharToken returns two if the next char is next, otherwise one.
// It leaves l.ch on the last char of the token.
func (l *Lexer) newTwoCharToken(next byte, two, one token.TokenType) token.Token {
	if l.peekChar() == next {
		first := l.ch
		l.readChar()
		return token.Token{Type: two, Text: string(first) + string(l.ch), Line: l.line}
	}
	return l.newToken(one)
}

func (l *Lexer) errorf(format string, a ...any) *Error {
	return &Error{Line: l.line, Char: l.ch, Msg: fmt.Sprintf(format, a...)}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position

	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	return l.input[position:l.position]
}

// digits with at most one '.' and an optional exponent
func (l *Lexer) readNumber() (token.Token, error) {
	position := l.position
	isFloat := false

	for isDigit(l.ch) || (l.ch == '.' && !isFloat) {
		if l.ch == '.' {
			isFloat = true
		}
		l.readChar()
	}

	if (l.ch == 'e' || l.ch == 'E') && l.exponentFollows() {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	text := l.input[position:l.position]
	tok := token.Token{Type: token.NUMBER, Text: text, Line: l.line}

	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, &Error{Line: l.line, Msg: fmt.Sprintf("invalid number %q", text)}
		}
		tok.Value = value
		return tok, nil
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, &Error{Line: l.line, Msg: fmt.Sprintf("invalid number %q", text)}
	}
	tok.Value = value
	return tok, nil
}

// exponentFollows reports whether the 'e' in l.ch starts an exponent,
// i.e. is followed by digits with an optional sign
func (l *Lexer) exponentFollows() bool {
	i := l.readPosition
	if i < len(l.input) && (l.input[i] == '+' || l.input[i] == '-') {
		i++
	}
	return i < len(l.input) && isDigit(l.input[i])
}

// readString consumes a quoted literal. l.ch is the opening quote.
func (l *Lexer) readString() (token.Token, error) {
	start := l.position
	line := l.line

	var value strings.Builder
	l.readChar()

	for {
		if l.atEnd() {
			err := &Error{Line: line, Char: '\'', Msg: "unterminated string", Incomplete: true}
			return token.Token{}, err
		}
		if l.ch == '\'' {
			break
		}

		switch l.ch {
		case '\n':
			l.line++
		case '\\':
			l.readChar()
			if l.atEnd() {
				continue
			}
			switch l.ch {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case '\'', '\\':
				value.WriteByte(l.ch)
			default:
				return token.Token{}, l.errorf("unknown escape sequence \\%c", l.ch)
			}
			l.readChar()
			continue
		}

		value.WriteByte(l.ch)
		l.readChar()
	}

	// skip the closing quote
	l.readChar()

	return token.Token{
		Type:  token.STRING,
		Text:  l.input[start:l.position],
		Value: value.String(),
		Line:  line,
	}, nil
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
