package parser

import (
	"fmt"

	"github.com/titivuk/simple-lang/ast"
	"github.com/titivuk/simple-lang/lexer"
	"github.com/titivuk/simple-lang/token"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression // param is left side of infix operator
)

const (
	_ int = iota // use iota to give the following constants incrementing numbers as values
	LOWEST
	OR          // or
	CONCAT      // #
	AND         // and
	EQUALS      // =
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	POWER       // ^
	PREFIX      // -X or not X
	CALL        // myFunction(X)
)

var precedences = map[token.TokenType]int{
	token.OR:     OR,
	token.CONCAT: CONCAT,
	token.AND:    AND,
	token.EQUAL:  EQUALS,
	token.LT:     LESSGREATER,
	token.LE:     LESSGREATER,
	token.GT:     LESSGREATER,
	token.GE:     LESSGREATER,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.MUL:    PRODUCT,
	token.DIV:    PRODUCT,
	token.POW:    POWER,
	token.LPAREN: CALL,
}

// operators missing here are left-associative
var rightAssociative = map[token.TokenType]bool{
	token.POW: true,
}

// Error is a parse failure. Parsing stops at the first one.
type Error struct {
	Line  int
	Token token.Token
	Msg   string

	// Incomplete is set when the input ended before the construct did,
	// so appending more source may make it parse.
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// bailout unwinds the parser to ParseProgram/ParseExpression on the first error
type bailout struct{ err *Error }

type Parser struct {
	tokens []token.Token
	pos    int // index of peekToken in tokens

	currToken token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New returns a parser over tokens. A missing trailing EOF is tolerated.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefixFn(token.IDENT, p.parseIdentifier)
	p.registerPrefixFn(token.NUMBER, p.parseLiteral)
	p.registerPrefixFn(token.STRING, p.parseLiteral)
	p.registerPrefixFn(token.TRUE, p.parseLiteral)
	p.registerPrefixFn(token.FALSE, p.parseLiteral)
	p.registerPrefixFn(token.PLUS, p.parseUnary)
	p.registerPrefixFn(token.MINUS, p.parseUnary)
	p.registerPrefixFn(token.NOT, p.parseLogicalUnary)
	p.registerPrefixFn(token.LPAREN, p.parseGrouping)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfixFn(token.PLUS, p.parseBinary)
	p.registerInfixFn(token.MINUS, p.parseBinary)
	p.registerInfixFn(token.MUL, p.parseBinary)
	p.registerInfixFn(token.DIV, p.parseBinary)
	p.registerInfixFn(token.POW, p.parseBinary)
	p.registerInfixFn(token.AND, p.parseLogicalBinary)
	p.registerInfixFn(token.OR, p.parseLogicalBinary)
	p.registerInfixFn(token.EQUAL, p.parseComparison)
	p.registerInfixFn(token.LT, p.parseComparison)
	p.registerInfixFn(token.LE, p.parseComparison)
	p.registerInfixFn(token.GT, p.parseComparison)
	p.registerInfixFn(token.GE, p.parseComparison)
	p.registerInfixFn(token.CONCAT, p.parseStringConcat)
	p.registerInfixFn(token.LPAREN, p.parseCall)

	// Read two tokens, so currToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse scans and parses a whole source text.
func Parse(src string) (*ast.Program, error) {
	tokens, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}

	return New(tokens).ParseProgram()
}

// ParseExpression parses a single expression that binds tighter than minPrecedence.
// Anything other than end of line or end of input after it is an error.
func ParseExpression(tokens []token.Token, minPrecedence int) (expr ast.Expression, err error) {
	p := New(tokens)
	defer p.recover(&err)

	p.skipEOL()
	expr = p.parseExpression(minPrecedence)
	p.nextToken()
	p.skipEOL()
	if !p.currTokenIs(token.EOF) {
		p.fail(p.currToken, "unexpected %s after expression", describe(p.currToken))
	}

	return expr, nil
}

func (p *Parser) ParseProgram() (program *ast.Program, err error) {
	defer p.recover(&err)

	program = p.parseStatements()

	// parseStatements stops at anything that cannot start a statement
	if !p.currTokenIs(token.EOF) {
		p.fail(p.currToken, "unexpected %s", describe(p.currToken))
	}

	return program, nil
}

func (p *Parser) recover(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

func (p *Parser) fail(tok token.Token, format string, a ...any) {
	panic(bailout{&Error{
		Line:       tok.Line,
		Token:      tok,
		Msg:        fmt.Sprintf(format, a...),
		Incomplete: tok.Type == token.EOF,
	}})
}

func (p *Parser) peekError(t token.TokenType) {
	p.fail(p.peekToken, "expected next token to be %s, got %s instead", t, describe(p.peekToken))
}

func (p *Parser) registerPrefixFn(tokenTpye token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenTpye] = fn
}

func (p *Parser) registerInfixFn(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.currToken = p.peekToken
	p.peekToken = p.tokenAt(p.pos)
	p.pos++
}

// tokenAt never runs off the end, past the input it keeps yielding EOF
func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}

	line := 1
	if n := len(p.tokens); n > 0 {
		line = p.tokens[n-1].Line
	}
	return token.Token{Type: token.EOF, Line: line}
}

func (p *Parser) skipEOL() {
	for p.currTokenIs(token.EOL) {
		p.nextToken()
	}
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.currToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.currToken)
	}

	expression := prefix()

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		// if there is no infix parser => it's prefix expression => return immediately
		if infix == nil {
			return expression
		}

		p.nextToken()

		// since we've checked that infix exist
		// so currToken is infix operator and expression is left expression
		// and we call infix parse function
		expression = infix(expression)
	}

	return expression
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.fail(tok, "unexpected %s, expected an expression", describe(tok))
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.currToken, Value: p.currToken.Text}
}

// the lexer already converted the text into a value
func (p *Parser) parseLiteral() ast.Expression {
	return &ast.Literal{Token: p.currToken, Value: p.currToken.Value}
}

func (p *Parser) parseUnary() ast.Expression {
	expression := &ast.Unary{Token: p.currToken, Operator: p.currToken.Type}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)

	return expression
}

func (p *Parser) parseLogicalUnary() ast.Expression {
	expression := &ast.LogicalUnary{Token: p.currToken, Operator: p.currToken.Type}

	p.nextToken()

	expression.Right = p.parseExpression(PREFIX)

	return expression
}

// parseOperand parses the right side of the infix operator in currToken.
// Right-associative operators recurse one level lower so an equal operator
// on the right is absorbed into the operand: 2^3^2 is 2^(3^2).
func (p *Parser) parseOperand() ast.Expression {
	precedence := p.currPrecedence() // curr is infix operator
	if rightAssociative[p.currToken.Type] {
		precedence--
	}

	p.nextToken()
	return p.parseExpression(precedence)
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	expression := &ast.Binary{Token: p.currToken, Operator: p.currToken.Type, Left: left}
	expression.Right = p.parseOperand()
	return expression
}

func (p *Parser) parseLogicalBinary(left ast.Expression) ast.Expression {
	expression := &ast.LogicalBinary{Token: p.currToken, Operator: p.currToken.Type, Left: left}
	expression.Right = p.parseOperand()
	return expression
}

func (p *Parser) parseComparison(left ast.Expression) ast.Expression {
	expression := &ast.Comparison{Token: p.currToken, Operator: p.currToken.Type, Left: left}
	expression.Right = p.parseOperand()
	return expression
}

func (p *Parser) parseStringConcat(left ast.Expression) ast.Expression {
	expression := &ast.StringConcat{Token: p.currToken, Operator: p.currToken.Type, Left: left}
	expression.Right = p.parseOperand()
	return expression
}

func (p *Parser) parseGrouping() ast.Expression {
	grouping := &ast.Grouping{Token: p.currToken}

	p.nextToken()

	grouping.Expression = p.parseExpression(LOWEST)

	// p.parseExpression call above is going to stop when peekToken = RPAREN
	// because p.peekPrecedence returns LOWEST for RPAREN, so for loop stops inside the parseExpression fn
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	return grouping
}

func (p *Parser) parseCall(function ast.Expression) ast.Expression {
	expression := &ast.Call{Token: p.currToken, Function: function}
	expression.Arguments = p.parseExpressionList(token.RPAREN)

	return expression
}

func (p *Parser) parseExpressionList(endToken token.TokenType) []ast.Expression {
	expressions := []ast.Expression{}

	if p.peekTokenIs(endToken) {
		p.nextToken()
		return expressions
	}

	// cur token points to the start of the first element after this call
	p.nextToken()

	// parse first element of the list
	expressions = append(expressions, p.parseExpression(LOWEST))

	// loop ends when curToken points to end pos of the last element in the list
	for p.peekTokenIs(token.COMMA) {
		// advance pos twice because p.parseExpression called above leaves p.currToken on last pos related to the expression
		p.nextToken() // sets curToken to ','
		p.nextToken() // sets curToken to first char of the next element

		expressions = append(expressions, p.parseExpression(LOWEST))
	}

	// since currToken points to the last pos of the last element in the list
	// next token must be endToken
	p.expectPeek(endToken)

	return expressions
}

func (p *Parser) currTokenIs(t token.TokenType) bool {
	return p.currToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// checks the type of the peekToken and only if the type is correct does it advance the tokens by calling nextToken
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}

	p.peekError(t)
	return false
}

// returns the precedence associated with the token type of p.peekToken
func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}

	return LOWEST
}

// returns the precedence associated with the token type of p.currToken
func (p *Parser) currPrecedence() int {
	if p, ok := precedences[p.currToken.Type]; ok {
		return p
	}

	return LOWEST
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.EOL:
		return "end of line"
	}

	if tok.Text != "" {
		return fmt.Sprintf("%q", tok.Text)
	}
	return string(tok.Type)
}
