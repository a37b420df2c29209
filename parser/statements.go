package parser

import (
	"github.com/titivuk/simple-lang/ast"
	"github.com/titivuk/simple-lang/token"
)

// parseStatements collects statements until the input is exhausted or
// currToken cannot start a statement (typically the '}' closing a block).
// currToken is left on that token.
func (p *Parser) parseStatements() *ast.Program {
	program := &ast.Program{Token: p.currToken}
	program.Statements = []ast.Statement{}

	for {
		// blank lines between statements
		p.skipEOL()

		if p.currTokenIs(token.EOF) || !p.canStartStatement() {
			return program
		}

		stmt := p.parseStatement()
		program.Statements = append(program.Statements, stmt)

		// a statement ends at a newline, a closing brace or the end of input
		p.nextToken()
		if !p.currTokenIs(token.EOL) && !p.currTokenIs(token.RBRACE) && !p.currTokenIs(token.EOF) {
			p.fail(p.currToken, "expected end of statement, got %s", describe(p.currToken))
		}
	}
}

func (p *Parser) canStartStatement() bool {
	switch p.currToken.Type {
	case token.FUN, token.RET, token.IF, token.WHILE:
		return true
	}

	_, ok := p.prefixParseFns[p.currToken.Type]
	return ok
}

// parseStatement leaves currToken on the last token of the statement
func (p *Parser) parseStatement() ast.Statement {
	switch p.currToken.Type {
	case token.IDENT:
		if p.peekTokenIs(token.ASSIGN) {
			return p.parseAssign()
		}
		return p.parseExpressionStatement()
	case token.FUN:
		return p.parseFunDecl()
	case token.RET:
		return p.parseRet()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseAssign() ast.Statement {
	name := &ast.Identifier{Token: p.currToken, Value: p.currToken.Text}

	p.nextToken()
	stmt := &ast.Assign{Token: p.currToken, Name: name}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	return stmt
}

func (p *Parser) parseRet() ast.Statement {
	stmt := &ast.Ret{Token: p.currToken}

	// bare `ret` returns no value
	if p.peekTokenIs(token.EOL) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}

	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)

	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.currToken}

	stmt.Expression = p.parseExpression(LOWEST)

	return stmt
}

func (p *Parser) parseIf() *ast.If {
	stmt := &ast.If{Token: p.currToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	p.expectPeek(token.LBRACE)
	stmt.Consequence = p.parseBlock()

	if !p.peekElse() {
		stmt.Alternative = &ast.Program{Token: p.currToken, Statements: []ast.Statement{}}
		return stmt
	}

	// currToken is ELSE
	if p.peekTokenIs(token.IF) {
		p.nextToken()
		alt := &ast.Program{Token: p.currToken}
		alt.Statements = []ast.Statement{p.parseIf()}
		stmt.Alternative = alt
		return stmt
	}

	p.expectPeek(token.LBRACE)
	stmt.Alternative = p.parseBlock()

	return stmt
}

// peekElse advances onto an `else` that follows the current '}',
// possibly on a later line. Without an else nothing is consumed.
func (p *Parser) peekElse() bool {
	i := p.pos - 1 // index of peekToken
	for p.tokenAt(i).Type == token.EOL {
		i++
	}
	if p.tokenAt(i).Type != token.ELSE {
		return false
	}

	for !p.currTokenIs(token.ELSE) {
		p.nextToken()
	}
	return true
}

func (p *Parser) parseWhile() ast.Statement {
	stmt := &ast.While{Token: p.currToken}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)

	p.expectPeek(token.LBRACE)
	stmt.Body = p.parseBlock()

	return stmt
}

func (p *Parser) parseFunDecl() ast.Statement {
	stmt := &ast.FunDecl{Token: p.currToken}

	p.expectPeek(token.IDENT)
	stmt.Name = &ast.Identifier{Token: p.currToken, Value: p.currToken.Text}

	p.expectPeek(token.LPAREN)
	stmt.Parameters = p.parseFunctionParameters()

	p.expectPeek(token.LBRACE)
	stmt.Body = p.parseBlock()

	return stmt
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	parameters := []*ast.Identifier{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return parameters
	}

	seen := map[string]bool{}
	for {
		p.expectPeek(token.IDENT)
		ident := &ast.Identifier{Token: p.currToken, Value: p.currToken.Text}
		if seen[ident.Value] {
			p.fail(p.currToken, "duplicate parameter %s", ident.Value)
		}
		seen[ident.Value] = true
		parameters = append(parameters, ident)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	p.expectPeek(token.RPAREN)

	return parameters
}

// parseBlock parses `{ statements }` with currToken on '{'
// and leaves currToken on the matching '}'.
func (p *Parser) parseBlock() *ast.Program {
	open := p.currToken

	p.nextToken()
	block := p.parseStatements()
	block.Token = open

	if !p.currTokenIs(token.RBRACE) {
		p.fail(p.currToken, "expected } to close block opened on line %d, got %s", open.Line, describe(p.currToken))
	}

	return block
}
