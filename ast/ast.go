package ast

import (
	"strings"

	"github.com/titivuk/simple-lang/token"
)

type Node interface {
	TokenLiteral() string
	// String renders the node back as source text
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of AST and the body of every {...} block
type Program struct {
	Token      token.Token // the first token of the program, or '{' for a block
	Statements []Statement
}

func (p *Program) statementNode() {}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}

	return ""
}

func (p *Program) String() string {
	lines := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// block renders p as a brace-delimited body
func (p *Program) block() string {
	if len(p.Statements) == 0 {
		return "{}"
	}

	var out strings.Builder
	out.WriteString("{\n")
	for _, s := range p.Statements {
		for _, line := range strings.Split(s.String(), "\n") {
			out.WriteString("\t")
			out.WriteString(line)
			out.WriteString("\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

// Assign is `name := value`
type Assign struct {
	Token token.Token // the token.ASSIGN token
	Name  *Identifier // hold the identifier of the binding
	Value Expression  // expression that produces the value
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Text }
func (a *Assign) String() string {
	return a.Name.String() + " := " + a.Value.String()
}

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Text }
func (es *ExpressionStatement) String() string       { return es.Expression.String() }

type Ret struct {
	Token       token.Token // the token.RET token
	ReturnValue Expression  // nil for a bare `ret`
}

func (rs *Ret) statementNode()       {}
func (rs *Ret) TokenLiteral() string { return rs.Token.Text }
func (rs *Ret) String() string {
	if rs.ReturnValue == nil {
		return "ret"
	}
	return "ret " + rs.ReturnValue.String()
}

type If struct {
	Token       token.Token // the token.IF token
	Condition   Expression
	Consequence *Program
	Alternative *Program // empty when there is no else
}

func (ie *If) statementNode()       {}
func (ie *If) TokenLiteral() string { return ie.Token.Text }
func (ie *If) String() string {
	var out strings.Builder
	out.WriteString("if ")
	out.WriteString(ie.Condition.String())
	out.WriteString(" ")
	out.WriteString(ie.Consequence.block())

	if alt := ie.Alternative; alt != nil && len(alt.Statements) > 0 {
		out.WriteString(" else ")
		if nested, ok := alt.Statements[0].(*If); ok && len(alt.Statements) == 1 {
			out.WriteString(nested.String())
		} else {
			out.WriteString(alt.block())
		}
	}

	return out.String()
}

type While struct {
	Token     token.Token // the token.WHILE token
	Condition Expression
	Body      *Program
}

func (ws *While) statementNode()       {}
func (ws *While) TokenLiteral() string { return ws.Token.Text }
func (ws *While) String() string {
	return "while " + ws.Condition.String() + " " + ws.Body.block()
}

type FunDecl struct {
	Token      token.Token // the token.FUN token
	Name       *Identifier
	Parameters []*Identifier
	Body       *Program
}

func (fd *FunDecl) statementNode()       {}
func (fd *FunDecl) TokenLiteral() string { return fd.Token.Text }
func (fd *FunDecl) String() string {
	params := make([]string, len(fd.Parameters))
	for i, p := range fd.Parameters {
		params[i] = p.String()
	}
	return "fun " + fd.Name.String() + "(" + strings.Join(params, ", ") + ") " + fd.Body.block()
}
