package ast

import "reflect"

// Equal reports whether a and b are the same tree. Tokens are ignored,
// so the same code parsed from different positions compares equal.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}

	switch a := a.(type) {
	case *Program:
		b, ok := b.(*Program)
		if !ok || len(a.Statements) != len(b.Statements) {
			return false
		}
		for i := range a.Statements {
			if !Equal(a.Statements[i], b.Statements[i]) {
				return false
			}
		}
		return true
	case *Assign:
		b, ok := b.(*Assign)
		return ok && Equal(a.Name, b.Name) && Equal(a.Value, b.Value)
	case *ExpressionStatement:
		b, ok := b.(*ExpressionStatement)
		return ok && Equal(a.Expression, b.Expression)
	case *Ret:
		b, ok := b.(*Ret)
		return ok && Equal(a.ReturnValue, b.ReturnValue)
	case *If:
		b, ok := b.(*If)
		return ok && Equal(a.Condition, b.Condition) &&
			Equal(a.Consequence, b.Consequence) && Equal(a.Alternative, b.Alternative)
	case *While:
		b, ok := b.(*While)
		return ok && Equal(a.Condition, b.Condition) && Equal(a.Body, b.Body)
	case *FunDecl:
		b, ok := b.(*FunDecl)
		return ok && Equal(a.Name, b.Name) &&
			EqualIdentifiers(a.Parameters, b.Parameters) && Equal(a.Body, b.Body)
	case *Literal:
		b, ok := b.(*Literal)
		return ok && a.Value == b.Value
	case *Identifier:
		b, ok := b.(*Identifier)
		return ok && a.Value == b.Value
	case *Grouping:
		b, ok := b.(*Grouping)
		return ok && Equal(a.Expression, b.Expression)
	case *Unary:
		b, ok := b.(*Unary)
		return ok && a.Operator == b.Operator && Equal(a.Right, b.Right)
	case *LogicalUnary:
		b, ok := b.(*LogicalUnary)
		return ok && a.Operator == b.Operator && Equal(a.Right, b.Right)
	case *Binary:
		b, ok := b.(*Binary)
		return ok && a.Operator == b.Operator && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *LogicalBinary:
		b, ok := b.(*LogicalBinary)
		return ok && a.Operator == b.Operator && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Comparison:
		b, ok := b.(*Comparison)
		return ok && a.Operator == b.Operator && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *StringConcat:
		b, ok := b.(*StringConcat)
		return ok && a.Operator == b.Operator && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Call:
		b, ok := b.(*Call)
		if !ok || len(a.Arguments) != len(b.Arguments) || !Equal(a.Function, b.Function) {
			return false
		}
		for i := range a.Arguments {
			if !Equal(a.Arguments[i], b.Arguments[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func EqualIdentifiers(a, b []*Identifier) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// isNil catches typed nils such as a (*Program)(nil) stored in a Node
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
