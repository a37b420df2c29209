package object

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/titivuk/simple-lang/ast"
)

type ObjectType string

const (
	INTEGER_OBJ      = "INTEGER"
	FLOAT_OBJ        = "FLOAT"
	BOOLEAN_OBJ      = "BOOLEAN"
	STRING_OBJ       = "STRING"
	NULL_OBJ         = "NONE"
	CLOSURE_OBJ      = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	ERROR_OBJ        = "ERROR"
)

type Object interface {
	Type() ObjectType
	// Inspect is the display form used by print and string concatenation
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return ast.FormatFloat(f.Value) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Null is "no value", the result of statements and of calls that do not ret
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "none" }

// ReturnValue wraps the value of a `ret` while it unwinds to the call boundary
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

// Closure is a function value: its code plus the environment it was declared in.
type Closure struct {
	Name       string
	Parameters []*ast.Identifier
	Body       *ast.Program
	Env        *Environment
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string {
	params := make([]string, len(c.Parameters))
	for i, p := range c.Parameters {
		params[i] = p.Value
	}
	return fmt.Sprintf("<fun %s(%s)>", c.Name, strings.Join(params, ", "))
}

type BuiltinFunction func(args ...Object) Object

// Builtin is a function implemented in Go. Arity < 0 accepts any number of arguments.
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<builtin " + b.Name + ">" }
