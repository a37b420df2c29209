package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/titivuk/simple-lang/ast"
	"github.com/titivuk/simple-lang/object"
	"github.com/titivuk/simple-lang/token"
)

// reuse some objects (similar to oddbals in v8 engine)
var (
	NULL  = &object.Null{}
	TRUE  = &object.Boolean{Value: true}
	FALSE = &object.Boolean{Value: false}
)

const DefaultMaxDepth = 2000

// Interpreter walks syntax trees. Top-level code runs in the globals
// environment, which persists across Run/Exec calls.
type Interpreter struct {
	globals *object.Environment
	out     io.Writer
	log     zerolog.Logger

	shortCircuit bool
	maxDepth     int
	depth        int // closure calls currently on the stack
}

type Option func(*Interpreter)

// WithOutput sets where print writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

func WithLogger(log zerolog.Logger) Option {
	return func(in *Interpreter) { in.log = log }
}

// WithShortCircuit makes `and`/`or` skip the right operand when the left decides the result.
// By default both operands are always evaluated.
func WithShortCircuit(enabled bool) Option {
	return func(in *Interpreter) { in.shortCircuit = enabled }
}

// WithMaxDepth limits nested closure calls. n <= 0 keeps the default.
func WithMaxDepth(n int) Option {
	return func(in *Interpreter) {
		if n > 0 {
			in.maxDepth = n
		}
	}
}

func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		out:      os.Stdout,
		log:      zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(in)
	}

	in.globals = object.NewEnvironment()
	for _, b := range builtins(in.out) {
		in.globals.Define(b.Name, b)
	}

	return in
}

func (in *Interpreter) Globals() *object.Environment {
	return in.globals
}

// Run executes program in the globals environment.
func (in *Interpreter) Run(program *ast.Program) error {
	_, err := in.Exec(program)
	return err
}

// Exec executes program in the globals environment and returns the value
// of its last statement, NULL when that statement produces nothing.
func (in *Interpreter) Exec(program *ast.Program) (object.Object, error) {
	result := in.evalProgram(program.Statements, in.globals)
	if err, ok := result.(*object.Error); ok {
		return nil, err
	}

	return result, nil
}

func (in *Interpreter) Eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {
	// statements
	case *ast.Program:
		return in.evalBlock(node, env)
	case *ast.ExpressionStatement:
		return in.Eval(node.Expression, env)
	case *ast.Assign:
		value := in.Eval(node.Value, env)
		if isError(value) {
			return value
		}

		env.Assign(node.Name.Value, value)
		return NULL
	case *ast.FunDecl:
		// the closure captures env itself, so the function can see its own binding
		closure := &object.Closure{
			Name:       node.Name.Value,
			Parameters: node.Parameters,
			Body:       node.Body,
			Env:        env,
		}
		env.Define(node.Name.Value, closure)
		return NULL
	case *ast.Ret:
		return in.evalRet(node, env)
	case *ast.If:
		return in.evalIf(node, env)
	case *ast.While:
		return in.evalWhile(node, env)

	// expressions
	case *ast.Literal:
		return literalObject(node)
	case *ast.Identifier:
		return in.evalIdentifier(node, env)
	case *ast.Grouping:
		return in.Eval(node.Expression, env)
	case *ast.Unary:
		right := in.Eval(node.Right, env)
		if isError(right) {
			return right
		}

		return evalUnary(node.Token, right)
	case *ast.LogicalUnary:
		right := in.Eval(node.Right, env)
		if isError(right) {
			return right
		}

		return evalLogicalUnary(node.Token, right)
	case *ast.Binary:
		left, right := in.evalOperands(node.Left, node.Right, env)
		if isError(left) {
			return left
		}

		return evalBinary(node.Token, left, right)
	case *ast.LogicalBinary:
		return in.evalLogicalBinary(node, env)
	case *ast.Comparison:
		left, right := in.evalOperands(node.Left, node.Right, env)
		if isError(left) {
			return left
		}

		return evalComparison(node.Token, left, right)
	case *ast.StringConcat:
		left, right := in.evalOperands(node.Left, node.Right, env)
		if isError(left) {
			return left
		}

		return &object.String{Value: left.Inspect() + right.Inspect()}
	case *ast.Call:
		return in.evalCall(node, env)
	default:
		return newError(token.Token{}, object.TypeMismatch, "cannot evaluate %T", node)
	}
}

// evalOperands evaluates left then right. If either fails the error is
// returned as left.
func (in *Interpreter) evalOperands(l, r ast.Expression, env *object.Environment) (object.Object, object.Object) {
	left := in.Eval(l, env)
	if isError(left) {
		return left, nil
	}

	right := in.Eval(r, env)
	if isError(right) {
		return right, nil
	}

	return left, right
}

// evalProgram runs top-level statements. A `ret` here stops the program.
func (in *Interpreter) evalProgram(statements []ast.Statement, env *object.Environment) object.Object {
	var result object.Object = NULL

	for _, st := range statements {
		if e := in.log.Debug(); e.Enabled() {
			e.Int("line", lineOf(st)).Str("stmt", fmt.Sprintf("%T", st)).Msg("exec")
		}

		result = in.Eval(st, env)

		switch r := result.(type) {
		// if we encounter return statements or errors
		// all statements after are unreachable
		// so we stop evaluation
		// and return Value of return statement or error
		case *object.ReturnValue:
			return r.Value
		case *object.Error:
			return r
		}
	}

	return result
}

// evalBlock runs a block body. A ReturnValue or Error is passed up
// unwrapped so it stops execution in every enclosing block until the
// call boundary; otherwise a block produces nothing.
func (in *Interpreter) evalBlock(block *ast.Program, env *object.Environment) object.Object {
	for _, st := range block.Statements {
		result := in.Eval(st, env)

		if result != nil {
			rt := result.Type()
			if rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
				return result
			}
		}
	}

	return NULL
}

func (in *Interpreter) evalRet(rs *ast.Ret, env *object.Environment) object.Object {
	if rs.ReturnValue == nil {
		return &object.ReturnValue{Value: NULL}
	}

	value := in.Eval(rs.ReturnValue, env)
	if isError(value) {
		return value
	}

	return &object.ReturnValue{Value: value}
}

// each branch gets its own scope, so names it introduces do not leak
func (in *Interpreter) evalIf(ie *ast.If, env *object.Environment) object.Object {
	condition := in.Eval(ie.Condition, env)
	if isError(condition) {
		return condition
	}

	branch := ie.Alternative
	if isTruthy(condition) {
		branch = ie.Consequence
	}
	if branch == nil {
		return NULL
	}

	return in.evalBlock(branch, object.NewEnclosedEnvironment(env))
}

// every iteration gets a fresh scope
func (in *Interpreter) evalWhile(ws *ast.While, env *object.Environment) object.Object {
	for {
		condition := in.Eval(ws.Condition, env)
		if isError(condition) {
			return condition
		}
		if !isTruthy(condition) {
			return NULL
		}

		result := in.evalBlock(ws.Body, object.NewEnclosedEnvironment(env))
		if rt := result.Type(); rt == object.RETURN_VALUE_OBJ || rt == object.ERROR_OBJ {
			return result
		}
	}
}

func (in *Interpreter) evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}

	return newError(node.Token, object.UndefinedVariable, "%s", node.Value)
}

func (in *Interpreter) evalLogicalBinary(node *ast.LogicalBinary, env *object.Environment) object.Object {
	left := in.Eval(node.Left, env)
	if isError(left) {
		return left
	}

	if in.shortCircuit {
		if l, ok := left.(*object.Boolean); ok {
			if node.Operator == token.AND && !l.Value {
				return FALSE
			}
			if node.Operator == token.OR && l.Value {
				return TRUE
			}
		}
	}

	right := in.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	return evalLogicalBinary(node.Token, left, right)
}

func (in *Interpreter) evalCall(node *ast.Call, env *object.Environment) object.Object {
	function := in.Eval(node.Function, env)
	if isError(function) {
		return function
	}

	// arguments are evaluated eagerly, left to right, in the caller's environment
	args := make([]object.Object, 0, len(node.Arguments))
	for _, a := range node.Arguments {
		evaluated := in.Eval(a, env)
		if isError(evaluated) {
			return evaluated
		}
		args = append(args, evaluated)
	}

	return in.applyFunction(node.Token, function, args)
}

func (in *Interpreter) applyFunction(call token.Token, fn object.Object, args []object.Object) object.Object {
	switch fn := fn.(type) {
	case *object.Closure:
		if len(args) != len(fn.Parameters) {
			return newError(call, object.ArityMismatch, "%s takes %d, got %d",
				fn.Name, len(fn.Parameters), len(args))
		}
		if in.depth >= in.maxDepth {
			return newError(call, object.RecursionLimit, "more than %d nested calls (in %s)", in.maxDepth, fn.Name)
		}

		in.depth++
		defer func() { in.depth-- }()

		in.log.Trace().Str("fn", fn.Name).Int("depth", in.depth).Int("line", call.Line).Msg("call")

		// parented on the captured environment, not the caller's: scoping is lexical
		callEnv := object.NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Parameters {
			callEnv.Define(param.Value, args[i])
		}

		return unwrapReturnValue(in.evalBlock(fn.Body, callEnv))
	case *object.Builtin:
		if fn.Arity >= 0 && len(args) != fn.Arity {
			return newError(call, object.ArityMismatch, "%s takes %d, got %d",
				fn.Name, fn.Arity, len(args))
		}

		result := fn.Fn(args...)
		if err, ok := result.(*object.Error); ok && err.Line == 0 {
			err.Line = call.Line
		}
		return result
	default:
		return newError(call, object.NotCallable, "%s is not a function", fn.Type())
	}
}

func unwrapReturnValue(obj object.Object) object.Object {
	switch obj := obj.(type) {
	case *object.ReturnValue:
		return obj.Value
	case *object.Error:
		return obj
	}

	// fell off the end of the body
	return NULL
}

func literalObject(node *ast.Literal) object.Object {
	switch v := node.Value.(type) {
	case int64:
		return &object.Integer{Value: v}
	case float64:
		return &object.Float{Value: v}
	case string:
		return &object.String{Value: v}
	case bool:
		return nativeBoolToBooleanObject(v)
	default:
		return newError(node.Token, object.TypeMismatch, "unsupported literal %v", node.Value)
	}
}

func nativeBoolToBooleanObject(input bool) *object.Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// false, none, zero and the empty string are falsy
func isTruthy(obj object.Object) bool {
	switch obj := obj.(type) {
	case *object.Boolean:
		return obj.Value
	case *object.Null:
		return false
	case *object.Integer:
		return obj.Value != 0
	case *object.Float:
		return obj.Value != 0
	case *object.String:
		return obj.Value != ""
	default:
		return true
	}
}

func newError(tok token.Token, kind object.ErrorKind, format string, a ...interface{}) *object.Error {
	return &object.Error{Kind: kind, Message: fmt.Sprintf(format, a...), Line: tok.Line}
}

func isError(obj object.Object) bool {
	if obj != nil {
		return obj.Type() == object.ERROR_OBJ
	}
	return false
}

func lineOf(st ast.Statement) int {
	switch st := st.(type) {
	case *ast.Assign:
		return st.Token.Line
	case *ast.ExpressionStatement:
		return st.Token.Line
	case *ast.Ret:
		return st.Token.Line
	case *ast.If:
		return st.Token.Line
	case *ast.While:
		return st.Token.Line
	case *ast.FunDecl:
		return st.Token.Line
	}
	return 0
}
