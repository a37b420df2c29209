package object

import "fmt"

type ErrorKind string

const (
	UndefinedVariable ErrorKind = "undefined variable"
	TypeMismatch      ErrorKind = "type mismatch"
	ArityMismatch     ErrorKind = "wrong number of arguments"
	NotCallable       ErrorKind = "not callable"
	DivisionByZero    ErrorKind = "division by zero"
	RecursionLimit    ErrorKind = "recursion limit exceeded"
)

// Error is a runtime error. It travels through the evaluator as an Object
// and leaves the interpreter as an error.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Error() }

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
