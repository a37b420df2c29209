package evaluator

import (
	"fmt"
	"io"

	"github.com/titivuk/simple-lang/object"
)

// builtins are bound in every new globals environment. They are ordinary
// values, so user code can shadow them or pass them around.
func builtins(out io.Writer) []*object.Builtin {
	return []*object.Builtin{
		{
			Name:  "print",
			Arity: 1,
			Fn: func(args ...object.Object) object.Object {
				fmt.Fprintln(out, args[0].Inspect())
				return NULL
			},
		},
	}
}
