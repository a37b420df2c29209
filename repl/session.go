package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/titivuk/simple-lang/config"
	"github.com/titivuk/simple-lang/evaluator"
	"github.com/titivuk/simple-lang/lexer"
	"github.com/titivuk/simple-lang/object"
	"github.com/titivuk/simple-lang/parser"
)

const helpText = `commands:
  :help    show this help
  :env     list global bindings
  :quit    exit
`

// Session evaluates successive inputs against one interpreter, so
// bindings survive from one input to the next, including after errors.
type Session struct {
	interp *evaluator.Interpreter
	out    io.Writer
	errOut io.Writer
	log    zerolog.Logger

	errColor   *color.Color
	valueColor *color.Color
}

func NewSession(cfg config.Config, log zerolog.Logger, out, errOut io.Writer) *Session {
	opts := append(cfg.InterpreterOptions(),
		evaluator.WithOutput(out),
		evaluator.WithLogger(log),
	)

	s := &Session{
		interp:     evaluator.New(opts...),
		out:        out,
		errOut:     errOut,
		log:        log,
		errColor:   color.New(color.FgRed),
		valueColor: color.New(color.FgHiBlue),
	}
	if !cfg.Color {
		s.errColor.DisableColor()
		s.valueColor.DisableColor()
	}

	return s
}

// Eval runs src. The value of a trailing expression is echoed, errors are
// reported on errOut and returned.
func (s *Session) Eval(src string) error {
	program, err := parser.Parse(src)
	if err != nil {
		s.report(err)
		return err
	}

	value, err := s.interp.Exec(program)
	if err != nil {
		s.report(err)
		return err
	}

	if value != nil && value.Type() != object.NULL_OBJ {
		s.valueColor.Fprintln(s.out, value.Inspect())
	}
	return nil
}

// Command handles a `:` command and reports whether the session should end.
func (s *Session) Command(line string) (quit bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprint(s.out, helpText)
	case ":env":
		env := s.interp.Globals()
		for _, name := range env.Names() {
			value, _ := env.Get(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, value.Inspect())
		}
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", strings.TrimSpace(line))
	}
	return false
}

func (s *Session) report(err error) {
	s.log.Debug().Err(err).Msg("evaluation failed")
	s.errColor.Fprintln(s.errOut, err.Error())
}

// Incomplete reports whether src failed to parse only because it ended
// too early, e.g. inside an open block or string.
func Incomplete(src string) bool {
	_, err := parser.Parse(src)
	if err == nil {
		return false
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Incomplete
	}

	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Incomplete
	}

	return false
}
