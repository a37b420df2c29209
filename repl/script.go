package repl

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/titivuk/simple-lang/config"
	"github.com/titivuk/simple-lang/parser"
)

// RunScript parses and runs a whole program and returns a process exit code:
// 0 on success, 1 on a lex, parse or runtime error. Unlike Session.Eval
// nothing is echoed; output comes only from print.
func RunScript(src string, cfg config.Config, log zerolog.Logger, out, errOut io.Writer) int {
	s := NewSession(cfg, log, out, errOut)

	program, err := parser.Parse(src)
	if err != nil {
		s.report(err)
		return 1
	}

	if err := s.interp.Run(program); err != nil {
		s.report(err)
		return 1
	}

	return 0
}
