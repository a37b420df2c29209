package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/titivuk/simple-lang/config"
)

const banner = "simple-lang REPL. Ctrl+C cancels input, Ctrl+D exits, :help lists commands."

// Start runs an interactive loop on the terminal until :quit or Ctrl+D.
func Start(cfg config.Config, log zerolog.Logger, out, errOut io.Writer) error {
	fmt.Fprintln(out, banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, cfg.HistoryFile, log)
	}

	session := NewSession(cfg, log, out, errOut)

	for {
		src, ok := readInput(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if session.Command(trimmed) {
				return nil
			}
			continue
		}

		// errors are already reported, the session keeps its state
		_ = session.Eval(src)
	}
}

// readInput reads lines until they form something that parses, or fails
// for a reason other than running out of input. ok is false at EOF.
func readInput(ln *liner.State, prompt, cont string) (src string, ok bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}

		line, err := ln.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C drops what was typed so far
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src = b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !Incomplete(src) {
			return src, true
		}
	}
}

func saveHistory(ln *liner.State, path string, log zerolog.Logger) {
	f, err := os.Create(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cannot save history")
		return
	}
	defer f.Close()

	if _, err := ln.WriteHistory(f); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cannot save history")
	}
}
