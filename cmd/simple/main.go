package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/titivuk/simple-lang/config"
	"github.com/titivuk/simple-lang/parser"
	"github.com/titivuk/simple-lang/repl"
)

const appName = "simple"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  %s [flags] [file | -]\n\nWithout a file, starts a REPL on a terminal or runs stdin otherwise.\n\nFlags:\n", appName)
		fs.PrintDefaults()
	}

	var (
		expr         = fs.String("e", "", "evaluate `source` instead of reading a file")
		dumpAST      = fs.Bool("ast", false, "print the parsed program instead of running it")
		configPath   = fs.String("config", config.DefaultPath(), "configuration `file`")
		logLevel     = fs.String("log-level", "", "override log_level (trace, debug, info, warn, error)")
		shortCircuit = fs.Bool("short-circuit", false, "evaluate and/or lazily")
		noColor      = fs.Bool("no-color", false, "disable coloured output")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = *logLevel
		case "short-circuit":
			cfg.ShortCircuit = *shortCircuit
		case "no-color":
			cfg.Color = !*noColor
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 2
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().Timestamp().Logger()

	var src string
	switch {
	case *expr != "":
		src = *expr
	case fs.NArg() > 0 && fs.Arg(0) != "-":
		src, err = load(fs.Arg(0))
	case fs.NArg() == 0 && isatty.IsTerminal(os.Stdin.Fd()) && !*dumpAST:
		if err := repl.Start(cfg, log, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		return 0
	default:
		src, err = loadReader("stdin", os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	if *dumpAST {
		program, err := parser.Parse(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		fmt.Println(program.String())
		return 0
	}

	log.Debug().Int("bytes", len(src)).Msg("running program")
	return repl.RunScript(src, cfg, log, os.Stdout, os.Stderr)
}

func load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "cannot read program")
	}
	defer f.Close()

	return loadReader(path, f)
}

func loadReader(name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", name)
	}
	return string(data), nil
}
