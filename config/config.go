package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/titivuk/simple-lang/evaluator"
)

const fileName = ".simplerc.yaml"

type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"` // empty disables history
	LogLevel           string `yaml:"log_level"`
	ShortCircuit       bool   `yaml:"short_circuit"`
	MaxDepth           int    `yaml:"max_depth"`
	Color              bool   `yaml:"color"`
}

func Default() Config {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".simple_history")
	}

	return Config{
		Prompt:             ">> ",
		ContinuationPrompt: ".. ",
		HistoryFile:        history,
		LogLevel:           "warn",
		MaxDepth:           evaluator.DefaultMaxDepth,
		Color:              true,
	}
}

// DefaultPath is ~/.simplerc.yaml, or "" when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fileName)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.MaxDepth < 0 {
		return errors.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// Level is the parsed LogLevel. Call Validate first.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// InterpreterOptions translates the config into evaluator options.
func (c Config) InterpreterOptions() []evaluator.Option {
	return []evaluator.Option{
		evaluator.WithShortCircuit(c.ShortCircuit),
		evaluator.WithMaxDepth(c.MaxDepth),
	}
}
