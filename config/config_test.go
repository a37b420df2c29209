package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/titivuk/simple-lang/evaluator"
	"github.com/titivuk/simple-lang/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ">> ", cfg.Prompt)
	assert.Equal(t, ".. ", cfg.ContinuationPrompt)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, evaluator.DefaultMaxDepth, cfg.MaxDepth)
	assert.False(t, cfg.ShortCircuit)
	assert.True(t, cfg.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
prompt: "simple> "
log_level: debug
short_circuit: true
max_depth: 100
color: false
history_file: ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "simple> ", cfg.Prompt)
	assert.Equal(t, ".. ", cfg.ContinuationPrompt, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.True(t, cfg.ShortCircuit)
	assert.Equal(t, 100, cfg.MaxDepth)
	assert.False(t, cfg.Color)
	assert.Empty(t, cfg.HistoryFile)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		msg     string
	}{
		{"malformed yaml", "prompt: [unclosed", "parsing config"},
		{"wrong type", "max_depth: deep", "parsing config"},
		{"unknown level", "log_level: loud", `invalid log_level "loud"`},
		{"negative depth", "max_depth: -1", "max_depth must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadUnreadable(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLevelFallsBackToWarn(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "bogus"
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestInterpreterOptions(t *testing.T) {
	program, err := parser.Parse("a := false and missing")
	require.NoError(t, err)

	cfg := Default()
	assert.Error(t, evaluator.New(cfg.InterpreterOptions()...).Run(program), "eager and evaluates both sides")

	cfg.ShortCircuit = true
	in := evaluator.New(cfg.InterpreterOptions()...)
	require.NoError(t, in.Run(program))

	a, ok := in.Globals().Get("a")
	require.True(t, ok)
	assert.Equal(t, "false", a.Inspect())
}
