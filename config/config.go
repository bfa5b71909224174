// Package config loads harness configuration for the trace viewer CLI.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// YAML file, and environment overrides (AGENTTRACE_LOG_LEVEL).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foundryiq/agenttrace/types"
)

// Config is the root harness configuration.
type Config struct {
	// Log controls logger construction.
	Log LogConfig `yaml:"log"`

	// Display controls trace rendering.
	Display DisplayConfig `yaml:"display"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "json" or "console".
	Format string `yaml:"format"`
}

// DisplayConfig controls trace rendering.
type DisplayConfig struct {
	// ShowCitations renders resolved citation badges inline in the answer.
	ShowCitations bool `yaml:"show_citations"`

	// ShowSourceData prints reference snippets under the citation list.
	ShowSourceData bool `yaml:"show_source_data"`

	// MaxSnippetLen truncates printed snippets. 0 disables truncation.
	MaxSnippetLen int `yaml:"max_snippet_len"`

	// Color enables ANSI color in rendered output.
	Color bool `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Display: DisplayConfig{
			ShowCitations:  true,
			ShowSourceData: false,
			MaxSnippetLen:  200,
			Color:          true,
		},
	}
}

// Load resolves configuration from defaults, an optional YAML file, and
// environment overrides. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, types.NewError(types.ErrConfigInvalid, "read config file").WithCause(err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, types.NewError(types.ErrConfigInvalid, "parse config file").WithCause(err)
		}
	}

	if level := os.Getenv("AGENTTRACE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return types.NewError(types.ErrConfigInvalid, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return types.NewError(types.ErrConfigInvalid, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if c.Display.MaxSnippetLen < 0 {
		return types.NewError(types.ErrConfigInvalid, "max_snippet_len must be >= 0")
	}
	return nil
}
