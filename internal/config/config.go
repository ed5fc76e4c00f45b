// Package config provides the engine configuration: defaults, a fluent
// builder and YAML loading.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chesscore-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Search SearchConfig `yaml:"search"`
	Rules  RulesConfig  `yaml:"rules"`
	Output OutputConfig `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Chess960 is the start arrangement for new games: 0-959, -1 for a
	// random one. Nil plays standard chess.
	Chess960 *int `yaml:"chess960"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:   *NewSearchConfig(),
		Rules:    *NewRulesConfig(),
		Output:   *NewOutputConfig(),
		LogLevel: "warn",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFile, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Keys
// left out keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value is in range.
func (c *Config) Validate() error {
	invalid := func(key string, value any) error {
		return fmt.Errorf("%w: %s = %v", errors.ErrInvalidConfig, key, value)
	}

	if c.Search.Depth < 1 {
		return invalid("search.depth", c.Search.Depth)
	}
	if c.Search.Workers < 1 {
		return invalid("search.workers", c.Search.Workers)
	}
	if c.Rules.FiftyMoveClock < 0 {
		return invalid("rules.fifty_move_clock", c.Rules.FiftyMoveClock)
	}
	if c.Rules.RepetitionCount < 0 || c.Rules.RepetitionCount == 1 {
		return invalid("rules.repetition_count", c.Rules.RepetitionCount)
	}
	if c.Output.MaxLineLength < 0 || (c.Output.MaxLineLength > 0 && c.Output.MaxLineLength < 10) {
		return invalid("output.max_line_length", c.Output.MaxLineLength)
	}
	if c.Output.SVGSquareSize < 8 {
		return invalid("output.svg_square_size", c.Output.SVGSquareSize)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log_level", c.LogLevel)
	}
	if c.Chess960 != nil && (*c.Chess960 < -1 || *c.Chess960 > 959) {
		return invalid("chess960", *c.Chess960)
	}
	return nil
}

// SearchConfig holds the engine search settings.
type SearchConfig struct {
	// Depth is the search depth in plies.
	Depth int `yaml:"depth"`

	// Workers bounds how many root moves are searched in parallel, and how
	// many positions batch analysis searches at once.
	Workers int `yaml:"workers"`
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Depth:   3,
		Workers: runtime.GOMAXPROCS(0),
	}
}
