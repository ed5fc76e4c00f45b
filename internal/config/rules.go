package config

import "github.com/lgbarn/chesscore-go/internal/engine"

// RulesConfig holds the draw rule thresholds.
type RulesConfig struct {
	// FiftyMoveClock is the halfmove clock value that draws; 0 disables.
	FiftyMoveClock int `yaml:"fifty_move_clock"`

	// RepetitionCount is the occurrences of a position that draw; 0 disables.
	RepetitionCount int `yaml:"repetition_count"`
}

// NewRulesConfig creates a RulesConfig with default values.
func NewRulesConfig() *RulesConfig {
	r := engine.DefaultRules()
	return &RulesConfig{
		FiftyMoveClock:  r.FiftyMoveClock,
		RepetitionCount: r.RepetitionCount,
	}
}

// EngineRules converts the thresholds for the classifier.
func (r RulesConfig) EngineRules() engine.Rules {
	return engine.Rules{
		FiftyMoveClock:  r.FiftyMoveClock,
		RepetitionCount: r.RepetitionCount,
	}
}
