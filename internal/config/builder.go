package config

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithSearchDepth sets the search depth in plies.
func (b *ConfigBuilder) WithSearchDepth(depth int) *ConfigBuilder {
	b.cfg.Search.Depth = depth
	return b
}

// WithWorkers sets the search parallelism.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Search.Workers = n
	return b
}

// WithRules sets both draw rule thresholds.
func (b *ConfigBuilder) WithRules(fiftyMoveClock, repetitionCount int) *ConfigBuilder {
	b.cfg.Rules.FiftyMoveClock = fiftyMoveClock
	b.cfg.Rules.RepetitionCount = repetitionCount
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length int) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithSVGSquareSize sets the SVG square size in pixels.
func (b *ConfigBuilder) WithSVGSquareSize(size int) *ConfigBuilder {
	b.cfg.Output.SVGSquareSize = size
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.LogLevel = level
	return b
}

// WithChess960 selects a Chess960 start arrangement, -1 for a random one.
func (b *ConfigBuilder) WithChess960(n int) *ConfigBuilder {
	b.cfg.Chess960 = &n
	return b
}
