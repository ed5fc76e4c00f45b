package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// MaxLineLength is the maximum line length for PGN movetext; 0 means
	// no wrapping.
	MaxLineLength int `yaml:"max_line_length"`

	// SVGSquareSize is the side of one board square in SVG diagrams, in pixels.
	SVGSquareSize int `yaml:"svg_square_size"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength: 80,
		SVGSquareSize: 45,
	}
}
