// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lgbarn/chesscore-go/internal/config"
)

// chess960Unset marks -chess960 as not given.
const chess960Unset = -2

// options holds the parsed command line.
type options struct {
	// Game source
	fen      string
	pgnFile  string
	chess960 int
	moves    string
	ecoFile  string

	// Engine
	engineDepth int
	workers     int
	perftDepth  int
	analyzeFile string

	// Output
	svgFile    string
	jsonOutput bool
	lineLength int

	// Configuration
	configFile string
	logLevel   string
	version    bool
}

// newFlagSet binds the command-line flags to opts.
func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("chesscore", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.fen, "fen", "", "Start from this FEN position")
	fs.StringVar(&opts.pgnFile, "pgn", "", "Import games from a PGN file")
	fs.IntVar(&opts.chess960, "chess960", chess960Unset, "Start a Chess960 game: arrangement 0-959, or -1 for random")
	fs.StringVar(&opts.moves, "moves", "", "Space-separated SAN moves to play, e.g. \"e4 e5 Nf3\"")
	fs.StringVar(&opts.ecoFile, "eco", "", "Add ECO opening tags using the reference lines in this PGN file")

	fs.IntVar(&opts.engineDepth, "engine", 0, "Let the engine play one move, searching to this depth")
	fs.IntVar(&opts.workers, "workers", 0, "Search workers (default: config or GOMAXPROCS)")
	fs.IntVar(&opts.perftDepth, "perft", 0, "Count leaf nodes of the legal move tree to this depth")
	fs.StringVar(&opts.analyzeFile, "analyze", "", "Search every FEN in this file (one per line)")

	fs.StringVar(&opts.svgFile, "svg", "", "Write an SVG diagram of the final position to this file")
	fs.BoolVar(&opts.jsonOutput, "json", false, "Print games as JSON instead of PGN")
	fs.IntVar(&opts.lineLength, "w", -1, "Maximum PGN line length, 0 for no wrapping (default: config)")

	fs.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "chesscore version %s\n\n", programVersion)
		fmt.Fprintln(stderr, "Usage: chesscore [options]")
		fmt.Fprintln(stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args into options.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := newFlagSet(opts, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// applyFlags applies command-line flags on top of the configuration.
func applyFlags(cfg *config.Config, opts *options) {
	applySearchFlags(cfg, opts)
	applyOutputFlags(cfg, opts)

	if opts.chess960 != chess960Unset {
		n := opts.chess960
		cfg.Chess960 = &n
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
}

// applySearchFlags configures search settings.
func applySearchFlags(cfg *config.Config, opts *options) {
	if opts.engineDepth > 0 {
		cfg.Search.Depth = opts.engineDepth
	}
	if opts.workers != 0 {
		cfg.Search.Workers = opts.workers
	}
}

// applyOutputFlags configures output settings.
func applyOutputFlags(cfg *config.Config, opts *options) {
	if opts.lineLength >= 0 {
		cfg.Output.MaxLineLength = opts.lineLength
	}
}
