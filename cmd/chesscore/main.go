// chesscore plays, imports, analyses and exports chess games.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/board"
	"github.com/lgbarn/chesscore-go/internal/config"
	"github.com/lgbarn/chesscore-go/internal/eco"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/logging"
	"github.com/lgbarn/chesscore-go/internal/output"
	"github.com/lgbarn/chesscore-go/internal/parser"
	"github.com/lgbarn/chesscore-go/internal/search"
	"github.com/lgbarn/chesscore-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the exit code: 0 on success,
// 1 when the work failed, 2 for bad usage or configuration.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "chesscore: %v\n", err)
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "chesscore version %s\n", programVersion)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "chesscore: %v\n", err)
		return 2
	}
	logging.SetOutput(stderr)
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "chesscore: %v\n", err)
		return 2
	}

	app := &app{cfg: cfg, opts: opts, stdout: stdout}
	if err := app.loadECO(); err != nil {
		fmt.Fprintf(stderr, "chesscore: %v\n", err)
		return 1
	}
	if err := app.dispatch(ctx); err != nil {
		fmt.Fprintf(stderr, "chesscore: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the configuration file, if any, and applies the flags.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.NewConfig()
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return nil, err
		}
	}
	applyFlags(cfg, opts)
	return cfg, cfg.Validate()
}

type app struct {
	cfg    *config.Config
	opts   *options
	stdout io.Writer
	eco    *eco.Classifier
}

func (a *app) loadECO() error {
	if a.opts.ecoFile == "" {
		return nil
	}
	a.eco = eco.NewClassifier()
	return a.eco.LoadFile(a.opts.ecoFile)
}

// classify adds opening tags when an ECO file was given.
func (a *app) classify(b *board.Board) {
	if a.eco != nil {
		a.eco.AddTags(b)
	}
}

func (a *app) dispatch(ctx context.Context) error {
	switch {
	case a.opts.analyzeFile != "":
		return a.analyze(ctx)
	case a.opts.pgnFile != "":
		return a.importPGN()
	case a.opts.perftDepth > 0:
		return a.perft()
	default:
		return a.play(ctx)
	}
}

func (a *app) searcher() *search.Searcher {
	return search.NewSearcher(
		search.WithWorkers(a.cfg.Search.Workers),
		search.WithRules(a.cfg.Rules.EngineRules()),
	)
}

// newBoard builds the starting board from -fen, the Chess960 setting or
// the standard start.
func (a *app) newBoard() (*board.Board, error) {
	opts := []board.Option{board.WithRules(a.cfg.Rules.EngineRules())}
	switch {
	case a.opts.fen != "":
		return board.FromFEN(a.opts.fen, opts...)
	case a.cfg.Chess960 != nil && *a.cfg.Chess960 == -1:
		return board.NewChess960(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), opts...), nil
	case a.cfg.Chess960 != nil:
		return board.NewChess960Index(*a.cfg.Chess960, opts...)
	default:
		return board.New(opts...), nil
	}
}

// play sets up one board, plays -moves and an optional engine move, and
// prints the result.
func (a *app) play(ctx context.Context) error {
	b, err := a.newBoard()
	if err != nil {
		return err
	}
	for _, san := range strings.Fields(a.opts.moves) {
		if _, err := b.MakeSANMove(san); err != nil {
			return err
		}
	}
	if a.opts.engineDepth > 0 {
		res, err := b.MakeEngineMove(ctx, a.searcher(), a.cfg.Search.Depth)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Engine: %s (score %d, depth %d, %d nodes)\n", res.SAN, res.Score, res.Depth, res.Nodes)
	}
	a.classify(b)

	if err := a.writeSVG(b); err != nil {
		return err
	}
	if a.opts.jsonOutput {
		return output.WriteJSON(a.stdout, b)
	}
	a.printSummary(b)
	return output.WritePGN(a.stdout, b, a.cfg)
}

func (a *app) printSummary(b *board.Board) {
	fmt.Fprintf(a.stdout, "FEN: %s\n", engine.FEN(b.Tip()))
	fmt.Fprintf(a.stdout, "To move: %s\n", b.SideToMove())
	fmt.Fprintf(a.stdout, "State: %s\n", b.GameState())
	fmt.Fprintf(a.stdout, "Status: %s\n", b.GameOver())
	fmt.Fprintf(a.stdout, "Position hash: %s\n", b.PositionHashString())
	fmt.Fprintf(a.stdout, "Record hash: %s\n", b.RecordHashString())
	if pairs := b.MovePairs(); len(pairs) > 0 {
		fmt.Fprintf(a.stdout, "Moves: %s\n", strings.Join(pairs, " "))
	}
	fmt.Fprintln(a.stdout)
}

// importPGN replays every game of -pgn and writes them back out.
func (a *app) importPGN() error {
	boards, err := parser.ImportFile(a.opts.pgnFile, a.cfg)
	if err != nil {
		return err
	}
	format := "pgn"
	if a.opts.jsonOutput {
		format = "json"
	}
	w := output.NewGameWriter(format, a.stdout, a.cfg)
	for _, b := range boards {
		a.classify(b)
		if err := w.WriteGame(b); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	if len(boards) > 0 {
		return a.writeSVG(boards[len(boards)-1])
	}
	return nil
}

// perft prints the per-move leaf counts and their total.
func (a *app) perft() error {
	b, err := a.newBoard()
	if err != nil {
		return err
	}
	p := b.Tip()
	var total int64
	divide := engine.Divide(p, a.opts.perftDepth)
	for _, m := range engine.LegalMoves(p) {
		n := divide[m.String()]
		total += n
		fmt.Fprintf(a.stdout, "%s: %d\n", m, n)
	}
	fmt.Fprintf(a.stdout, "\nperft(%d) = %d\n", a.opts.perftDepth, total)
	return nil
}

// analyze searches every FEN of -analyze on the worker pool.
func (a *app) analyze(ctx context.Context) error {
	f, err := os.Open(a.opts.analyzeFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.opts.analyzeFile, err)
	}
	defer f.Close()

	items, err := worker.ReadFENs(f)
	if err != nil {
		return err
	}
	results := worker.Analyze(ctx, items, a.searcher(), a.cfg.Search.Workers, a.cfg.Search.Depth)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(a.stdout, "%d\t%s\terror: %v\n", r.Index+1, r.FEN, r.Err)
			continue
		}
		mark := ""
		if r.Duplicate {
			mark = "\tduplicate"
		}
		fmt.Fprintf(a.stdout, "%d\t%s\t%s\t%d\t%d%s\n", r.Index+1, r.FEN, r.Result.Move, r.Result.Score, r.Result.Nodes, mark)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d positions failed", failed, len(results))
	}
	return nil
}

func (a *app) writeSVG(b *board.Board) error {
	if a.opts.svgFile == "" {
		return nil
	}
	f, err := os.Create(a.opts.svgFile)
	if err != nil {
		return err
	}
	if err := output.WriteSVG(f, b.Tip(), a.cfg.Output.SVGSquareSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
