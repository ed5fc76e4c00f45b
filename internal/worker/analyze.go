package worker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/engine"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/hashing"
	"github.com/lgbarn/chesscore-go/internal/logging"
	"github.com/lgbarn/chesscore-go/internal/search"
)

// SearchFunc returns a ProcessFunc that searches each item with s.
// Items without a Depth use defaultDepth.
func SearchFunc(s *search.Searcher, defaultDepth int) ProcessFunc {
	return searchFunc(s, defaultDepth, nil)
}

// searchFunc is SearchFunc that marks, without searching, positions
// already counted in seen.
func searchFunc(s *search.Searcher, defaultDepth int, seen *hashing.ThreadSafeCounter) ProcessFunc {
	return func(ctx context.Context, item WorkItem) ProcessResult {
		res := ProcessResult{Index: item.Index, FEN: item.FEN, Depth: item.Depth}

		p := item.Position
		if p == nil {
			parsed, err := engine.ParseFEN(item.FEN)
			if err == nil {
				err = engine.ValidatePosition(parsed)
			}
			if err != nil {
				res.Err = logging.Fail(err, "index", item.Index, "fen", item.FEN)
				return res
			}
			p = parsed
		} else if res.FEN == "" {
			res.FEN = engine.FEN(p)
		}

		depth := item.Depth
		if depth == 0 {
			depth = defaultDepth
		}
		res.Hash, res.Depth = p.PositionHash, depth
		if seen != nil && p.PositionHash != 0 && seen.CheckAndAdd(searchKey(p.PositionHash, depth)) {
			res.Duplicate = true
			return res
		}
		res.Result, res.Err = s.Search(ctx, p, depth)
		return res
	}
}

// searchKey folds the depth into a position hash so that the same
// position searched to different depths is not a duplicate.
func searchKey(hash chess.HashCode, depth int) chess.HashCode {
	return hash ^ chess.HashCode(depth)*0x9e3779b97f4a7c15
}

// Analyze searches every item on a pool of workers and returns the
// results in item order. A position repeated in the batch is searched
// once and its result copied. Once ctx is done the remaining items fail
// with the context error.
func Analyze(ctx context.Context, items []WorkItem, s *search.Searcher, workers, depth int) []ProcessResult {
	seen := hashing.NewThreadSafeCounter()
	pool := NewPool(searchFunc(s, depth, seen), WithWorkers(workers), WithQueueSize(len(items)+1))
	pool.Start(ctx)

	go func() {
		for _, item := range items {
			pool.Submit(item)
		}
		pool.Close()
	}()

	results := make([]ProcessResult, 0, len(items))
	for r := range pool.Results() {
		results = append(results, r)
	}
	slices.SortFunc(results, func(a, b ProcessResult) int { return a.Index - b.Index })
	fillDuplicates(results)

	logging.Default().Debug("batch analysis", "items", len(items), "processed", pool.Processed(), "duplicates", seen.DuplicateCount(), "workers", pool.NumWorkers())
	return results
}

// fillDuplicates copies the searched result onto its duplicates.
func fillDuplicates(results []ProcessResult) {
	searched := make(map[chess.HashCode]ProcessResult)
	for _, r := range results {
		if !r.Duplicate && r.Hash != 0 {
			key := searchKey(r.Hash, r.Depth)
			if _, ok := searched[key]; !ok {
				searched[key] = r
			}
		}
	}
	for i, r := range results {
		if !r.Duplicate {
			continue
		}
		if orig, ok := searched[searchKey(r.Hash, r.Depth)]; ok {
			results[i].Result, results[i].Err = orig.Result, orig.Err
		}
	}
}

// ReadFENs reads one FEN per line. Blank lines and lines starting with
// '#' are skipped; Index is the zero-based position among the FENs read.
func ReadFENs(r io.Reader) ([]WorkItem, error) {
	var items []WorkItem
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, WorkItem{Index: len(items), FEN: line})
	}
	if err := scanner.Err(); err != nil {
		return items, logging.Fail(fmt.Errorf("%w: %w", errors.ErrFile, err), "items", len(items))
	}
	return items, nil
}
