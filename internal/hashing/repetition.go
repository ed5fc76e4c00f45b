package hashing

import (
	"github.com/lgbarn/chesscore-go/internal/chess"
)

// RepetitionCounter counts how often each position hash occurred in a line of play.
type RepetitionCounter struct {
	counts map[chess.HashCode]int
	// total number of positions added
	total int
}

// NewRepetitionCounter creates an empty counter.
func NewRepetitionCounter() *RepetitionCounter {
	return &RepetitionCounter{counts: make(map[chess.HashCode]int)}
}

// Add records an occurrence of hash and returns its new count.
func (r *RepetitionCounter) Add(hash chess.HashCode) int {
	r.counts[hash]++
	r.total++
	return r.counts[hash]
}

// Remove forgets one occurrence of hash.
func (r *RepetitionCounter) Remove(hash chess.HashCode) {
	n, ok := r.counts[hash]
	if !ok {
		return
	}
	if n <= 1 {
		delete(r.counts, hash)
	} else {
		r.counts[hash] = n - 1
	}
	r.total--
}

// Count returns how often hash has occurred.
func (r *RepetitionCounter) Count(hash chess.HashCode) int {
	return r.counts[hash]
}

// UniqueCount returns the number of distinct positions seen.
func (r *RepetitionCounter) UniqueCount() int {
	return len(r.counts)
}

// Total returns the number of occurrences recorded.
func (r *RepetitionCounter) Total() int {
	return r.total
}

// Clone returns an independent copy of the counter.
func (r *RepetitionCounter) Clone() *RepetitionCounter {
	c := &RepetitionCounter{counts: make(map[chess.HashCode]int, len(r.counts)), total: r.total}
	for h, n := range r.counts {
		c.counts[h] = n
	}
	return c
}

// Reset clears the counter.
func (r *RepetitionCounter) Reset() {
	r.counts = make(map[chess.HashCode]int)
	r.total = 0
}
