package hashing

import (
	"sync"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

// ThreadSafeCounter wraps RepetitionCounter with mutex protection for
// concurrent access, e.g. to skip duplicate positions in batch analysis.
type ThreadSafeCounter struct {
	counter *RepetitionCounter
	mu      sync.RWMutex
}

// NewThreadSafeCounter creates a new thread-safe counter.
func NewThreadSafeCounter() *ThreadSafeCounter {
	return &ThreadSafeCounter{counter: NewRepetitionCounter()}
}

// CheckAndAdd atomically records hash and reports whether it was seen before.
func (c *ThreadSafeCounter) CheckAndAdd(hash chess.HashCode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter.Add(hash) > 1
}

// Count returns how often hash has occurred.
func (c *ThreadSafeCounter) Count(hash chess.HashCode) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.Count(hash)
}

// UniqueCount returns the number of distinct positions seen.
func (c *ThreadSafeCounter) UniqueCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.UniqueCount()
}

// DuplicateCount returns the number of repeated occurrences seen.
func (c *ThreadSafeCounter) DuplicateCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counter.Total() - c.counter.UniqueCount()
}
