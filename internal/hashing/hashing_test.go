package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/chesscore-go/internal/chess"
)

func sq(name string) chess.Square {
	s, err := chess.ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return s
}

// kingsAndPawns builds a small position: kings on e1/e8, a white pawn on e5
// and a black pawn on d5, Black having just played d7-d5.
func kingsAndPawns() *chess.Position {
	p := chess.NewPosition()
	p.Set(sq("e1"), chess.W(chess.King))
	p.Set(sq("e8"), chess.B(chess.King))
	p.Set(sq("e5"), chess.W(chess.Pawn))
	p.Set(sq("d5"), chess.B(chess.Pawn))
	p.EnPassant = sq("d6")
	return p
}

func TestPositionHash_Deterministic(t *testing.T) {
	a, b := kingsAndPawns(), kingsAndPawns()
	if PositionHash(a) != PositionHash(b) {
		t.Error("equal positions hash differently")
	}
}

func TestPositionHash_Components(t *testing.T) {
	base := kingsAndPawns()
	baseHash := PositionHash(base)

	tests := []struct {
		name   string
		modify func(p *chess.Position)
	}{
		{"side to move", func(p *chess.Position) { p.ToMove = chess.Black }},
		{"castling right", func(p *chess.Position) { p.SetCastleRook(chess.White, chess.Short, 'h') }},
		{"capturable en passant", func(p *chess.Position) { p.EnPassant = chess.OffBoard }},
		{"piece moved", func(p *chess.Position) {
			p.Set(sq("e1"), chess.Empty)
			p.Set(sq("f1"), chess.W(chess.King))
		}},
		{"piece colour", func(p *chess.Position) { p.Set(sq("d5"), chess.W(chess.Pawn)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base.Clone()
			tt.modify(p)
			if PositionHash(p) == baseHash {
				t.Errorf("hash unchanged after changing %s", tt.name)
			}
		})
	}
}

func TestPositionHash_UncapturableEnPassantIgnored(t *testing.T) {
	p := kingsAndPawns()
	p.Set(sq("e5"), chess.Empty)
	p.Set(sq("h2"), chess.W(chess.Pawn))

	without := p.Clone()
	without.EnPassant = chess.OffBoard
	if PositionHash(p) != PositionHash(without) {
		t.Error("an en passant target no pawn can use should not change the hash")
	}
}

func TestPositionHash_IgnoresClocks(t *testing.T) {
	a := kingsAndPawns()
	b := a.Clone()
	b.HalfmoveClock = 12
	b.MoveNumber = 40
	if PositionHash(a) != PositionHash(b) {
		t.Error("position hash must not depend on the clocks")
	}
}

func TestRecordHash(t *testing.T) {
	start := kingsAndPawns()
	Stamp(start, nil)

	next := start.Clone()
	next.ToMove = chess.Black
	next.LastMove = chess.Move{Piece: chess.W(chess.King), From: sq("e1"), To: sq("f1")}
	next.Set(sq("e1"), chess.Empty)
	next.Set(sq("f1"), chess.W(chess.King))
	Stamp(next, start)

	again := next.Clone()
	Stamp(again, start)
	if again.RecordHash != next.RecordHash {
		t.Error("record hash is not deterministic")
	}

	// Same position reached through a different predecessor.
	other := start.Clone()
	other.HalfmoveClock = 3
	Stamp(other, nil)
	samePlace := next.Clone()
	Stamp(samePlace, other)
	if samePlace.PositionHash != next.PositionHash {
		t.Error("position hash should match for equal placement")
	}
	if samePlace.RecordHash == next.RecordHash {
		t.Error("record hash should differ for a different line")
	}
}

func TestHashToString(t *testing.T) {
	if got := HashToString(0xff); got != "00000000000000ff" {
		t.Errorf("HashToString(0xff) = %q", got)
	}
}

func TestRepetitionCounter(t *testing.T) {
	r := NewRepetitionCounter()
	if r.Add(1) != 1 || r.Add(1) != 2 || r.Add(2) != 1 {
		t.Fatal("Add() returned the wrong counts")
	}
	if r.Count(1) != 2 || r.UniqueCount() != 2 || r.Total() != 3 {
		t.Errorf("Count/UniqueCount/Total = %d/%d/%d", r.Count(1), r.UniqueCount(), r.Total())
	}

	c := r.Clone()
	r.Remove(1)
	r.Remove(2)
	r.Remove(99)
	if r.Count(1) != 1 || r.Count(2) != 0 || r.Total() != 1 {
		t.Errorf("after Remove: Count(1)=%d Count(2)=%d Total=%d", r.Count(1), r.Count(2), r.Total())
	}
	if c.Count(1) != 2 {
		t.Error("Clone shares state with the original")
	}

	r.Reset()
	if r.UniqueCount() != 0 {
		t.Error("Reset() did not clear the counter")
	}
}

func TestThreadSafeCounter_Concurrent(t *testing.T) {
	counter := NewThreadSafeCounter()

	const numWorkers = 10
	const perWorker = 10

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				counter.CheckAndAdd(chess.HashCode(j))
			}
		}()
	}
	wg.Wait()

	if counter.UniqueCount() != perWorker {
		t.Errorf("UniqueCount() = %d, want %d", counter.UniqueCount(), perWorker)
	}
	if counter.DuplicateCount() != numWorkers*perWorker-perWorker {
		t.Errorf("DuplicateCount() = %d, want %d", counter.DuplicateCount(), numWorkers*perWorker-perWorker)
	}
	if counter.Count(3) != numWorkers {
		t.Errorf("Count(3) = %d, want %d", counter.Count(3), numWorkers)
	}
}
