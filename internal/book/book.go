// Package book provides a small fixed opening book. Lines are compiled
// into the binary and indexed by position hash, so lookup works from any
// transposition the book lines reach.
package book

import (
	"fmt"
	"math/rand"
	"strings"

	"chessmate/internal/board"
)

// Opening lines in coordinate notation from the starting position. A few
// mainstream systems for both colors; enough to vary the first moves
// without steering into sharp theory.
var openingLines = []string{
	// Italian and Spanish
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5 c2c3 g8f6 d2d3 d7d6",
	"e2e4 e7e5 g1f3 b8c6 f1b5 a7a6 b5a4 g8f6 e1g1 f8e7",
	// Sicilian
	"e2e4 c7c5 g1f3 d7d6 d2d4 c5d4 f3d4 g8f6 b1c3 a7a6",
	"e2e4 c7c5 g1f3 b8c6 d2d4 c5d4 f3d4 g8f6 b1c3 e7e5",
	// French and Caro-Kann
	"e2e4 e7e6 d2d4 d7d5 b1c3 g8f6 c1g5 f8e7",
	"e2e4 c7c6 d2d4 d7d5 b1c3 d5e4 c3e4 c8f5",
	// Queen's Gambit
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6 c1g5 f8e7 e2e3 e8g8",
	"d2d4 d7d5 c2c4 c7c6 g1f3 g8f6 b1c3 d5c4 a2a4 c8f5",
	// Indian defenses
	"d2d4 g8f6 c2c4 e7e6 b1c3 f8b4 e2e3 e8g8",
	"d2d4 g8f6 c2c4 g7g6 b1c3 f8g7 e2e4 d7d6 g1f3 e8g8",
	// English and Reti
	"c2c4 e7e5 b1c3 g8f6 g1f3 b8c6 g2g3 d7d5",
	"g1f3 d7d5 g2g3 g8f6 f1g2 e7e6 e1g1 f8e7",
}

// Book maps position hashes to candidate replies.
type Book struct {
	entries map[uint64][]board.Move
	rng     *rand.Rand
}

// New builds the book by replaying the compiled-in lines. An unplayable
// line is a programming error.
func New() (*Book, error) {
	b := &Book{
		entries: make(map[uint64][]board.Move),
		rng:     rand.New(rand.NewSource(rand.Int63())),
	}
	for _, line := range openingLines {
		if err := b.addLine(line); err != nil {
			return nil, fmt.Errorf("book line %q: %w", line, err)
		}
	}
	return b, nil
}

func (b *Book) addLine(line string) error {
	pos := board.NewPosition()
	for _, uci := range strings.Fields(line) {
		m, err := board.ParseMove(uci, pos)
		if err != nil {
			return err
		}
		if !pos.GenerateLegalMoves().Contains(m) {
			return fmt.Errorf("illegal move %s", uci)
		}
		b.add(pos.Hash, m)
		pos.MakeMove(m)
	}
	return nil
}

func (b *Book) add(hash uint64, m board.Move) {
	for _, existing := range b.entries[hash] {
		if existing == m {
			return
		}
	}
	b.entries[hash] = append(b.entries[hash], m)
}

// Probe returns a book move for the position, chosen at random among the
// known candidates, or false if the position is out of book.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	candidates := b.entries[pos.Hash]
	if len(candidates) == 0 {
		return board.NoMove, false
	}
	return candidates[b.rng.Intn(len(candidates))], true
}

// Len returns the number of book positions.
func (b *Book) Len() int {
	return len(b.entries)
}

