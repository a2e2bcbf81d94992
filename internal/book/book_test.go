package book

import (
	"testing"

	"chessmate/internal/board"
)

func TestBookBuilds(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Len() == 0 {
		t.Fatal("book is empty")
	}
}

func TestProbeStartingPosition(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pos := board.NewPosition()
	m, ok := b.Probe(pos)
	if !ok {
		t.Fatal("starting position out of book")
	}
	if !pos.GenerateLegalMoves().Contains(m) {
		t.Errorf("book returned illegal move %v", m)
	}
}

func TestProbeAlwaysReturnsLegalMoves(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Walk a book line move by move; every probe along the way must be
	// legal in the probed position.
	pos := board.NewPosition()
	for ply := 0; ply < 8; ply++ {
		m, ok := b.Probe(pos)
		if !ok {
			break
		}
		if !pos.GenerateLegalMoves().Contains(m) {
			t.Fatalf("ply %d: book move %v illegal in %s", ply, m, pos.ToFEN())
		}
		pos.MakeMove(m)
	}
}

func TestProbeOutOfBook(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pos, err := board.ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if _, ok := b.Probe(pos); ok {
		t.Error("random endgame found in book")
	}
}

func TestProbeReachesTranspositions(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// 1.e4 e5 2.Nf3 appears in several lines; the position is keyed by
	// hash, not by move order.
	pos := board.NewPosition()
	for _, uci := range []string{"e2e4", "e7e5", "g1f3"} {
		m, err := board.ParseMove(uci, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", uci, err)
		}
		pos.MakeMove(m)
	}
	if _, ok := b.Probe(pos); !ok {
		t.Error("position after 1.e4 e5 2.Nf3 out of book")
	}
}
