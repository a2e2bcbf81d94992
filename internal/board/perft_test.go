package board

import "testing"

// Perft node counts for well-known positions. These exercise every special
// rule: castling, en passant, promotions, pins, and discovered checks.
func TestPerft(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		depth    int
		expected uint64
	}{
		{"startpos d1", StartFEN, 1, 20},
		{"startpos d2", StartFEN, 2, 400},
		{"startpos d3", StartFEN, 3, 8902},
		{"startpos d4", StartFEN, 4, 197281},

		{"kiwipete d1", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 1, 48},
		{"kiwipete d2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 2, 2039},
		{"kiwipete d3", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 3, 97862},

		{"endgame d1", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 1, 14},
		{"endgame d2", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 2, 191},
		{"endgame d3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 3, 2812},
		{"endgame d4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 4, 43238},

		{"promotions d1", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 1, 24},
		{"promotions d2", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 2, 496},
		{"promotions d3", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1", 3, 9483},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
			}
			if got := pos.Perft(tc.depth); got != tc.expected {
				t.Errorf("Perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}

// A pawn pinned horizontally against its own king may not capture en
// passant, even though the capture looks pseudo-legal.
func TestEnPassantHorizontalPin(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsEnPassant() {
			t.Errorf("en passant %v should be illegal, rook discovers check on the king", m)
		}
	}

	// Ka3, Ka5, Kb3, Kb4, Kb5 and the single push e3.
	if got := pos.Perft(1); got != 6 {
		t.Errorf("Perft(1) = %d, want 6", got)
	}
	if got := pos.Perft(2); got != 94 {
		t.Errorf("Perft(2) = %d, want 94", got)
	}
}

// No legal move may leave the mover's own king attacked. Walked to depth 3
// from a position dense with pins and checks.
func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	var walk func(p *Position, depth int)
	walk = func(p *Position, depth int) {
		if depth == 0 {
			return
		}
		us := p.SideToMove
		moves := p.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			m := moves.Get(i)
			undo := p.MakeMove(m)
			if p.IsSquareAttacked(p.KingSquare[us], us.Other()) {
				t.Fatalf("move %v leaves own king in check in %s", m, p.ToFEN())
			}
			walk(p, depth-1)
			p.UnmakeMove(m, undo)
		}
	}
	walk(pos, 3)
}
