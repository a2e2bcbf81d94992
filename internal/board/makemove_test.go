package board

import "testing"

// Making and unmaking any legal move must restore the position exactly:
// piece placement, side to move, castling rights, en passant target, both
// clocks, the cached king squares, and the Zobrist hash.
func TestMakeUnmakeRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			before := *pos

			moves := pos.GenerateLegalMoves()
			for i := 0; i < moves.Len(); i++ {
				m := moves.Get(i)
				undo := pos.MakeMove(m)
				pos.UnmakeMove(m, undo)

				if *pos != before {
					t.Fatalf("move %v did not round-trip:\nbefore %s\nafter  %s", m, before.ToFEN(), pos.ToFEN())
				}
			}
		})
	}
}

// The hash maintained incrementally by MakeMove must match a from-scratch
// recomputation after every move, two plies deep.
func TestIncrementalHashMatchesRecompute(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		if pos.Hash != pos.ComputeHash() {
			t.Errorf("after %v: incremental hash %x != recomputed %x", m, pos.Hash, pos.ComputeHash())
		}
		replies := pos.GenerateLegalMoves()
		for j := 0; j < replies.Len(); j++ {
			r := replies.Get(j)
			undo2 := pos.MakeMove(r)
			if pos.Hash != pos.ComputeHash() {
				t.Errorf("after %v %v: incremental hash %x != recomputed %x", m, r, pos.Hash, pos.ComputeHash())
			}
			pos.UnmakeMove(r, undo2)
		}
		pos.UnmakeMove(m, undo)
	}
}

// Half-move clock resets only on captures and pawn moves. A check does not
// reset it.
func TestHalfMoveClock(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4P3/R3K3 w - - 7 30")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	// Ra8+ gives check but is neither a capture nor a pawn move.
	m, err := ParseMove("a1a8", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	undo := pos.MakeMove(m)
	if pos.HalfMoveClock != 8 {
		t.Errorf("after rook check: half-move clock = %d, want 8", pos.HalfMoveClock)
	}
	pos.UnmakeMove(m, undo)

	// A pawn push resets it.
	m, err = ParseMove("e2e3", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	pos.MakeMove(m)
	if pos.HalfMoveClock != 0 {
		t.Errorf("after pawn push: half-move clock = %d, want 0", pos.HalfMoveClock)
	}
}

// The en passant target exists only for the single ply after a double push.
func TestEnPassantWindow(t *testing.T) {
	pos := NewPosition()

	m, _ := ParseMove("e2e4", pos)
	pos.MakeMove(m)
	if pos.EnPassant != NewSquare(4, 2) {
		t.Fatalf("after e2e4: en passant = %s, want e3", pos.EnPassant)
	}

	m, _ = ParseMove("g8f6", pos)
	pos.MakeMove(m)
	if pos.EnPassant != NoSquare {
		t.Errorf("one ply later: en passant = %s, want -", pos.EnPassant)
	}
}

// Castling moves both king and rook; unmaking restores both.
func TestCastlingMakeUnmake(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	before := *pos

	for _, mv := range []string{"e1g1", "e1c1"} {
		m, err := ParseMove(mv, pos)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", mv, err)
		}
		if !m.IsCastling() {
			t.Fatalf("%s not parsed as castling", mv)
		}
		undo := pos.MakeMove(m)

		if mv == "e1g1" {
			if pos.PieceAt(G1) != WhiteKing || pos.PieceAt(F1) != WhiteRook {
				t.Errorf("after O-O: king/rook misplaced\n%s", pos)
			}
		} else {
			if pos.PieceAt(C1) != WhiteKing || pos.PieceAt(D1) != WhiteRook {
				t.Errorf("after O-O-O: king/rook misplaced\n%s", pos)
			}
		}
		if pos.CastlingRights.CanCastle(White, true) || pos.CastlingRights.CanCastle(White, false) {
			t.Errorf("white retains castling rights after castling: %s", pos.CastlingRights)
		}

		pos.UnmakeMove(m, undo)
		if *pos != before {
			t.Errorf("castling %s did not round-trip", mv)
		}
	}
}

// Capturing a rook on its home square strips the opponent's right on that
// wing.
func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m, _ := ParseMove("a1a8", pos)
	pos.MakeMove(m)

	if pos.CastlingRights.CanCastle(Black, false) {
		t.Error("black retains queen-side right after a8 rook was captured")
	}
	if !pos.CastlingRights.CanCastle(Black, true) {
		t.Error("black lost king-side right it should keep")
	}
}
