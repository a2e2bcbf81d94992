package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
		"4k3/8/8/8/8/8/4P3/R3K3 w Q - 17 42",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", fen, err)
			continue
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip:\n in %s\nout %s", fen, got)
		}
	}
}

func TestParseFENDefaultsClocks(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", pos.HalfMoveClock, pos.FullMoveNumber)
	}
}

func TestParseFENRejectsInvalid(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",       // missing fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",   // 7 ranks
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", // rank too wide
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1", // bad castling
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1", // bad ep square
		"8/8/8/8/8/8/8/8 w - - 0 1",                         // no kings
		"k7/8/8/8/8/8/K6K/8 w - - 0 1",                      // two white kings
		"P3k3/8/8/8/8/8/8/4K3 w - - 0 1",                    // pawn on rank 8
	}

	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q) accepted invalid input", fen)
		}
	}
}

func TestParseFENPlacement(t *testing.T) {
	pos := NewPosition()

	checks := []struct {
		sq    string
		piece Piece
	}{
		{"a1", WhiteRook}, {"e1", WhiteKing}, {"d1", WhiteQueen},
		{"e2", WhitePawn}, {"e4", NoPiece}, {"g8", BlackKnight},
		{"e8", BlackKing}, {"h7", BlackPawn},
	}
	for _, c := range checks {
		sq, _ := ParseSquare(c.sq)
		if got := pos.PieceAt(sq); got != c.piece {
			t.Errorf("piece at %s = %v, want %v", c.sq, got, c.piece)
		}
	}

	if pos.KingSquare[White] != E1 || pos.KingSquare[Black] != E8 {
		t.Errorf("king cache = %s/%s, want e1/e8", pos.KingSquare[White], pos.KingSquare[Black])
	}
	if pos.Hash == 0 || pos.Hash != pos.ComputeHash() {
		t.Error("hash not initialized from placement")
	}
}
