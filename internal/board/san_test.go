package board

import "testing"

func TestToSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight development", StartFEN, "g1f3", "Nf3"},
		{"pawn capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2", "e4d5", "exd5"},
		{"piece capture", "4k3/8/8/3r4/8/8/8/3RK3 w - - 0 1", "d1d5", "Rxd5"},
		{"king side castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"queen side castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"promotion", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8q", "a8=Q"},
		{"underpromotion", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8n", "a8=N"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2", "e5d6", "exd6"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/R1R3K1 w - - 0 1", "a1b1", "Rab1"},
		{"rank disambiguation", "1k6/8/8/8/R7/8/8/R3K3 w - - 0 1", "a1a2", "R1a2"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", "Ra8+"},
		{"checkmate", "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParseFEN(t, tc.fen)
			m, err := ParseMove(tc.move, pos)
			if err != nil {
				t.Fatalf("ParseMove(%s): %v", tc.move, err)
			}
			before := *pos
			if got := pos.ToSAN(m); got != tc.want {
				t.Errorf("ToSAN(%s) = %q, want %q", tc.move, got, tc.want)
			}
			if *pos != before {
				t.Errorf("ToSAN mutated the position")
			}
		})
	}
}
