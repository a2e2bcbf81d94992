package board

// Direction deltas in (file, rank) form. Walking in file/rank space instead
// of raw square indices makes board-edge wrap impossible.
var (
	knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingDeltas   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	bishopDirs   = [4][2]int{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	rookDirs     = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// IsSquareAttacked returns true if the given square is attacked by any piece
// of the given color. The square itself may be empty or occupied by either
// side; occupancy of sq does not affect the result.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	file, rank := sq.File(), sq.Rank()

	// Pawn attacks. A pawn of color `by` attacks sq from one rank behind
	// (relative to its push direction).
	pawnRank := rank - 1
	if by == Black {
		pawnRank = rank + 1
	}
	if pawnRank >= 0 && pawnRank <= 7 {
		pawn := NewPiece(Pawn, by)
		if file > 0 && p.Board[NewSquare(file-1, pawnRank)] == pawn {
			return true
		}
		if file < 7 && p.Board[NewSquare(file+1, pawnRank)] == pawn {
			return true
		}
	}

	// Knight attacks
	knight := NewPiece(Knight, by)
	for _, d := range knightDeltas {
		f, r := file+d[0], rank+d[1]
		if f >= 0 && f <= 7 && r >= 0 && r <= 7 && p.Board[NewSquare(f, r)] == knight {
			return true
		}
	}

	// King attacks
	king := NewPiece(King, by)
	for _, d := range kingDeltas {
		f, r := file+d[0], rank+d[1]
		if f >= 0 && f <= 7 && r >= 0 && r <= 7 && p.Board[NewSquare(f, r)] == king {
			return true
		}
	}

	// Diagonal sliders
	bishop := NewPiece(Bishop, by)
	queen := NewPiece(Queen, by)
	for _, d := range bishopDirs {
		for f, r := file+d[0], rank+d[1]; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+d[0], r+d[1] {
			piece := p.Board[NewSquare(f, r)]
			if piece == NoPiece {
				continue
			}
			if piece == bishop || piece == queen {
				return true
			}
			break
		}
	}

	// Straight sliders
	rook := NewPiece(Rook, by)
	for _, d := range rookDirs {
		for f, r := file+d[0], rank+d[1]; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+d[0], r+d[1] {
			piece := p.Board[NewSquare(f, r)]
			if piece == NoPiece {
				continue
			}
			if piece == rook || piece == queen {
				return true
			}
			break
		}
	}

	return false
}
