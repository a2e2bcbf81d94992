package engine

import (
	"chessmate/internal/board"
)

// Move ordering affects only how fast alpha-beta prunes, never which move
// the search ultimately picks. Scores are relative; bigger sorts first.
const (
	pvMoveScore        = 1 << 20
	captureScoreBase   = 1 << 16
	promotionScoreBase = 1 << 12
)

// mvvLVA[victim][attacker]: most valuable victim first, least valuable
// attacker breaking ties.
var mvvLVA [6][6]int

func init() {
	for victim := board.Pawn; victim <= board.Queen; victim++ {
		for attacker := board.Pawn; attacker <= board.King; attacker++ {
			mvvLVA[victim][attacker] = pieceValues[victim]*10 - pieceValues[attacker]/10
		}
	}
}

// scoreMove assigns an ordering score to a move. The principal variation
// move from the previous iteration always sorts first.
func scoreMove(pos *board.Position, m, pvMove board.Move) int {
	if m == pvMove && pvMove != board.NoMove {
		return pvMoveScore
	}

	score := 0
	if m.IsCapture(pos) {
		victim := board.Pawn // en passant
		if captured := pos.PieceAt(m.To()); captured != board.NoPiece {
			victim = captured.Type()
		}
		attacker := pos.PieceAt(m.From()).Type()
		score = captureScoreBase + mvvLVA[victim][attacker]
	}
	if m.IsPromotion() {
		score += promotionScoreBase + pieceValues[m.Promotion()]
	}
	return score
}

// orderMoves sorts the move list in place by descending ordering score.
// Insertion sort: the lists are short and mostly scored zero.
func orderMoves(pos *board.Position, moves *board.MoveList, pvMove board.Move) {
	n := moves.Len()
	scores := make([]int, n)
	for i := 0; i < n; i++ {
		scores[i] = scoreMove(pos, moves.Get(i), pvMove)
	}

	for i := 1; i < n; i++ {
		for j := i; j > 0 && scores[j-1] < scores[j]; j-- {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			moves.Swap(j-1, j)
		}
	}
}

// movePVFirst rotates the principal variation move to the front, leaving
// the rest of the generator's order untouched.
func movePVFirst(moves *board.MoveList, pvMove board.Move) {
	if pvMove == board.NoMove {
		return
	}
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == pvMove {
			for j := i; j > 0; j-- {
				moves.Swap(j-1, j)
			}
			return
		}
	}
}
