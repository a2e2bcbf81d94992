// Package engine implements the chess AI: static evaluation and a
// time-bounded iterative-deepening alpha-beta search.
package engine

import (
	"chessmate/internal/board"
)

// Piece values in centipawns. The king carries no material value; king
// safety is expressed through its piece-square tables instead.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0, 0}

// Passed pawn bonuses by rank from the pawn's own perspective.
// Index 1 = starting rank, index 6 = one step from promotion.
var passedPawnBonus = [8]int{0, 10, 20, 40, 70, 120, 200, 0}

// Piece-Square Tables for positional evaluation.
// Values are from White's perspective with rank 8 on the first row, the
// conventional layout; lookup mirrors the square for White.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) rewards staying castled behind pawns.
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) pushes the king toward the center.
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var psts = [6][64]int{pawnPST, knightPST, bishopPST, rookPST, queenPST, kingMidgamePST}

// pstSquare maps a square to its PST index for the given color. The tables
// are written rank 8 first, so White mirrors.
func pstSquare(sq board.Square, c board.Color) board.Square {
	if c == board.White {
		return sq.Mirror()
	}
	return sq
}

// Evaluate returns the static evaluation of the position in centipawns
// from White's perspective. Positive favors White.
func Evaluate(pos *board.Position) int {
	endgame := isEndgame(pos)
	score := 0

	for sq := board.Square(0); sq < 64; sq++ {
		piece := pos.Board[sq]
		if piece == board.NoPiece {
			continue
		}
		pt, c := piece.Type(), piece.Color()

		v := pieceValues[pt]
		if pt == board.King && endgame {
			v += kingEndgamePST[pstSquare(sq, c)]
		} else {
			v += psts[pt][pstSquare(sq, c)]
		}
		if pt == board.Pawn && isPassedPawn(pos, sq, c) {
			v += passedPawnBonus[relativeRank(sq, c)]
		}

		if c == board.White {
			score += v
		} else {
			score -= v
		}
	}

	return score
}

// EvaluateMaterial returns only the material balance from White's
// perspective.
func EvaluateMaterial(pos *board.Position) int {
	score := 0
	for sq := board.Square(0); sq < 64; sq++ {
		piece := pos.Board[sq]
		if piece == board.NoPiece {
			continue
		}
		if piece.Color() == board.White {
			score += pieceValues[piece.Type()]
		} else {
			score -= pieceValues[piece.Type()]
		}
	}
	return score
}

// isEndgame reports whether the position should use endgame king tables:
// both queens off the board, or neither side has more than one queen's
// worth of non-pawn material.
func isEndgame(pos *board.Position) bool {
	var queens, nonPawn [2]int
	for sq := board.Square(0); sq < 64; sq++ {
		piece := pos.Board[sq]
		if piece == board.NoPiece {
			continue
		}
		switch pt := piece.Type(); pt {
		case board.Pawn, board.King:
		case board.Queen:
			queens[piece.Color()]++
			nonPawn[piece.Color()] += QueenValue
		default:
			nonPawn[piece.Color()] += pieceValues[pt]
		}
	}
	if queens[board.White] == 0 && queens[board.Black] == 0 {
		return true
	}
	return nonPawn[board.White] <= QueenValue && nonPawn[board.Black] <= QueenValue
}

// relativeRank returns the rank from the given color's own perspective.
func relativeRank(sq board.Square, c board.Color) int {
	if c == board.White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// isPassedPawn reports whether the pawn on sq has no enemy pawn ahead of
// it on its own file or an adjacent file.
func isPassedPawn(pos *board.Position, sq board.Square, c board.Color) bool {
	enemy := board.NewPiece(board.Pawn, c.Other())
	file, rank := sq.File(), sq.Rank()
	dir := 1
	if c == board.Black {
		dir = -1
	}

	for r := rank + dir; r > 0 && r < 7; r += dir {
		for f := file - 1; f <= file+1; f++ {
			if f < 0 || f > 7 {
				continue
			}
			if pos.Board[board.NewSquare(f, r)] == enemy {
				return false
			}
		}
	}
	return true
}
