package engine

import (
	"sync/atomic"
	"time"

	"chessmate/internal/board"
)

const (
	// MaxPly is the maximum search depth.
	MaxPly = 64

	// Infinity is larger than any achievable score.
	Infinity = 1000000

	// MateScore is the value of checkmate at the root. Mates found deeper
	// score lower, so the search prefers the shortest mate.
	MateScore = 100000
)

// nodesPerTimeCheck is how many nodes pass between deadline checks.
const nodesPerTimeCheck = 2048

// Searcher runs a fixed-depth alpha-beta search. Alpha-beta with pure
// move ordering is exact: it returns the same score and move that a full
// minimax to the same depth would, only faster. There is no speculative
// pruning here.
type Searcher struct {
	nodes    uint64
	stopFlag atomic.Bool
	deadline time.Time

	// drawPlyThreshold is the half-move clock value at which the game is
	// scored as drawn. Zero disables draw scoring.
	drawPlyThreshold int

	// ordering selects the move ordering heuristic.
	ordering Ordering

	// Triangular PV table: pvTable[ply] holds the best line found from
	// that ply, pvLength[ply] its length.
	pvTable  [MaxPly + 1][MaxPly + 1]board.Move
	pvLength [MaxPly + 1]int

	// Previous iteration's principal variation, searched first each
	// iteration.
	prevPV []board.Move
}

// NewSearcher creates a searcher with draw scoring at the given half-move
// threshold.
func NewSearcher(drawPlyThreshold int) *Searcher {
	return &Searcher{drawPlyThreshold: drawPlyThreshold}
}

// Reset prepares the searcher for a new search.
func (s *Searcher) Reset() {
	s.nodes = 0
	s.stopFlag.Store(false)
	s.deadline = time.Time{}
	s.prevPV = nil
}

// Stop requests cancellation. Safe to call from another goroutine.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Stopped reports whether the search was cancelled or ran out of time.
func (s *Searcher) Stopped() bool {
	return s.stopFlag.Load()
}

// Nodes returns the number of nodes visited so far.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// SetDeadline sets the wall-clock time at which the search stops itself.
func (s *Searcher) SetDeadline(t time.Time) {
	s.deadline = t
}

// PV returns the principal variation of the last completed search.
func (s *Searcher) PV() []board.Move {
	pv := make([]board.Move, len(s.prevPV))
	copy(pv, s.prevPV)
	return pv
}

// Search runs a full-window alpha-beta search to the given depth and
// returns the best move and its score from the side to move's view.
// If the search is stopped partway the result is unreliable and the
// caller must discard it.
func (s *Searcher) Search(pos *board.Position, depth int) (board.Move, int) {
	score := s.negamax(pos, depth, 0, -Infinity, Infinity, true)
	if s.stopFlag.Load() {
		return board.NoMove, 0
	}

	s.prevPV = make([]board.Move, s.pvLength[0])
	copy(s.prevPV, s.pvTable[0][:s.pvLength[0]])

	if s.pvLength[0] == 0 {
		return board.NoMove, score
	}
	return s.pvTable[0][0], score
}

// negamax is plain alpha-beta. onPV is true while the node lies
// on the previous iteration's principal variation, which is then tried
// first.
func (s *Searcher) negamax(pos *board.Position, depth, ply, alpha, beta int, onPV bool) int {
	s.pvLength[ply] = ply

	s.nodes++
	if s.nodes%nodesPerTimeCheck == 0 && !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopFlag.Store(true)
	}
	if s.stopFlag.Load() {
		return 0
	}

	moves := pos.GenerateLegalMoves()

	// Terminal states bind before the draw rule and before the depth
	// horizon.
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -(MateScore - ply)
		}
		return 0
	}
	if s.drawPlyThreshold > 0 && pos.HalfMoveClock >= s.drawPlyThreshold {
		return 0
	}

	if depth <= 0 || ply >= MaxPly {
		return s.evaluate(pos)
	}

	pvMove := board.NoMove
	if onPV && ply < len(s.prevPV) {
		pvMove = s.prevPV[ply]
	}
	if s.ordering == OrderStatic {
		movePVFirst(moves, pvMove)
	} else {
		orderMoves(pos, moves, pvMove)
	}

	best := -Infinity
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1, ply+1, -beta, -alpha, onPV && m == pvMove)
		pos.UnmakeMove(m, undo)

		if s.stopFlag.Load() {
			return 0
		}

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			s.pvTable[ply][ply] = m
			for j := ply + 1; j < s.pvLength[ply+1]; j++ {
				s.pvTable[ply][j] = s.pvTable[ply+1][j]
			}
			s.pvLength[ply] = s.pvLength[ply+1]
		}
		if alpha >= beta {
			break
		}
	}

	return best
}

// evaluate returns the static evaluation from the side to move's view.
func (s *Searcher) evaluate(pos *board.Position) int {
	score := Evaluate(pos)
	if pos.SideToMove == board.Black {
		return -score
	}
	return score
}
