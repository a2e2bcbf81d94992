// Package game tracks a chess game in progress: rules arbitration, game
// state classification, move history, and the engine opponent.
package game

import (
	"errors"
	"fmt"

	"chessmate/internal/board"
	"chessmate/internal/engine"
)

var (
	// ErrInvalidMove is returned when a move is not legal in the current
	// position.
	ErrInvalidMove = errors.New("invalid move")

	// ErrGameOver is returned when a move is attempted after the game
	// has ended.
	ErrGameOver = errors.New("game is over")
)

// Status classifies a position.
type Status int

const (
	Ongoing   Status = iota // game continues
	Check                   // game continues, side to move is in check
	Checkmate               // side to move is mated
	Stalemate               // side to move has no moves but is not in check
	Draw                    // drawn by the move-count rule
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// IsGameOver reports whether the status ends the game.
func (s Status) IsGameOver() bool {
	return s == Checkmate || s == Stalemate || s == Draw
}

// DrawRule configures the house draw rule: the game is drawn once
// PlyThreshold consecutive half-moves pass without a capture or pawn
// move. Checks do not reset the count.
type DrawRule struct {
	PlyThreshold int
}

// DefaultDrawRule draws after 10 quiet half-moves, five moves per side.
var DefaultDrawRule = DrawRule{PlyThreshold: 10}

// Classify determines the status of a position under the given draw rule.
// Mate and stalemate take precedence over the draw rule when both apply
// at once.
func Classify(pos *board.Position, rule DrawRule) Status {
	hasMoves := pos.HasLegalMoves()
	inCheck := pos.InCheck()

	switch {
	case !hasMoves && inCheck:
		return Checkmate
	case !hasMoves:
		return Stalemate
	case rule.PlyThreshold > 0 && pos.HalfMoveClock >= rule.PlyThreshold:
		return Draw
	case inCheck:
		return Check
	default:
		return Ongoing
	}
}

// HistoryEntry records one played move.
type HistoryEntry struct {
	Move board.Move
	SAN  string
	FEN  string // position after the move
}

// Game is a chess game session. It owns its position; callers mutate it
// only through ApplyMove and friends.
type Game struct {
	pos     *board.Position
	rule    DrawRule
	engine  *engine.Engine
	history []HistoryEntry
}

// New starts a game from the standard starting position.
func New(rule DrawRule) *Game {
	g, _ := NewFromFEN(board.StartFEN, rule)
	return g
}

// NewFromFEN starts a game from an arbitrary position.
func NewFromFEN(fen string, rule DrawRule) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		pos:    pos,
		rule:   rule,
		engine: engine.NewEngine(engine.Config{DrawPlyThreshold: rule.PlyThreshold}),
	}, nil
}

// Engine returns the game's engine for configuration.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position {
	return g.pos.Copy()
}

// SideToMove returns whose turn it is.
func (g *Game) SideToMove() board.Color {
	return g.pos.SideToMove
}

// Status classifies the current position.
func (g *Game) Status() Status {
	return Classify(g.pos, g.rule)
}

// ApplyMove plays a move. The move must be legal in the current position
// and the game must not be over.
func (g *Game) ApplyMove(m board.Move) error {
	if g.Status().IsGameOver() {
		return fmt.Errorf("%w (%s)", ErrGameOver, g.Status())
	}
	if !g.pos.GenerateLegalMoves().Contains(m) {
		return fmt.Errorf("%w: %s in %s", ErrInvalidMove, m, g.pos.ToFEN())
	}

	san := g.pos.ToSAN(m)
	g.pos.MakeMove(m)
	g.history = append(g.history, HistoryEntry{Move: m, SAN: san, FEN: g.pos.ToFEN()})
	return nil
}

// ApplyCoords plays a move given in coordinate notation ("e2e4",
// "e7e8q"). A promotion with no piece suffix promotes to a queen.
func (g *Game) ApplyCoords(s string) error {
	m, err := g.ParseCoords(s)
	if err != nil {
		return err
	}
	return g.ApplyMove(m)
}

// ParseCoords resolves coordinate notation against the current position
// without playing the move. Bare promotions default to queen.
func (g *Game) ParseCoords(s string) (board.Move, error) {
	m, err := board.ParseMove(s, g.pos)
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	legal := g.pos.GenerateLegalMoves()
	if legal.Contains(m) {
		return m, nil
	}

	// A 4-character promotion move parses as a normal move; retry it as
	// a queen promotion before giving up.
	if len(s) == 4 {
		if q := board.NewPromotion(m.From(), m.To(), board.Queen); legal.Contains(q) {
			return q, nil
		}
	}
	return board.NoMove, fmt.Errorf("%w: %s", ErrInvalidMove, s)
}

// LegalMoves returns all legal moves in the current position.
func (g *Game) LegalMoves() *board.MoveList {
	return g.pos.GenerateLegalMoves()
}

// LegalDestinations returns the squares reachable from the given square,
// for move hints. Promotions collapse to one destination.
func (g *Game) LegalDestinations(from board.Square) []board.Square {
	moves := g.pos.LegalMovesFrom(from)
	seen := make(map[board.Square]bool)
	var out []board.Square
	for i := 0; i < moves.Len(); i++ {
		to := moves.Get(i).To()
		if !seen[to] {
			seen[to] = true
			out = append(out, to)
		}
	}
	return out
}

// EngineMove asks the engine for a move and plays it.
func (g *Game) EngineMove() (engine.SearchResult, error) {
	if g.Status().IsGameOver() {
		return engine.SearchResult{}, fmt.Errorf("%w (%s)", ErrGameOver, g.Status())
	}
	result, err := g.engine.ChooseMove(g.pos)
	if err != nil {
		return engine.SearchResult{}, err
	}
	if err := g.ApplyMove(result.Move); err != nil {
		return engine.SearchResult{}, err
	}
	return result, nil
}

// PromotionCandidates returns the promotion moves available between two
// squares, empty when the move is not a promotion.
func (g *Game) PromotionCandidates(from, to board.Square) []board.Move {
	moves := g.pos.LegalMovesFrom(from)
	var out []board.Move
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.To() == to && m.IsPromotion() {
			out = append(out, m)
		}
	}
	return out
}

// Record returns the moves played so far, in order.
func (g *Game) Record() []HistoryEntry {
	out := make([]HistoryEntry, len(g.history))
	copy(out, g.history)
	return out
}

// LastMove returns the most recently played move, or NoMove at the start.
func (g *Game) LastMove() board.Move {
	if len(g.history) == 0 {
		return board.NoMove
	}
	return g.history[len(g.history)-1].Move
}

// PlyCount returns the number of half-moves played in this session.
func (g *Game) PlyCount() int {
	return len(g.history)
}
