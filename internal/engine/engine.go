package engine

import (
	"errors"
	"fmt"
	"time"

	"chessmate/internal/board"
	"chessmate/internal/book"
)

var (
	// ErrNoLegalMoves is returned when asked for a move in a position
	// where the side to move has none.
	ErrNoLegalMoves = errors.New("no legal moves in position")

	// ErrDrawnPosition is returned when asked for a move in a position
	// already drawn under the configured draw threshold.
	ErrDrawnPosition = errors.New("position is already drawn")
)

// SearchLimits specifies constraints on a search.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = no limit)
	MoveTime time.Duration // Time budget for this move (0 = no limit)
}

// Ordering selects the move ordering heuristic. Ordering changes search
// speed, never the chosen move.
type Ordering int

const (
	// OrderCaptures tries captures and promotions first, MVV-LVA.
	OrderCaptures Ordering = iota
	// OrderStatic keeps the generator's order.
	OrderStatic
)

// Config configures an Engine at construction.
type Config struct {
	MaxDepth         int           // depth ceiling; 0 uses the difficulty tier's
	TimeBudget       time.Duration // per-move budget; 0 uses the difficulty tier's
	Ordering         Ordering      // move ordering heuristic
	DrawPlyThreshold int           // half-move clock value scored as a draw; 0 disables
}

// Difficulty represents the AI playing strength.
type Difficulty int

const (
	Easy   Difficulty = iota // shallow and quick
	Medium                   // club player
	Hard                     // takes its time
)

var difficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 4, MoveTime: 2 * time.Second},
	Hard:   {Depth: 6, MoveTime: 5 * time.Second},
}

// Limits returns the search limits for the difficulty tier. The returned
// value is a copy; mutating it does not affect other engines.
func (d Difficulty) Limits() SearchLimits {
	return difficultySettings[d]
}

// ParseDifficulty converts a difficulty name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Medium, fmt.Errorf("unknown difficulty %q", s)
	}
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// SearchInfo reports progress after each completed iteration.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// SearchResult is the outcome of move selection.
type SearchResult struct {
	Move     board.Move
	Score    int // from the side to move's view, centipawns
	Depth    int // deepest fully completed iteration
	Nodes    uint64
	FromBook bool
}

// Engine selects moves for a position. Not safe for concurrent searches;
// Stop may be called from any goroutine.
type Engine struct {
	searcher   *Searcher
	cfg        Config
	difficulty Difficulty
	book       *book.Book

	// OnInfo, if set, is called after every completed iteration.
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	s := NewSearcher(cfg.DrawPlyThreshold)
	s.ordering = cfg.Ordering
	return &Engine{
		searcher:   s,
		cfg:        cfg,
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine playing strength.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// SetBook gives the engine an opening book to probe before searching.
// A nil book disables probing.
func (e *Engine) SetBook(b *book.Book) {
	e.book = b
}

// SetOrdering switches the move ordering heuristic.
func (e *Engine) SetOrdering(o Ordering) {
	e.cfg.Ordering = o
	e.searcher.ordering = o
}

// ParseOrdering converts an ordering name to an Ordering.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "captures":
		return OrderCaptures, nil
	case "static":
		return OrderStatic, nil
	default:
		return OrderCaptures, fmt.Errorf("unknown ordering %q", s)
	}
}

// Stop cancels a search in progress. The search still returns its best
// move from the last completed iteration.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// ChooseMove selects a move using the configured difficulty tier, with
// the Config's explicit ceiling and budget taking precedence where set.
func (e *Engine) ChooseMove(pos *board.Position) (SearchResult, error) {
	limits := e.difficulty.Limits()
	if e.cfg.MaxDepth > 0 {
		limits.Depth = e.cfg.MaxDepth
	}
	if e.cfg.TimeBudget > 0 {
		limits.MoveTime = e.cfg.TimeBudget
	}
	return e.ChooseMoveWithLimits(pos, limits)
}

// ChooseMoveWithLimits selects a move under explicit limits. The position
// is not modified. Iterative deepening makes the result anytime: when the
// budget runs out mid-iteration, the move from the last completed depth
// is returned.
func (e *Engine) ChooseMoveWithLimits(pos *board.Position, limits SearchLimits) (SearchResult, error) {
	if !pos.HasLegalMoves() {
		return SearchResult{}, fmt.Errorf("%w: %s", ErrNoLegalMoves, pos.ToFEN())
	}
	if e.cfg.DrawPlyThreshold > 0 && pos.HalfMoveClock >= e.cfg.DrawPlyThreshold {
		return SearchResult{}, fmt.Errorf("%w: %s", ErrDrawnPosition, pos.ToFEN())
	}

	// The search mutates its working copy; the caller's position stays
	// untouched.
	work := pos.Copy()

	if e.book != nil {
		if m, ok := e.book.Probe(work); ok {
			return SearchResult{Move: m, FromBook: true}, nil
		}
	}

	e.searcher.Reset()

	start := time.Now()
	if limits.MoveTime > 0 {
		e.searcher.SetDeadline(start.Add(limits.MoveTime))
	}

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	var result SearchResult
	for depth := 1; depth <= maxDepth; depth++ {
		move, score := e.searcher.Search(work, depth)
		if e.searcher.Stopped() {
			break
		}

		result = SearchResult{
			Move:  move,
			Score: score,
			Depth: depth,
			Nodes: e.searcher.Nodes(),
		}

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(start),
				PV:    e.searcher.PV(),
			})
		}

		// A forced mate found now cannot improve with more depth.
		if score > MateScore-MaxPly || score < -(MateScore-MaxPly) {
			break
		}

		// Starting an iteration that cannot finish wastes the budget;
		// each iteration costs more than everything before it.
		if limits.MoveTime > 0 {
			elapsed := time.Since(start)
			if limits.MoveTime-elapsed < elapsed {
				break
			}
		}
	}

	if result.Move == board.NoMove {
		// Depth 1 did not complete inside the budget. Fall back to an
		// uncancellable depth-1 pass so a legal move always comes back.
		e.searcher.Reset()
		move, score := e.searcher.Search(work, 1)
		result = SearchResult{Move: move, Score: score, Depth: 1, Nodes: e.searcher.Nodes()}
	}

	return result, nil
}

// Evaluate returns the static evaluation of a position from White's view.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ScoreToString renders a score the way players read it: pawns for
// ordinary positions, moves-to-mate for forced mates.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return fmt.Sprintf("mate in %d", (MateScore-score+1)/2)
	}
	if score < -(MateScore - MaxPly) {
		return fmt.Sprintf("mated in %d", (MateScore+score+1)/2)
	}
	return fmt.Sprintf("%+.2f", float64(score)/100)
}
