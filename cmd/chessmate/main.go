// Command chessmate plays chess against the built-in engine in the
// terminal. Moves are entered in coordinate notation (e2e4, e7e8q).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chessmate/internal/board"
	"chessmate/internal/book"
	"chessmate/internal/engine"
	"chessmate/internal/game"
	"chessmate/internal/storage"
)

func main() {
	var (
		fen        = flag.String("fen", board.StartFEN, "starting position in FEN")
		difficulty = flag.String("difficulty", "", "engine strength: easy, medium, hard")
		color      = flag.String("color", "", "color to play: white, black")
		depth      = flag.Int("depth", 0, "override engine search depth")
		moveTime   = flag.Duration("movetime", 0, "override engine time budget per move")
		drawPlies  = flag.Int("draw-plies", 0, "half-moves without capture or pawn move before a draw (default 10)")
		ordering   = flag.String("ordering", "captures", "move ordering heuristic: captures, static")
		noBook     = flag.Bool("no-book", false, "disable the opening book")
		perftDepth = flag.Int("perft", 0, "run a perft count to this depth and exit")
		debug      = flag.Bool("debug", false, "log search details")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if *perftDepth > 0 {
		runPerft(log, *fen, *perftDepth)
		return
	}

	// Stored preferences fill in whatever the flags leave unset.
	prefs := storage.DefaultPreferences()
	store, err := storage.Open()
	if err != nil {
		log.Warn().Err(err).Msg("preferences unavailable, using defaults")
		store = nil
	} else {
		defer store.Close()
		if p, err := store.LoadPreferences(); err == nil {
			prefs = p
		} else {
			log.Warn().Err(err).Msg("could not load preferences")
		}
	}
	if *difficulty != "" {
		prefs.Difficulty = *difficulty
	}
	if *color != "" {
		prefs.PlayerColor = *color
	}
	if *drawPlies > 0 {
		prefs.DrawPlyThreshold = *drawPlies
	}
	if *noBook {
		prefs.UseBook = false
	}

	diff, err := engine.ParseDifficulty(prefs.Difficulty)
	if err != nil {
		log.Fatal().Err(err).Msg("bad difficulty")
	}
	playerColor := board.White
	if prefs.PlayerColor == "black" {
		playerColor = board.Black
	} else if prefs.PlayerColor != "white" && prefs.PlayerColor != "" {
		log.Fatal().Str("color", prefs.PlayerColor).Msg("bad color")
	}

	rule := game.DrawRule{PlyThreshold: prefs.DrawPlyThreshold}
	g, err := game.NewFromFEN(*fen, rule)
	if err != nil {
		log.Fatal().Err(err).Msg("bad position")
	}

	ord, err := engine.ParseOrdering(*ordering)
	if err != nil {
		log.Fatal().Err(err).Msg("bad ordering")
	}

	g.Engine().SetDifficulty(diff)
	g.Engine().SetOrdering(ord)
	if prefs.UseBook {
		b, err := book.New()
		if err != nil {
			log.Fatal().Err(err).Msg("opening book failed to build")
		}
		g.Engine().SetBook(b)
	}
	if *debug {
		g.Engine().OnInfo = func(info engine.SearchInfo) {
			log.Debug().
				Int("depth", info.Depth).
				Str("score", engine.ScoreToString(info.Score)).
				Uint64("nodes", info.Nodes).
				Dur("time", info.Time).
				Msg("iteration")
		}
	}

	limits := diff.Limits()
	if *depth > 0 {
		limits.Depth = *depth
	}
	if *moveTime > 0 {
		limits.MoveTime = *moveTime
	}

	log.Info().
		Str("difficulty", diff.String()).
		Str("player", playerColor.String()).
		Int("draw_plies", prefs.DrawPlyThreshold).
		Bool("book", prefs.UseBook).
		Msg("game started")

	start := time.Now()
	status := play(log, g, playerColor, limits)
	reportResult(log, status, g, playerColor)

	if store != nil && status.IsGameOver() {
		result := storage.Result{
			Draw:       status == game.Stalemate || status == game.Draw,
			Won:        status == game.Checkmate && g.SideToMove() != playerColor,
			Difficulty: diff.String(),
			Duration:   time.Since(start),
		}
		if err := store.RecordGame(result); err != nil {
			log.Warn().Err(err).Msg("could not record game")
		}
		if err := store.SavePreferences(prefs); err != nil {
			log.Warn().Err(err).Msg("could not save preferences")
		}
	}
}

// play runs the move loop until the game ends or the player quits.
func play(log zerolog.Logger, g *game.Game, playerColor board.Color, limits engine.SearchLimits) game.Status {
	reader := bufio.NewScanner(os.Stdin)

	for {
		status := g.Status()
		if status.IsGameOver() {
			fmt.Println(g.Position())
			return status
		}

		if g.SideToMove() != playerColor {
			result, err := g.Engine().ChooseMoveWithLimits(g.Position(), limits)
			if err != nil {
				log.Fatal().Err(err).Msg("engine failed")
			}
			san := g.Position().ToSAN(result.Move)
			if err := g.ApplyMove(result.Move); err != nil {
				log.Fatal().Err(err).Stringer("move", result.Move).Msg("engine played an illegal move")
			}
			ev := log.Info().Str("move", san)
			if result.FromBook {
				ev = ev.Bool("book", true)
			} else {
				ev = ev.Str("score", engine.ScoreToString(result.Score)).
					Int("depth", result.Depth).
					Uint64("nodes", result.Nodes)
			}
			ev.Msg("engine move")
			continue
		}

		fmt.Println(g.Position())
		if status == game.Check {
			fmt.Println("You are in check.")
		}
		fmt.Print("your move> ")
		if !reader.Scan() {
			return status
		}
		input := strings.TrimSpace(reader.Text())

		switch input {
		case "":
			continue
		case "quit", "exit", "resign":
			return status
		case "fen":
			fmt.Println(g.Position().ToFEN())
			continue
		case "moves":
			moves := g.LegalMoves()
			for i := 0; i < moves.Len(); i++ {
				fmt.Printf("%s ", moves.Get(i))
			}
			fmt.Println()
			continue
		case "hint":
			result, err := g.Engine().ChooseMoveWithLimits(g.Position(), limits)
			if err == nil {
				fmt.Printf("try %s\n", result.Move)
			}
			continue
		case "eval":
			fmt.Println(engine.ScoreToString(g.Engine().Evaluate(g.Position())))
			continue
		case "history":
			for i, entry := range g.Record() {
				if i%2 == 0 {
					fmt.Printf("%d. %s", i/2+1, entry.SAN)
				} else {
					fmt.Printf(" %s\n", entry.SAN)
				}
			}
			fmt.Println()
			continue
		}

		if err := g.ApplyCoords(input); err != nil {
			fmt.Printf("%v (type 'moves' to list legal moves)\n", err)
		}
	}
}

func reportResult(log zerolog.Logger, status game.Status, g *game.Game, playerColor board.Color) {
	switch status {
	case game.Checkmate:
		if g.SideToMove() == playerColor {
			log.Info().Msg("checkmate, you lose")
		} else {
			log.Info().Msg("checkmate, you win")
		}
	case game.Stalemate:
		log.Info().Msg("stalemate")
	case game.Draw:
		log.Info().Int("half_moves", g.Position().HalfMoveClock).Msg("drawn by the move-count rule")
	default:
		log.Info().Msg("game abandoned")
	}
}

func runPerft(log zerolog.Logger, fen string, depth int) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatal().Err(err).Msg("bad position")
	}

	for d := 1; d <= depth; d++ {
		start := time.Now()
		nodes := pos.Perft(d)
		elapsed := time.Since(start)
		nps := float64(nodes) / elapsed.Seconds()
		log.Info().
			Int("depth", d).
			Uint64("nodes", nodes).
			Dur("time", elapsed).
			Float64("nps", nps).
			Msg("perft")
	}
}
