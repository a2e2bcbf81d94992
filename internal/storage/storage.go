// Package storage persists user preferences and game statistics in an
// embedded BadgerDB. Finished games are recorded as aggregate stats only;
// positions and move lists are not stored.
package storage

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// Preferences stores user settings between sessions.
type Preferences struct {
	Difficulty       string    `json:"difficulty"`   // easy, medium, hard
	PlayerColor      string    `json:"player_color"` // white, black
	DrawPlyThreshold int       `json:"draw_ply_threshold"`
	UseBook          bool      `json:"use_book"`
	LastPlayed       time.Time `json:"last_played"`
}

// DefaultPreferences returns the out-of-the-box settings.
func DefaultPreferences() *Preferences {
	return &Preferences{
		Difficulty:       "medium",
		PlayerColor:      "white",
		DrawPlyThreshold: 10,
		UseBook:          true,
	}
}

// Stats aggregates results of completed games from the human's side.
type Stats struct {
	GamesPlayed   int            `json:"games_played"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Draws         int            `json:"draws"`
	WinsByDiff    map[string]int `json:"wins_by_difficulty"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LongestStreak int            `json:"longest_win_streak"`
	CurrentStreak int            `json:"current_streak"`
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{WinsByDiff: make(map[string]int)}
}

// WinRate returns the win rate as a percentage.
func (s *Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// Result describes one finished game for the record.
type Result struct {
	Won        bool
	Draw       bool
	Difficulty string
	Duration   time.Duration
}

// Storage wraps BadgerDB.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in the default data directory.
func Open() (*Storage, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the database at an explicit directory. Used by tests.
func OpenAt(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences persists the preferences and stamps the play time.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences returns the stored preferences, or defaults if none
// were saved yet.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	if err := s.get(keyPreferences, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// LoadStats returns the stored statistics, or empty stats.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := NewStats()
	if err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecordGame folds one finished game into the statistics.
func (s *Storage) RecordGame(result Result) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration

	switch {
	case result.Draw:
		stats.Draws++
		stats.CurrentStreak = 0
	case result.Won:
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestStreak {
			stats.LongestStreak = stats.CurrentStreak
		}
		stats.WinsByDiff[result.Difficulty]++
	default:
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.put(keyStats, stats)
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get unmarshals the value at key into v; a missing key leaves v alone.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
