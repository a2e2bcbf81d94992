package storage

import (
	"testing"
	"time"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Difficulty != "medium" || prefs.DrawPlyThreshold != 10 || !prefs.UseBook {
		t.Errorf("unexpected defaults: %+v", prefs)
	}

	prefs.Difficulty = "hard"
	prefs.PlayerColor = "black"
	prefs.DrawPlyThreshold = 20
	prefs.UseBook = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	loaded, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if loaded.Difficulty != "hard" || loaded.PlayerColor != "black" ||
		loaded.DrawPlyThreshold != 20 || loaded.UseBook {
		t.Errorf("loaded = %+v, want saved values back", loaded)
	}
	if loaded.LastPlayed.IsZero() {
		t.Error("LastPlayed not stamped on save")
	}
}

func TestRecordGame(t *testing.T) {
	s := openTestStorage(t)

	results := []Result{
		{Won: true, Difficulty: "easy", Duration: time.Minute},
		{Won: true, Difficulty: "medium", Duration: 2 * time.Minute},
		{Draw: true, Difficulty: "medium", Duration: time.Minute},
		{Won: false, Difficulty: "hard", Duration: 3 * time.Minute},
		{Won: true, Difficulty: "medium", Duration: time.Minute},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}

	if stats.GamesPlayed != 5 || stats.Wins != 3 || stats.Losses != 1 || stats.Draws != 1 {
		t.Errorf("totals = %d/%d/%d/%d, want 5/3/1/1",
			stats.GamesPlayed, stats.Wins, stats.Losses, stats.Draws)
	}
	if stats.WinsByDiff["medium"] != 2 {
		t.Errorf("medium wins = %d, want 2", stats.WinsByDiff["medium"])
	}
	if stats.LongestStreak != 2 {
		t.Errorf("longest streak = %d, want 2", stats.LongestStreak)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("current streak = %d, want 1", stats.CurrentStreak)
	}
	if stats.TotalPlayTime != 8*time.Minute {
		t.Errorf("total play time = %v, want 8m", stats.TotalPlayTime)
	}
	if stats.WinRate() != 60 {
		t.Errorf("win rate = %.1f, want 60", stats.WinRate())
	}
}

func TestEmptyStats(t *testing.T) {
	s := openTestStorage(t)

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 0 || stats.WinRate() != 0 {
		t.Errorf("fresh stats not empty: %+v", stats)
	}
}
