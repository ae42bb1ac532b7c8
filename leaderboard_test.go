package main

import (
	"path/filepath"
	"testing"
)

// TestUpsert_ReplacesSameName checks resubmission under the same name leaves
// exactly one entry with the latest values
func TestUpsert_ReplacesSameName(t *testing.T) {
	lb := newLeaderboard(filepath.Join(t.TempDir(), "leaderboard.json"))

	if _, err := lb.Upsert(10, "Ann", 3, true); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	entries, err := lb.Upsert(10, "Ann", 5, false)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want exactly 1 for Ann", len(entries))
	}
	if entries[0].Name != "Ann" || entries[0].Tries != 5 || entries[0].Won {
		t.Errorf("entry = %+v, want Ann tries=5 won=false", entries[0])
	}
}

// TestUpsert_Ordering checks winners first, ascending tries, stable ties
func TestUpsert_Ordering(t *testing.T) {
	lb := newLeaderboard(filepath.Join(t.TempDir(), "leaderboard.json"))
	submissions := []struct {
		name  string
		tries int
		won   bool
	}{
		{"Cara", 4, true},
		{"Ben", 2, true},
		{"Dan", 6, false},
		{"Abe", 4, true},
		{"Eve", 1, false},
	}
	var entries []LeaderboardEntry
	var err error
	for _, s := range submissions {
		entries, err = lb.Upsert(3, s.name, s.tries, s.won)
		if err != nil {
			t.Fatalf("Upsert(%q) failed: %v", s.name, err)
		}
	}

	// Cara and Abe both won with 4 tries; Cara submitted first and must stay
	// ahead. Losers rank after every winner, ascending tries.
	want := []string{"Ben", "Cara", "Abe", "Eve", "Dan"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("rank %d = %q, want %q (full: %+v)", i, entries[i].Name, name, entries)
		}
	}
}

// TestUpsert_Validation checks submission bounds
func TestUpsert_Validation(t *testing.T) {
	lb := newLeaderboard(filepath.Join(t.TempDir(), "leaderboard.json"))
	tests := []struct {
		name    string
		tries   int
		wantErr error
	}{
		{"", 3, errNameRequired},
		{"   ", 3, errNameRequired},
		{"ABCDEFGHIJKLMNOPQRSTU", 3, errNameTooLong},
		{"Ann", 0, errTriesOutOfRange},
		{"Ann", MaxGuesses + 1, errTriesOutOfRange},
	}
	for _, tt := range tests {
		if _, err := lb.Upsert(1, tt.name, tt.tries, true); err != tt.wantErr {
			t.Errorf("Upsert(%q, %d) = %v, want %v", tt.name, tt.tries, err, tt.wantErr)
		}
	}
	if got := lb.List(1); len(got) != 0 {
		t.Errorf("rejected submissions were stored: %+v", got)
	}
}

// TestUpsert_TrimsName checks whitespace is dropped silently
func TestUpsert_TrimsName(t *testing.T) {
	lb := newLeaderboard(filepath.Join(t.TempDir(), "leaderboard.json"))
	if _, err := lb.Upsert(2, "  Ann  ", 3, true); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	entries, err := lb.Upsert(2, "Ann", 4, true)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Ann" || entries[0].Tries != 4 {
		t.Errorf("trimmed name did not collapse to one entry: %+v", entries)
	}
}

// TestList_DayIsolation checks day buckets never bleed into each other
func TestList_DayIsolation(t *testing.T) {
	lb := newLeaderboard(filepath.Join(t.TempDir(), "leaderboard.json"))
	if _, err := lb.Upsert(4, "Ann", 3, true); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := lb.Upsert(5, "Ben", 2, true); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	day4 := lb.List(4)
	day5 := lb.List(5)
	if len(day4) != 1 || day4[0].Name != "Ann" {
		t.Errorf("day 4 = %+v, want only Ann", day4)
	}
	if len(day5) != 1 || day5[0].Name != "Ben" {
		t.Errorf("day 5 = %+v, want only Ben", day5)
	}
	if got := lb.List(6); len(got) != 0 {
		t.Errorf("day 6 = %+v, want empty", got)
	}
}

// TestLeaderboard_PersistRoundtrip checks standings survive a restart
func TestLeaderboard_PersistRoundtrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "leaderboard.json")

	lb := newLeaderboard(file)
	if _, err := lb.Upsert(7, "Ann", 3, true); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := lb.Upsert(7, "Ben", 6, false); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	reloaded := newLeaderboard(file)
	if err := reloaded.load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	entries := reloaded.List(7)
	if len(entries) != 2 || entries[0].Name != "Ann" || entries[1].Name != "Ben" {
		t.Errorf("reloaded standings = %+v, want Ann then Ben", entries)
	}
}

// TestLeaderboard_LoadMissingFile checks a missing file is an empty board
func TestLeaderboard_LoadMissingFile(t *testing.T) {
	lb := newLeaderboard(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err := lb.load(); err != nil {
		t.Errorf("load of missing file = %v, want nil", err)
	}
	if got := lb.List(0); len(got) != 0 {
		t.Errorf("List after empty load = %+v, want empty", got)
	}
}
