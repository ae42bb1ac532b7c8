package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

var (
	errNameRequired    = errors.New(ErrorNameRequired)
	errNameTooLong     = errors.New(ErrorNameTooLong)
	errTriesOutOfRange = errors.New(ErrorTriesOutOfRange)
)

// Leaderboard aggregates one completion record per (day index, name) and
// persists the standings as a JSON file so they survive restarts. Days are
// fully independent: entries are addressed solely by their own day index and
// never rolled or merged across day boundaries.
type Leaderboard struct {
	mu   sync.Mutex
	days map[int][]*LeaderboardEntry
	file string
}

// newLeaderboard creates an empty leaderboard backed by the given file.
func newLeaderboard(file string) *Leaderboard {
	return &Leaderboard{
		days: make(map[int][]*LeaderboardEntry),
		file: file,
	}
}

// load reads persisted standings from disk. A missing file is an empty board.
func (lb *Leaderboard) load() error {
	data, err := os.ReadFile(lb.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var stored map[string][]*LeaderboardEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	for key, entries := range stored {
		dayIndex, err := strconv.Atoi(key)
		if err != nil {
			logWarn("Skipping leaderboard bucket with invalid day key: %q", key)
			continue
		}
		lb.days[dayIndex] = entries
	}
	return nil
}

// validateSubmission trims the name and checks submission bounds, returning
// the trimmed name. Whitespace around names is dropped silently.
func validateSubmission(name string, tries int) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errNameRequired
	}
	if len(trimmed) > MaxNameLength {
		return "", errNameTooLong
	}
	if tries < 1 || tries > MaxGuesses {
		return "", errTriesOutOfRange
	}
	return trimmed, nil
}

// Upsert inserts or replaces the entry for (dayIndex, name) and returns the
// ranked standings for that day. A replacement keeps the entry's original
// submission slot, so ordering between equal scores stays stable.
func (lb *Leaderboard) Upsert(dayIndex int, name string, tries int, won bool) ([]LeaderboardEntry, error) {
	trimmed, err := validateSubmission(name, tries)
	if err != nil {
		return nil, err
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	entry, found := lo.Find(lb.days[dayIndex], func(e *LeaderboardEntry) bool {
		return e.Name == trimmed
	})
	if found {
		entry.Tries = tries
		entry.Won = won
		entry.Timestamp = time.Now()
	} else {
		lb.days[dayIndex] = append(lb.days[dayIndex], &LeaderboardEntry{
			Name:      trimmed,
			Tries:     tries,
			Won:       won,
			Timestamp: time.Now(),
		})
	}

	if err := lb.persistLocked(); err != nil {
		logWarn("Failed to persist leaderboard: %v", err)
	}
	return lb.rankedLocked(dayIndex), nil
}

// List returns the ranked standings for a day.
func (lb *Leaderboard) List(dayIndex int) []LeaderboardEntry {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.rankedLocked(dayIndex)
}

// rankedLocked copies a day's entries and sorts them: winners before losers,
// then ascending tries, ties kept in submission order. Caller holds lb.mu.
func (lb *Leaderboard) rankedLocked(dayIndex int) []LeaderboardEntry {
	entries := lo.Map(lb.days[dayIndex], func(e *LeaderboardEntry, _ int) LeaderboardEntry {
		return *e
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Won != entries[j].Won {
			return entries[i].Won
		}
		return entries[i].Tries < entries[j].Tries
	})
	return entries
}

// persistLocked writes all days to the backing file. Caller holds lb.mu.
func (lb *Leaderboard) persistLocked() error {
	stored := make(map[string][]*LeaderboardEntry, len(lb.days))
	for dayIndex, entries := range lb.days {
		stored[strconv.Itoa(dayIndex)] = entries
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(lb.file); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(lb.file, data, 0644)
}
