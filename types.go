package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type contextKey string

// GuessResult represents a single letter's evaluation
type GuessResult struct {
	Letter string `json:"letter"`
	Status string `json:"status"` // "correct", "present" or "absent"
}

// GuessAttempt records one scored guess, appended in submission order.
type GuessAttempt struct {
	Word   string        `json:"word"`
	Result []GuessResult `json:"result"`
}

// GameState represents a player's session for one day index.
type GameState struct {
	DayIndex       int            `json:"dayIndex"`
	Guesses        []GuessAttempt `json:"guesses"`
	State          string         `json:"gameState"`          // "playing", "won" or "lost"
	Solution       string         `json:"solution,omitempty"` // set only once the game is lost
	SubmittedName  string         `json:"submittedName,omitempty"`
	LastAccessTime time.Time      `json:"lastAccessTime"`
}

// LeaderboardEntry is one player's completion record for a single day.
type LeaderboardEntry struct {
	Name      string    `json:"name"`
	Tries     int       `json:"tries"`
	Won       bool      `json:"won"`
	Timestamp time.Time `json:"timestamp"`
}

// App carries all runtime state for the server.
type App struct {
	SolutionWords   []string
	AcceptedWordSet map[string]struct{}
	Epoch           time.Time
	Location        *time.Location

	GameSessions map[string]*GameState
	SessionMutex sync.RWMutex
	SessionLocks map[string]*sync.Mutex
	LockMapMutex sync.Mutex

	Leaderboard *Leaderboard

	SessionDir string

	IsProduction   bool
	StartTime      time.Time
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	LimiterMap     map[string]*rate.Limiter
	LimiterMutex   sync.Mutex
}
