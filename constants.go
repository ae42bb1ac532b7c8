package main

// Game configuration constants
const (
	MaxGuesses = 6 // Maximum number of guesses per day
	WordLength = 6 // Length of the daily word
)

// Daily puzzle anchor. Day index 0 is the epoch date in the canonical
// timezone; every instance derives the same index from its own clock.
const (
	EpochDate    = "2024-01-01"
	TimezoneName = "America/New_York"
)

// Guess status constants
const (
	GuessStatusCorrect = "correct"
	GuessStatusPresent = "present"
	GuessStatusAbsent  = "absent"
)

// Game state constants
const (
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteRoot        = "/"
	RouteDailyCheck  = "/daily-word-check"
	RouteValidate    = "/validate"
	RouteGuess       = "/guess"
	RouteGameState   = "/game-state"
	RouteLeaderboard = "/leaderboard"
	RouteHealthz     = "/healthz"
)

// Error message constants
const (
	ErrorGameOver        = "Game is over."
	ErrorInvalidLength   = "Word must be 6 letters."
	ErrorNotInWordList   = "Word not recognised."
	ErrorDuplicateGuess  = "Word already guessed."
	ErrorNameRequired    = "Name must not be empty."
	ErrorNameTooLong     = "Name must be 20 characters or fewer."
	ErrorTriesOutOfRange = "Tries must be between 1 and 6."
)

// Leaderboard limits
const (
	MaxNameLength = 20
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
