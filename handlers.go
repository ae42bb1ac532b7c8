package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type guessRequest struct {
	Guess string `json:"guess"`
}

type leaderboardRequest struct {
	Name  string `json:"name"`
	Tries int    `json:"tries"`
	Won   bool   `json:"won"`
}

// rootHandler is a liveness blurb for the bare domain.
func (app *App) rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "67dle API is running"})
}

// dailyWordCheckHandler tells the client which day's puzzle is active.
// Read-only: the response depends on nothing but the server clock.
func (app *App) dailyWordCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"day_index": app.dayIndex(time.Now())})
}

// validateHandler pre-checks a word against the dictionary without touching
// any session state.
func (app *App) validateHandler(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	guess := normalizeGuess(req.Guess)
	c.JSON(http.StatusOK, gin.H{"is_valid": app.isAcceptedWord(guess)})
}

// guessHandler scores a guess against the daily solution and advances the
// caller's session. The solution leaves the server only inside verdicts, or
// in full on the transition to lost.
func (app *App) guessHandler(c *gin.Context) {
	var req guessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sessionID := app.getOrCreateSession(c)
	dayIndex := app.dayIndex(time.Now())

	lock := app.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	game := app.getGameState(sessionID, dayIndex)
	guess := normalizeGuess(req.Guess)
	logInfo("Session %s guessed: %s (attempt %d/%d, day %d)", sessionID, guess, len(game.Guesses)+1, MaxGuesses, dayIndex)

	result, err := app.applyGuess(game, guess)
	switch {
	case errors.Is(err, errGameOver):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, errNotInWordList):
		c.JSON(http.StatusOK, gin.H{"is_valid_word": false, "game_state": game.State})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app.saveGameState(sessionID, game)

	resp := gin.H{
		"is_valid_word": true,
		"result":        result,
		"game_state":    game.State,
	}
	if game.State == StateLost {
		resp["solution"] = game.Solution
	}
	c.JSON(http.StatusOK, resp)
}

// gameStateHandler returns the caller's snapshot for the active day, with
// per-letter keyboard hints folded from the guess history.
func (app *App) gameStateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	dayIndex := app.dayIndex(time.Now())

	lock := app.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	game := app.getGameState(sessionID, dayIndex)
	resp := gin.H{
		"day_index":      game.DayIndex,
		"guesses":        game.Guesses,
		"game_state":     game.State,
		"keyboard":       keyboardHints(game),
		"submitted_name": game.SubmittedName,
	}
	if game.State == StateLost {
		resp["solution"] = game.Solution
	}
	c.JSON(http.StatusOK, resp)
}

// leaderboardGetHandler returns the standings for the active day.
func (app *App) leaderboardGetHandler(c *gin.Context) {
	dayIndex := app.dayIndex(time.Now())
	c.JSON(http.StatusOK, gin.H{
		"day_index": dayIndex,
		"entries":   app.Leaderboard.List(dayIndex),
	})
}

// leaderboardPostHandler upserts the caller's completion record for the
// active day and returns the standings after the upsert. Tries and the win
// flag are display metadata only; the day index is always the server's own.
func (app *App) leaderboardPostHandler(c *gin.Context) {
	var req leaderboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dayIndex := app.dayIndex(time.Now())
	entries, err := app.Leaderboard.Upsert(dayIndex, req.Name, req.Tries, req.Won)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Remember which name this session already submitted so the client can
	// skip re-prompting for it.
	if sessionID, cerr := c.Cookie(SessionCookieName); cerr == nil && isValidSessionID(sessionID) {
		lock := app.sessionLock(sessionID)
		lock.Lock()
		game := app.getGameState(sessionID, dayIndex)
		game.SubmittedName = strings.TrimSpace(req.Name)
		app.saveGameState(sessionID, game)
		lock.Unlock()
	}

	c.JSON(http.StatusOK, gin.H{"day_index": dayIndex, "entries": entries})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"env":            map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_loaded":   len(app.SolutionWords),
		"accepted_words": len(app.AcceptedWordSet),
		"day_index":      app.dayIndex(time.Now()),
		"uptime":         formatUptime(uptime),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// normalizeGuess trims and uppercases a guess string for comparison.
func normalizeGuess(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}
