package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || !isValidSessionID(sessionID) {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// sessionLock returns the mutex serializing state changes for one session, so
// racing requests cannot interleave a read-evaluate-append on the same game.
func (app *App) sessionLock(sessionID string) *sync.Mutex {
	app.LockMapMutex.Lock()
	defer app.LockMapMutex.Unlock()
	if mu, ok := app.SessionLocks[sessionID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	app.SessionLocks[sessionID] = mu
	return mu
}

// getGameState returns the session's game for the active day, restoring it
// from the snapshot store when possible. A cached or persisted game whose day
// index no longer matches is discarded and a fresh one created.
func (app *App) getGameState(sessionID string, dayIndex int) *GameState {
	app.SessionMutex.RLock()
	game, exists := app.GameSessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists && game.DayIndex == dayIndex {
		app.SessionMutex.Lock()
		game.LastAccessTime = time.Now()
		app.SessionMutex.Unlock()
		return game
	}
	if exists {
		logInfo("Session %s holds stale day %d, active day is %d", sessionID, game.DayIndex, dayIndex)
	}

	if restored, err := app.loadGameSessionFromFile(sessionID, dayIndex); err == nil {
		app.SessionMutex.Lock()
		app.GameSessions[sessionID] = restored
		app.SessionMutex.Unlock()
		logInfo("Restored session %s for day %d from disk", sessionID, dayIndex)
		return restored
	}

	logInfo("Creating new game for session: %s (day %d)", sessionID, dayIndex)
	game = newGame(dayIndex)
	app.SessionMutex.Lock()
	app.GameSessions[sessionID] = game
	app.SessionMutex.Unlock()
	return game
}

// saveGameState updates the in-memory state and writes the snapshot through
// to disk so losing the process never loses progress.
func (app *App) saveGameState(sessionID string, game *GameState) {
	app.SessionMutex.Lock()
	app.GameSessions[sessionID] = game
	game.LastAccessTime = time.Now()
	app.SessionMutex.Unlock()
	if err := app.saveGameSessionToFile(sessionID, game); err != nil {
		logWarn("Failed to persist session %s: %v", sessionID, err)
	}
}

// cleanupIdleSessions drops in-memory sessions that have not been touched
// within the session timeout.
func (app *App) cleanupIdleSessions() int {
	cutoff := time.Now().Add(-app.SessionTimeout)
	removed := 0
	app.SessionMutex.Lock()
	for sessionID, game := range app.GameSessions {
		if game.LastAccessTime.IsZero() || game.LastAccessTime.Before(cutoff) {
			delete(app.GameSessions, sessionID)
			removed++
		}
	}
	app.SessionMutex.Unlock()
	if removed > 0 {
		logInfo("Cleaned up %d idle in-memory sessions", removed)
	}
	return removed
}

// startSessionCleanupScheduler periodically evicts idle sessions and expired
// snapshot files until the context is cancelled.
func (app *App) startSessionCleanupScheduler(ctx context.Context) {
	interval := app.SessionTimeout / 2
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.cleanupIdleSessions()
			if err := app.cleanupOldSessionFiles(app.SessionTimeout); err != nil {
				logWarn("Session file cleanup failed: %v", err)
			}
		}
	}
}
