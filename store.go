package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var sessionIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// isValidSessionID reports whether the ID has UUID shape. Anything else is
// refused before it can influence a file path.
func isValidSessionID(sessionID string) bool {
	return sessionIDPattern.MatchString(sessionID)
}

// getSecureSessionPath resolves the snapshot path for a session ID, refusing
// IDs that would escape the sessions directory.
func (app *App) getSecureSessionPath(sessionID string) (string, error) {
	if !isValidSessionID(sessionID) {
		return "", fmt.Errorf("invalid session ID: %q", sessionID)
	}
	path := filepath.Join(app.SessionDir, sessionID+".json")
	if filepath.Dir(path) != filepath.Clean(app.SessionDir) {
		return "", fmt.Errorf("session path escapes sessions directory: %q", sessionID)
	}
	return path, nil
}

// saveGameSessionToFile persists a session snapshot to disk. Writes are
// last-write-wins; a single player's inputs are serialized upstream.
func (app *App) saveGameSessionToFile(sessionID string, game *GameState) error {
	sessionFile, err := app.getSecureSessionPath(sessionID)
	if err != nil {
		logWarn("Skipping save for invalid session ID: %s", sessionID)
		return err
	}

	if err := os.MkdirAll(app.SessionDir, 0755); err != nil {
		logWarn("Failed to create sessions directory: %v", err)
		return err
	}

	data, err := json.MarshalIndent(game, "", "  ")
	if err != nil {
		logWarn("Failed to marshal game state for session %s: %v", sessionID, err)
		return err
	}

	if err := os.WriteFile(sessionFile, data, 0644); err != nil {
		logWarn("Failed to write session file %s: %v", sessionFile, err)
		return err
	}
	return nil
}

// loadGameSessionFromFile restores a session snapshot for the active day.
// Snapshots that are expired, corrupted, structurally invalid, or recorded
// for a different day index are removed and reported as missing; stale days
// are never migrated forward.
func (app *App) loadGameSessionFromFile(sessionID string, dayIndex int) (*GameState, error) {
	sessionFile, err := app.getSecureSessionPath(sessionID)
	if err != nil {
		return nil, os.ErrNotExist
	}

	info, err := os.Stat(sessionFile)
	if err != nil {
		return nil, err
	}

	if age := time.Since(info.ModTime()); age > app.SessionTimeout {
		logInfo("Session file too old (%v, max %v), removing: %s", age, app.SessionTimeout, sessionFile)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(sessionFile)
	if err != nil {
		logWarn("Failed to read session file %s: %v", sessionFile, err)
		return nil, err
	}

	var game GameState
	if err := json.Unmarshal(data, &game); err != nil {
		logWarn("Session file %s is corrupted, removing: %v", sessionFile, err)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	if game.DayIndex != dayIndex {
		logInfo("Session file %s is for day %d, active day is %d, discarding", sessionFile, game.DayIndex, dayIndex)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	if len(game.Guesses) > MaxGuesses || !isValidGameStateValue(game.State) {
		logWarn("Session file %s has invalid structure (guesses: %d, state: %q), removing", sessionFile, len(game.Guesses), game.State)
		os.Remove(sessionFile)
		return nil, os.ErrNotExist
	}

	game.LastAccessTime = time.Now()
	return &game, nil
}

// isValidGameStateValue checks a persisted state string against the known
// state machine states.
func isValidGameStateValue(state string) bool {
	return state == StatePlaying || state == StateWon || state == StateLost
}

// cleanupOldSessionFiles removes snapshot files older than maxAge.
func (app *App) cleanupOldSessionFiles(maxAge time.Duration) error {
	entries, err := os.ReadDir(app.SessionDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logWarn("Failed to stat session file %s: %v", entry.Name(), err)
			continue
		}
		if info.ModTime().Before(cutoff) {
			sessionFile := filepath.Join(app.SessionDir, entry.Name())
			if err := os.Remove(sessionFile); err != nil {
				logWarn("Failed to remove old session file %s: %v", sessionFile, err)
			} else {
				removed++
			}
		}
	}
	if removed > 0 {
		logInfo("Removed %d expired session files", removed)
	}
	return nil
}
