package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// dayIndex returns the number of whole days between the epoch anchor and now,
// evaluated in the canonical timezone. Client clocks never participate in
// this computation.
func (app *App) dayIndex(now time.Time) int {
	y, m, d := now.In(app.Location).Date()
	ey, em, ed := app.Epoch.Date()
	// Compare civil dates as UTC midnights so DST transitions in the
	// canonical zone cannot skew the day count.
	cur := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	epoch := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(cur.Sub(epoch).Hours() / 24)
}

// solutionFor returns the solution word for a day index. The pick is seeded
// by the day index alone, so every process computes the same word for the
// same day across restarts and replicas.
func (app *App) solutionFor(dayIndex int) string {
	rng := rand.New(rand.NewSource(int64(dayIndex)))
	return app.SolutionWords[rng.Intn(len(app.SolutionWords))]
}

// validateDailyConfig fails fast on configuration that would make the daily
// puzzle ambiguous. Runs once at startup, never per request.
func (app *App) validateDailyConfig(now time.Time) error {
	if len(app.SolutionWords) == 0 {
		return errors.New("solution word list is empty")
	}
	if idx := app.dayIndex(now); idx < 0 {
		return fmt.Errorf("day index %d is negative, server clock predates epoch %s", idx, EpochDate)
	}
	return nil
}
