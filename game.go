package main

import (
	"errors"
	"time"

	"github.com/samber/lo"
)

var (
	errGameOver       = errors.New(ErrorGameOver)
	errInvalidLength  = errors.New(ErrorInvalidLength)
	errNotInWordList  = errors.New(ErrorNotInWordList)
	errDuplicateGuess = errors.New(ErrorDuplicateGuess)
)

// newGame initializes an empty session for the given day index.
func newGame(dayIndex int) *GameState {
	return &GameState{
		DayIndex:       dayIndex,
		Guesses:        []GuessAttempt{},
		State:          StatePlaying,
		LastAccessTime: time.Now(),
	}
}

// checkGuess compares a guess to the solution and returns per-letter results.
// Two passes: exact matches first, then presents drawn from the multiset of
// unmatched solution letters. A guess letter repeated more often than it
// occurs in the solution marks the surplus positions absent.
func checkGuess(guess, solution string) []GuessResult {
	result := make([]GuessResult, WordLength)
	var counts [26]int

	for i := 0; i < WordLength; i++ {
		if guess[i] == solution[i] {
			result[i] = GuessResult{Letter: string(guess[i]), Status: GuessStatusCorrect}
		} else {
			counts[solution[i]-'A']++
		}
	}

	for i := 0; i < WordLength; i++ {
		if result[i].Status != "" {
			continue
		}
		letter := string(guess[i])
		if j := guess[i] - 'A'; counts[j] > 0 {
			counts[j]--
			result[i] = GuessResult{Letter: letter, Status: GuessStatusPresent}
		} else {
			result[i] = GuessResult{Letter: letter, Status: GuessStatusAbsent}
		}
	}

	return result
}

// applyGuess validates a guess and advances the session state machine.
// Validation failures leave the session untouched; a guess slot is only
// consumed once the guess has been scored and appended.
func (app *App) applyGuess(game *GameState, guess string) ([]GuessResult, error) {
	if game.State != StatePlaying {
		logWarn("Guess submitted to terminal session (state: %s)", game.State)
		return nil, errGameOver
	}
	if len(guess) != WordLength || !isUpperAlpha(guess) {
		return nil, errInvalidLength
	}
	if !app.isAcceptedWord(guess) {
		return nil, errNotInWordList
	}
	if lo.ContainsBy(game.Guesses, func(a GuessAttempt) bool { return a.Word == guess }) {
		return nil, errDuplicateGuess
	}

	solution := app.solutionFor(game.DayIndex)
	result := checkGuess(guess, solution)
	game.Guesses = append(game.Guesses, GuessAttempt{Word: guess, Result: result})
	game.LastAccessTime = time.Now()

	switch {
	case allCorrect(result):
		game.State = StateWon
		logInfo("Player won day %d in %d tries", game.DayIndex, len(game.Guesses))
	case len(game.Guesses) >= MaxGuesses:
		game.State = StateLost
		game.Solution = solution
		logInfo("Player lost day %d, solution was: %s", game.DayIndex, solution)
	}

	return result, nil
}

// allCorrect returns true if every position is an exact match.
func allCorrect(result []GuessResult) bool {
	return lo.EveryBy(result, func(r GuessResult) bool { return r.Status == GuessStatusCorrect })
}

// isAcceptedWord returns true if the word is in the accepted guess set.
func (app *App) isAcceptedWord(word string) bool {
	_, ok := app.AcceptedWordSet[word]
	return ok
}

// isUpperAlpha checks that a string consists only of uppercase A-Z.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// statusRank orders verdicts for keyboard colouring: a letter keeps the best
// verdict it has earned across all guesses.
func statusRank(status string) int {
	switch status {
	case GuessStatusCorrect:
		return 3
	case GuessStatusPresent:
		return 2
	case GuessStatusAbsent:
		return 1
	default:
		return 0
	}
}

// keyboardHints folds the guess history into the best verdict seen per letter.
func keyboardHints(game *GameState) map[string]string {
	hints := make(map[string]string)
	for _, attempt := range game.Guesses {
		for _, r := range attempt.Result {
			if statusRank(r.Status) > statusRank(hints[r.Letter]) {
				hints[r.Letter] = r.Status
			}
		}
	}
	return hints
}
