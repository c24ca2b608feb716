// internal/game/engine.go
//
// Game engine for a single hidden-answer session.
// Responsibilities:
//   - Create games with a fixed answer and a row limit.
//   - Validate and apply guesses (length, uppercase A–Z).
//   - Score guesses with outcome.Evaluate, the same rules the solver assumes.
//   - Track state transitions: playing → won/lost.
//
// The engine plays the role of the real game when the solver plays itself
// (autoplay, daily transcript, CLI bench).
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/outcome"
)

const defaultRows = 6

var (
	ErrFinished     = errors.New("game finished")
	ErrInvalidGuess = errors.New("invalid guess")
)

// New constructs a game around answer. rows <= 0 selects the default of 6.
func New(answer string, rows int) *Game {
	if rows <= 0 {
		rows = defaultRows
	}
	ans := strings.ToUpper(strings.TrimSpace(answer))
	return &Game{
		ID:      randomID(),
		Answer:  ans,
		Rows:    rows,
		Cols:    len(ans),
		Guesses: []string{},
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the outcome, the new state, or an error.
//
// Validation rules:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters A–Z (case-insensitive).
//
// State transitions:
//   - All-correct outcome → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (outcome.Outcome, State, error) {
	if g.Finished {
		return 0, g.State(), ErrFinished
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != g.Cols || !isAlpha(guess) {
		return 0, g.State(), ErrInvalidGuess
	}

	o := outcome.Evaluate(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if o == outcome.NewCodec(g.Cols).AllCorrect() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return o, g.State(), nil
}

// State reports the coarse state of the game.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
