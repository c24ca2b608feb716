// internal/game/types.go
//
// Core type definitions for the hidden-answer game.
// Defines:
//   - State: coarse progress of a game (playing/won/lost).
//   - Game: state for a single in-progress or finished game.

package game

// State reports whether a game is still running.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single game against a hidden answer.
type Game struct {
	ID       string   // Unique game identifier (random hex string).
	Answer   string   // The solution word (always uppercase).
	Rows     int      // Maximum number of guesses allowed (typically 6).
	Cols     int      // Number of letters per word.
	Guesses  []string // List of guesses made so far (uppercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.
}
