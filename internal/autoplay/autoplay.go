// Package autoplay lets the solver play against a hidden answer.
//
// Each round asks the solver for its next guess, scores it with the game
// engine and feeds the outcome back into the solver, until the game is won,
// lost, or the solver runs out of candidates.
package autoplay

import (
	"context"
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Step is one round of a self-played game.
type Step struct {
	Guess     string `json:"guess"`
	Outcome   string `json:"outcome"`
	Remaining int    `json:"remaining"` // solutions left after the outcome was applied
}

// Result summarizes a self-played game.
type Result struct {
	Answer string     `json:"answer"`
	Steps  []Step     `json:"steps"`
	State  game.State `json:"state"`
}

// Won reports whether the solver found the answer within the row limit.
func (r Result) Won() bool { return r.State == game.StateWon }

// Play solves answer with a fresh solver over dictionary.
// maxRounds <= 0 uses the game default.
func Play(ctx context.Context, dictionary []string, answer string, maxRounds int, opts ...solver.Option) (Result, error) {
	s, err := solver.New(dictionary, opts...)
	if err != nil {
		return Result{}, err
	}
	return PlayWith(ctx, s, answer, maxRounds)
}

// PlayWith solves answer with an existing solver, narrowing its solution space.
func PlayWith(ctx context.Context, s *solver.Solver, answer string, maxRounds int) (Result, error) {
	g := game.New(answer, maxRounds)
	if g.Cols != s.Len() {
		return Result{}, fmt.Errorf("autoplay: answer %q has %d letters, dictionary has %d", answer, g.Cols, s.Len())
	}
	res := Result{Answer: g.Answer, State: g.State()}

	for !g.Finished && s.Remaining() > 0 {
		guess, err := s.NextGuess(ctx)
		if err != nil {
			return res, err
		}
		o, state, err := g.ApplyGuess(guess)
		if err != nil {
			return res, fmt.Errorf("autoplay: apply %s: %w", guess, err)
		}
		if err := s.ApplyAnswer(guess, o); err != nil {
			return res, err
		}
		res.Steps = append(res.Steps, Step{
			Guess:     guess,
			Outcome:   s.FormatOutcome(o),
			Remaining: s.Remaining(),
		})
		res.State = state
	}
	return res, nil
}
