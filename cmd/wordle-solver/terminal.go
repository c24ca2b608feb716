// cmd/wordle-solver/terminal.go
//
// Interactive loop: offer the best guess, read the played word and its
// outcome, narrow the candidates, and stop once at most one is left.
// End of input exits cleanly.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle/apps/solver/internal/outcome"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// terminal runs the interactive solving loop.
type terminal struct {
	in             *bufio.Scanner
	out            io.Writer
	color          bool
	factorizations bool
}

var errInputClosed = errors.New("input closed")

func (t *terminal) run(ctx context.Context, s *solver.Solver) error {
	fmt.Fprintf(t.out, "%d candidate words of length %d\n", s.Remaining(), s.Len())
	for s.Remaining() > 1 {
		best, err := s.NextGuess(ctx)
		if err != nil {
			return err
		}
		guess, err := t.readGuess(s, best)
		if err != nil {
			return t.closed(err)
		}
		if t.factorizations {
			fs, err := s.Factorizations(guess)
			if err != nil {
				return err
			}
			fmt.Fprintln(t.out, s.FormatFactorizations(solver.NonEmpty(fs)))
		}
		o, err := t.readOutcome(s)
		if err != nil {
			return t.closed(err)
		}
		if err := s.ApplyAnswer(guess, o); err != nil {
			return err
		}
		fmt.Fprintln(t.out, t.tiles(s, guess, o))
		fmt.Fprintf(t.out, "Solutions (%d): %s\n", s.Remaining(), strings.Join(s.Solutions(), " "))
	}

	if sols := s.Solutions(); len(sols) == 1 {
		fmt.Fprintln(t.out, "Solution is:", sols[0])
	} else {
		fmt.Fprintln(t.out, "No solution found")
	}
	return nil
}

// closed turns end of input into a clean exit.
func (t *terminal) closed(err error) error {
	if errors.Is(err, errInputClosed) {
		fmt.Fprintln(t.out)
		return nil
	}
	return err
}

func (t *terminal) line() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// readGuess offers best and accepts a blank line for it, or any word of the
// right length.
func (t *terminal) readGuess(s *solver.Solver, best string) (string, error) {
	worst, _ := s.WorstCase(best)
	fmt.Fprintf(t.out, "Best guess: %s (at most %d left)\n", best, worst)
	for {
		fmt.Fprint(t.out, "Guess [enter to accept]: ")
		text, err := t.line()
		if err != nil {
			return "", err
		}
		if text == "" {
			return best, nil
		}
		guess := strings.ToUpper(text)
		if _, err := s.WorstCase(guess); err != nil {
			fmt.Fprintf(t.out, "Enter %d letters A-Z\n", s.Len())
			continue
		}
		return guess, nil
	}
}

func (t *terminal) readOutcome(s *solver.Solver) (outcome.Outcome, error) {
	for {
		fmt.Fprint(t.out, "Outcome: ")
		text, err := t.line()
		if err != nil {
			return 0, err
		}
		o, err := s.ParseOutcome(strings.ToLower(text))
		if err == nil {
			return o, nil
		}
		fmt.Fprintf(t.out, "Enter %d of: %c = not in word, %c = wrong place, %c = right place\n",
			s.Len(), outcome.Absent, outcome.Present, outcome.Correct)
	}
}

// tiles renders guess with its outcome, coloured when enabled.
func (t *terminal) tiles(s *solver.Solver, guess string, o outcome.Outcome) string {
	if !t.color {
		return guess + " " + s.FormatOutcome(o)
	}
	var b strings.Builder
	for i, d := range s.Codec().Digits(o) {
		tile := " " + string(guess[i]) + " "
		switch d {
		case outcome.DigitCorrect:
			b.WriteString(color.Ize(color.Green, tile))
		case outcome.DigitPresent:
			b.WriteString(color.Ize(color.Yellow, tile))
		default:
			b.WriteString(color.Ize(color.Gray, tile))
		}
	}
	return b.String()
}
