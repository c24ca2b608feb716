// internal/solver/guess.go
//
// Minimax guess selection.
// Responsibilities:
//   - Score every dictionary word by the largest outcome bucket it leaves.
//   - Spread scoring over worker goroutines; each owns a chunk and a table.
//   - Pick the minimum sequentially so the tie-break is deterministic.

package solver

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/outcome"
)

// cancelCheckEvery is how many guesses a worker scores between context checks.
const cancelCheckEvery = 16

// NextGuess returns the dictionary word minimizing the largest outcome bucket
// over the current solution space.
//
// Ties on the score go to a word that is itself still a solution; otherwise
// the first word in dictionary order wins. Once a solution holds the minimum,
// later tied solutions do not replace it.
//
// An empty dictionary yields "". Cancelling ctx aborts the search.
func (s *Solver) NextGuess(ctx context.Context) (string, error) {
	if len(s.dictionary) == 0 {
		return "", nil
	}
	start := time.Now()

	s.mu.RLock()
	space := s.snapshot()
	inSpace := make([]bool, len(s.dictionary))
	for i, w := range s.dictionary {
		inSpace[i] = s.contains(w)
	}
	s.mu.RUnlock()

	scores, err := s.score(ctx, space)
	if err != nil {
		return "", err
	}

	minimax := math.MaxInt
	best := 0
	bestInSpace := false
	for i, score := range scores {
		switch {
		case score < minimax:
			minimax, best, bestInSpace = score, i, inSpace[i]
		case score == minimax && !bestInSpace && inSpace[i]:
			best, bestInSpace = i, true
		}
	}

	s.log.Debug().
		Str("guess", s.dictionary[best]).
		Int("worstCase", minimax).
		Int("solutions", len(space)).
		Dur("took", time.Since(start)).
		Msg("next guess")
	return s.dictionary[best], nil
}

// score computes worstCase for every dictionary word. Workers own contiguous
// chunks of the dictionary and a private bucket table each.
func (s *Solver) score(ctx context.Context, space []string) ([]int, error) {
	scores := make([]int, len(s.dictionary))
	workers := min(s.workers, len(s.dictionary))
	chunk := (len(s.dictionary) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(s.dictionary); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(s.dictionary))
		g.Go(func() error {
			table := make([]int, s.codec.Count())
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				scores[i] = worstCase(s.dictionary[i], space, table)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// worstCase buckets space by outcome against guess and returns the largest
// bucket. table must have 3^L entries; it is left zeroed on return.
func worstCase(guess string, space []string, table []int) int {
	worst := 0
	for _, w := range space {
		o := outcome.Evaluate(guess, w)
		table[o]++
		if table[o] > worst {
			worst = table[o]
		}
	}
	if len(space) >= len(table) {
		clear(table)
		return worst
	}
	for _, w := range space {
		table[outcome.Evaluate(guess, w)] = 0
	}
	return worst
}

// WorstCase returns the largest outcome bucket guess would leave.
func (s *Solver) WorstCase(guess string) (int, error) {
	if err := s.checkWord(guess); err != nil {
		return 0, err
	}
	s.mu.RLock()
	space := s.snapshot()
	s.mu.RUnlock()
	return worstCase(guess, space, make([]int, s.codec.Count())), nil
}
