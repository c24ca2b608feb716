// internal/solver/factorization.go
//
// Outcome buckets: how a guess would split the current solution space.
// Used by the CLI's -factorizations printout and GET /session/factorizations.

package solver

import (
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/outcome"
)

// Factorization is one outcome bucket: the solutions that would show Outcome
// if the given guess were played.
type Factorization struct {
	Outcome outcome.Outcome
	Words   []string // lexicographic
}

// Factorizations partitions the solution space by outcome against guess.
// The result has one entry per outcome, 0 .. 3^L-1, empty buckets included.
func (s *Solver) Factorizations(guess string) ([]Factorization, error) {
	if err := s.checkWord(guess); err != nil {
		return nil, err
	}
	s.mu.RLock()
	space := s.snapshot()
	s.mu.RUnlock()

	out := make([]Factorization, s.codec.Count())
	for i, o := range s.codec.Outcomes() {
		out[i].Outcome = o
	}
	for _, w := range space {
		o := outcome.Evaluate(guess, w)
		out[o].Words = append(out[o].Words, w)
	}
	return out, nil
}

// NonEmpty drops buckets without words, keeping order.
func NonEmpty(fs []Factorization) []Factorization {
	out := make([]Factorization, 0, len(fs))
	for _, f := range fs {
		if len(f.Words) > 0 {
			out = append(out, f)
		}
	}
	return out
}

// FormatFactorizations renders buckets one per line as "xgxyy: [LEBEN BEBEN]".
func (s *Solver) FormatFactorizations(fs []Factorization) string {
	var b strings.Builder
	for i, f := range fs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(s.codec.Format(f.Outcome))
		b.WriteString(": [")
		b.WriteString(strings.Join(f.Words, " "))
		b.WriteByte(']')
	}
	return b.String()
}
