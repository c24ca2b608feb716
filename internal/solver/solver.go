// internal/solver/solver.go
//
// Minimax solver for a single Wordle-style puzzle.
// Responsibilities:
//   - Hold the dictionary (allowed guesses, never mutated).
//   - Track the solution space: distinct dictionary words still consistent
//     with every answer applied so far. It only ever shrinks.
//   - Pick the guess whose worst outcome bucket is smallest (NextGuess).
//   - Narrow the solution space by a guess and its outcome (ApplyAnswer).
//   - Report how a guess partitions the solution space (Factorizations).
//
// Notes:
//   - The solution space is a bitset over the sorted distinct words, so
//     membership is O(1) and iteration is lexicographic.
//   - Readers (NextGuess, Factorizations, Solutions) snapshot under a read
//     lock; ApplyAnswer takes the write lock.

package solver

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/solver/internal/outcome"
)

// MaxWordLength bounds L so the 3^L bucket table stays small.
const MaxWordLength = 12

var (
	// ErrInvalidDictionary is returned by New for words of mixed length or outside A–Z.
	ErrInvalidDictionary = errors.New("solver: invalid dictionary")

	// ErrInvalidWord is returned when a guess is not L uppercase letters.
	ErrInvalidWord = errors.New("solver: invalid word")

	// ErrInvalidFormat is returned by ParseOutcome for malformed outcome text.
	ErrInvalidFormat = outcome.ErrInvalidFormat
)

// Solver tracks one puzzle. It is safe for concurrent use.
type Solver struct {
	length int
	codec  outcome.Codec

	dictionary []string        // as given, iteration order for NextGuess
	words      []string        // distinct dictionary words, sorted
	index      map[string]uint // word → position in words

	mu        sync.RWMutex
	solutions *bitset.BitSet // bit i set ⇔ words[i] still possible

	workers int
	log     zerolog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers sets how many goroutines score guesses. n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) { s.log = l }
}

// New validates the dictionary and returns a solver whose solution space is
// every distinct dictionary word.
func New(dictionary []string, opts ...Option) (*Solver, error) {
	length, err := validateDictionary(dictionary)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		length:     length,
		codec:      outcome.NewCodec(length),
		dictionary: append([]string(nil), dictionary...),
		index:      make(map[string]uint, len(dictionary)),
		workers:    runtime.GOMAXPROCS(0),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	distinct := append([]string(nil), dictionary...)
	sort.Strings(distinct)
	for _, w := range distinct {
		if _, ok := s.index[w]; ok {
			continue
		}
		s.index[w] = uint(len(s.words))
		s.words = append(s.words, w)
	}
	s.solutions = bitset.New(uint(len(s.words)))
	for i := range s.words {
		s.solutions.Set(uint(i))
	}
	return s, nil
}

// validateDictionary returns the common word length.
func validateDictionary(dictionary []string) (int, error) {
	if len(dictionary) == 0 {
		return 0, nil
	}
	length := len(dictionary[0])
	if length == 0 || length > MaxWordLength {
		return 0, fmt.Errorf("%w: word length %d outside 1..%d", ErrInvalidDictionary, length, MaxWordLength)
	}
	for _, w := range dictionary {
		if len(w) != length {
			return 0, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidDictionary, w, len(w), length)
		}
		if !isUpperAlpha(w) {
			return 0, fmt.Errorf("%w: %q is not uppercase A-Z", ErrInvalidDictionary, w)
		}
	}
	return length, nil
}

// isUpperAlpha reports whether s is all uppercase ASCII letters.
func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// checkWord validates a guess supplied by a caller.
func (s *Solver) checkWord(w string) error {
	if len(w) != s.length || s.length == 0 || !isUpperAlpha(w) {
		return fmt.Errorf("%w: %q is not %d uppercase letters", ErrInvalidWord, w, s.length)
	}
	return nil
}

// Len is the word length L shared by every dictionary word.
func (s *Solver) Len() int { return s.length }

// Codec returns the outcome codec for this solver's word length.
func (s *Solver) Codec() outcome.Codec { return s.codec }

// Dictionary returns a copy of the dictionary in its original order.
func (s *Solver) Dictionary() []string {
	return append([]string(nil), s.dictionary...)
}

// ParseOutcome parses outcome text such as "xgxyy".
func (s *Solver) ParseOutcome(text string) (outcome.Outcome, error) {
	return s.codec.Parse(text)
}

// FormatOutcome renders o as outcome text.
func (s *Solver) FormatOutcome(o outcome.Outcome) string {
	return s.codec.Format(o)
}

// Solutions returns the current solution space in lexicographic order.
func (s *Solver) Solutions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Remaining is the size of the solution space.
func (s *Solver) Remaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.solutions.Count())
}

// IsSolution reports whether w is still in the solution space.
func (s *Solver) IsSolution(w string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.contains(w)
}

func (s *Solver) contains(w string) bool {
	i, ok := s.index[w]
	return ok && s.solutions.Test(i)
}

// snapshot copies the solution space. Caller holds s.mu.
func (s *Solver) snapshot() []string {
	out := make([]string, 0, s.solutions.Count())
	for i, ok := s.solutions.NextSet(0); ok; i, ok = s.solutions.NextSet(i + 1) {
		out = append(out, s.words[i])
	}
	return out
}

// ApplyAnswer removes every solution whose outcome against guess differs from o.
// An outcome no candidate produces empties the solution space.
func (s *Solver) ApplyAnswer(guess string, o outcome.Outcome) error {
	if err := s.checkWord(guess); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.solutions.Count()
	for i, ok := s.solutions.NextSet(0); ok; i, ok = s.solutions.NextSet(i + 1) {
		if outcome.Evaluate(guess, s.words[i]) != o {
			s.solutions.Clear(i)
		}
	}
	s.log.Debug().
		Str("guess", guess).
		Str("outcome", s.codec.Format(o)).
		Uint("before", before).
		Uint("after", s.solutions.Count()).
		Msg("answer applied")
	return nil
}
