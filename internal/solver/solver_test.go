package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle/apps/solver/internal/outcome"
)

var germanWords = []string{
	"LEBEN", "BEBEN", "RESTE", "KAMEL", "GERNE", "TRUEB", "NEBEL", "LESEN",
	"REGEN", "SEGEL", "KERNE", "ERBEN", "GEBEN", "LEGEN", "RABEN", "TAUBE",
	"SUPPE", "NAMEN", "MEERE", "TRAUM", "BLATT", "KLANG", "STERN", "BRIEF",
}

func mustNew(t *testing.T, words []string, opts ...Option) *Solver {
	t.Helper()
	s, err := New(words, opts...)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", words, err)
	}
	return s
}

func mustParse(t *testing.T, s *Solver, text string) outcome.Outcome {
	t.Helper()
	o, err := s.ParseOutcome(text)
	if err != nil {
		t.Fatalf("ParseOutcome(%q) failed: %v", text, err)
	}
	return o
}

// bruteWorstCase recomputes a guess score with a map, independent of the solver.
func bruteWorstCase(guess string, space []string) int {
	buckets := map[outcome.Outcome]int{}
	worst := 0
	for _, w := range space {
		o := outcome.Evaluate(guess, w)
		buckets[o]++
		worst = max(worst, buckets[o])
	}
	return worst
}

func TestNewRejectsInvalidDictionary(t *testing.T) {
	tests := map[string][]string{
		"mixed length": {"LEBEN", "BEBE"},
		"lowercase":    {"LEBEN", "beben"},
		"digit":        {"LEB3N"},
		"umlaut":       {"MÜLLE"},
		"empty word":   {""},
		"too long":     {"ABCDEFGHIJKLM"},
	}
	for name, words := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := New(words)
			if !errors.Is(err, ErrInvalidDictionary) {
				t.Fatalf("New(%v) error = %v, want ErrInvalidDictionary", words, err)
			}
			if s != nil {
				t.Errorf("New(%v) returned a solver alongside an error", words)
			}
		})
	}
}

func TestEmptyDictionary(t *testing.T) {
	s := mustNew(t, nil)
	guess, err := s.NextGuess(context.Background())
	if err != nil {
		t.Fatalf("NextGuess failed: %v", err)
	}
	if guess != "" {
		t.Errorf("NextGuess() = %q, want empty", guess)
	}
	if got := s.Solutions(); len(got) != 0 {
		t.Errorf("Solutions() = %v, want none", got)
	}
}

func TestSolutionsAreDistinctAndSorted(t *testing.T) {
	s := mustNew(t, []string{"KAMEL", "LEBEN", "KAMEL", "BEBEN"})
	if diff := cmp.Diff([]string{"BEBEN", "KAMEL", "LEBEN"}, s.Solutions()); diff != "" {
		t.Errorf("Solutions mismatch (-want +got): %s", diff)
	}
	if diff := cmp.Diff([]string{"KAMEL", "LEBEN", "KAMEL", "BEBEN"}, s.Dictionary()); diff != "" {
		t.Errorf("Dictionary mismatch (-want +got): %s", diff)
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestNextGuessIsMinimax(t *testing.T) {
	dicts := [][]string{
		{"LEBEN", "BEBEN", "RESTE", "KAMEL"},
		germanWords,
	}
	for _, dict := range dicts {
		s := mustNew(t, dict)
		guess, err := s.NextGuess(context.Background())
		if err != nil {
			t.Fatalf("NextGuess failed: %v", err)
		}
		space := s.Solutions()
		best := bruteWorstCase(dict[0], space)
		for _, w := range dict {
			best = min(best, bruteWorstCase(w, space))
		}
		if got := bruteWorstCase(guess, space); got != best {
			t.Errorf("NextGuess() = %s with worst case %d, optimum is %d", guess, got, best)
		}
		if wc, _ := s.WorstCase(guess); wc != best {
			t.Errorf("WorstCase(%s) = %d, want %d", guess, wc, best)
		}
	}
}

func TestNextGuessPrefersSolutionOnTie(t *testing.T) {
	// AD and AC both split {AC, BC} into singletons; AD comes first but is
	// no longer a solution, so AC wins. BC ties too but comes later.
	s := mustNew(t, []string{"AD", "AC", "BC"})
	if err := s.ApplyAnswer("EC", mustParse(t, s, "xg")); err != nil {
		t.Fatalf("ApplyAnswer failed: %v", err)
	}
	if diff := cmp.Diff([]string{"AC", "BC"}, s.Solutions()); diff != "" {
		t.Fatalf("Solutions mismatch (-want +got): %s", diff)
	}
	for _, w := range []string{"AD", "AC", "BC"} {
		if wc, _ := s.WorstCase(w); wc != 1 {
			t.Fatalf("WorstCase(%s) = %d, want 1", w, wc)
		}
	}
	guess, err := s.NextGuess(context.Background())
	if err != nil {
		t.Fatalf("NextGuess failed: %v", err)
	}
	if guess != "AC" {
		t.Errorf("NextGuess() = %s, want AC", guess)
	}
}

func TestNextGuessFirstWordWinsWithoutSolutions(t *testing.T) {
	s := mustNew(t, []string{"AD", "AC", "BC"})
	if err := s.ApplyAnswer("AC", mustParse(t, s, "yy")); err != nil {
		t.Fatalf("ApplyAnswer failed: %v", err)
	}
	if got := s.Remaining(); got != 0 {
		t.Fatalf("Remaining() = %d, want 0", got)
	}
	guess, err := s.NextGuess(context.Background())
	if err != nil {
		t.Fatalf("NextGuess failed: %v", err)
	}
	if guess != "AD" {
		t.Errorf("NextGuess() = %s, want AD", guess)
	}
}

func TestNextGuessIndependentOfWorkerCount(t *testing.T) {
	want := ""
	for _, n := range []int{1, 2, 3, 7, 64} {
		s := mustNew(t, germanWords, WithWorkers(n))
		if err := s.ApplyAnswer("TRAUM", mustParse(t, s, "xxxxx")); err != nil {
			t.Fatalf("ApplyAnswer failed: %v", err)
		}
		guess, err := s.NextGuess(context.Background())
		if err != nil {
			t.Fatalf("NextGuess failed: %v", err)
		}
		if want == "" {
			want = guess
		}
		if guess != want {
			t.Errorf("workers=%d: NextGuess() = %s, want %s", n, guess, want)
		}
	}
}

func TestNextGuessCancelled(t *testing.T) {
	s := mustNew(t, germanWords)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.NextGuess(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("NextGuess error = %v, want context.Canceled", err)
	}
}

func TestApplyAnswerRemovesExactlyInconsistentWords(t *testing.T) {
	for _, hidden := range germanWords {
		s := mustNew(t, germanWords)
		before := s.Solutions()
		o := outcome.Evaluate("GERNE", hidden)
		if err := s.ApplyAnswer("GERNE", o); err != nil {
			t.Fatalf("ApplyAnswer failed: %v", err)
		}
		var want []string
		for _, w := range before {
			if outcome.Evaluate("GERNE", w) == o {
				want = append(want, w)
			}
		}
		got := s.Solutions()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("hidden %s: Solutions mismatch (-want +got): %s", hidden, diff)
		}
		if len(got) > len(before) {
			t.Errorf("hidden %s: solution space grew from %d to %d", hidden, len(before), len(got))
		}
		if !s.IsSolution(hidden) {
			t.Errorf("hidden %s was removed", hidden)
		}
	}
}

func TestApplyAnswerIsIdempotent(t *testing.T) {
	s := mustNew(t, germanWords)
	o := mustParse(t, s, "xgxxg")
	if err := s.ApplyAnswer("RESTE", o); err != nil {
		t.Fatalf("ApplyAnswer failed: %v", err)
	}
	first := s.Solutions()
	if err := s.ApplyAnswer("RESTE", o); err != nil {
		t.Fatalf("ApplyAnswer failed: %v", err)
	}
	if diff := cmp.Diff(first, s.Solutions()); diff != "" {
		t.Errorf("second ApplyAnswer changed solutions (-want +got): %s", diff)
	}
}

func TestApplyAnswerInconsistentEmptiesSpace(t *testing.T) {
	s := mustNew(t, germanWords)
	if err := s.ApplyAnswer("ZZZZZ", s.Codec().AllCorrect()); err != nil {
		t.Fatalf("ApplyAnswer failed: %v", err)
	}
	if got := s.Solutions(); len(got) != 0 {
		t.Errorf("Solutions() = %v, want none", got)
	}
}

func TestApplyAnswerRejectsInvalidWord(t *testing.T) {
	s := mustNew(t, germanWords)
	for _, w := range []string{"", "LEBE", "leben", "LEBENS"} {
		if err := s.ApplyAnswer(w, 0); !errors.Is(err, ErrInvalidWord) {
			t.Errorf("ApplyAnswer(%q) error = %v, want ErrInvalidWord", w, err)
		}
	}
	if got := s.Remaining(); got != len(germanWords) {
		t.Errorf("Remaining() = %d after rejected answers, want %d", got, len(germanWords))
	}
}

func TestParseOutcomeRejectsMalformedText(t *testing.T) {
	s := mustNew(t, germanWords)
	for _, text := range []string{"xgxy", "xgxyyx", "xgxyz", "XGXYY"} {
		if _, err := s.ParseOutcome(text); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseOutcome(%q) error = %v, want ErrInvalidFormat", text, err)
		}
	}
}

func TestFactorizations(t *testing.T) {
	s := mustNew(t, []string{"LEBEN", "BEBEN", "RESTE", "KAMEL"})
	fs, err := s.Factorizations("TRUEB")
	if err != nil {
		t.Fatalf("Factorizations failed: %v", err)
	}
	if len(fs) != 243 {
		t.Fatalf("len(Factorizations) = %d, want 243", len(fs))
	}
	total := 0
	for i, f := range fs {
		if f.Outcome != outcome.Outcome(i) {
			t.Fatalf("bucket %d has outcome %d", i, f.Outcome)
		}
		total += len(f.Words)
	}
	if total != 4 {
		t.Errorf("buckets hold %d words, want 4", total)
	}

	got := map[string][]string{}
	for _, f := range NonEmpty(fs) {
		got[s.FormatOutcome(f.Outcome)] = f.Words
	}
	want := map[string][]string{
		"xxxgy": {"BEBEN", "LEBEN"},
		"yyxyx": {"RESTE"},
		"xxxgx": {"KAMEL"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Factorizations mismatch (-want +got): %s", diff)
	}
}

func TestFormatFactorizations(t *testing.T) {
	s := mustNew(t, []string{"LEBEN", "BEBEN", "KAMEL"})
	fs, err := s.Factorizations("TRUEB")
	if err != nil {
		t.Fatalf("Factorizations failed: %v", err)
	}
	want := "xxxgx: [KAMEL]\nxxxgy: [BEBEN LEBEN]"
	if got := s.FormatFactorizations(NonEmpty(fs)); got != want {
		t.Errorf("FormatFactorizations() = %q, want %q", got, want)
	}
}

func TestLebenGerneScenario(t *testing.T) {
	s := mustNew(t, []string{"LEBEN", "GERNE"})
	if got := s.FormatOutcome(outcome.Evaluate("GERNE", "LEBEN")); got != "xgxyy" {
		t.Fatalf("outcome of GERNE against LEBEN = %s, want xgxyy", got)
	}
	if err := s.ApplyAnswer("GERNE", mustParse(t, s, "xgxyy")); err != nil {
		t.Fatalf("ApplyAnswer failed: %v", err)
	}
	if diff := cmp.Diff([]string{"LEBEN"}, s.Solutions()); diff != "" {
		t.Errorf("Solutions mismatch (-want +got): %s", diff)
	}
	guess, err := s.NextGuess(context.Background())
	if err != nil {
		t.Fatalf("NextGuess failed: %v", err)
	}
	if guess != "LEBEN" {
		t.Errorf("NextGuess() = %s, want LEBEN", guess)
	}
}

func BenchmarkNextGuess(b *testing.B) {
	s, err := New(germanWords)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		if _, err := s.NextGuess(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
