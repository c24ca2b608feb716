// internal/outcome/evaluate.go
//
// Match evaluation: the outcome the real game shows for a guess against a
// candidate answer, including repeated letters.
//
// Pass 1:
//   - Exact matches score 2 and consume that candidate letter.
//   - Every other candidate letter is counted by letter index.
//
// Pass 2:
//   - Left to right, each non-exact guess letter scores 1 if an unconsumed
//     occurrence remains (and consumes it), otherwise 0.
//
// Which candidate slot a present letter consumes never changes later verdicts,
// only how many occurrences are left, so a count per letter replaces the
// slot-by-slot scan.

package outcome

// Evaluate computes the outcome of guess against candidate.
// Both must have the same length and consist of uppercase A–Z.
func Evaluate(guess, candidate string) Outcome {
	n := len(guess)
	var counts [26]uint8
	var exact uint32 // bit i set when position i matched exactly

	for i := 0; i < n; i++ {
		if guess[i] == candidate[i] {
			exact |= 1 << i
		} else {
			counts[candidate[i]-'A']++
		}
	}

	var acc Outcome
	for i := 0; i < n; i++ {
		acc *= 3
		if exact&(1<<i) != 0 {
			acc += DigitCorrect
			continue
		}
		j := guess[i] - 'A'
		if counts[j] > 0 {
			counts[j]--
			acc += DigitPresent
		}
	}
	return acc
}
