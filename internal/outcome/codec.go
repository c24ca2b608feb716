// internal/outcome/codec.go
//
// Outcome codec for the solver.
// An outcome is the per-letter verdict of a guess against a hidden word:
//   x = absent, y = present elsewhere, g = correct.
//
// The textual form is exactly L symbols. Internally an outcome is the base-3
// number read from those symbols (x=0, y=1, g=2), most significant first:
//
//   x   y   y   g   x
//   0   1   1   2   0   → 0·81 + 1·27 + 1·9 + 2·3 + 0 = 42
//
// The integer form is dense in [0, 3^L) and is used directly as a bucket
// index by the solver.

package outcome

import (
	"errors"
	"fmt"
)

// Symbols of the textual outcome format (case-sensitive).
const (
	Absent  = 'x'
	Present = 'y'
	Correct = 'g'
)

// Digit values of the three symbols.
const (
	DigitAbsent  = 0
	DigitPresent = 1
	DigitCorrect = 2
)

// ErrInvalidFormat is returned when outcome text is not exactly L symbols from {x,y,g}.
var ErrInvalidFormat = errors.New("outcome: invalid format")

// Outcome is the base-3 encoding of a per-letter verdict.
type Outcome uint32

// Codec converts outcomes of a fixed word length between text and integer form.
type Codec struct {
	length int
	count  int
}

// NewCodec returns a codec for words of the given length.
func NewCodec(length int) Codec {
	return Codec{length: length, count: Pow3(length)}
}

// Len is the word length L.
func (c Codec) Len() int { return c.length }

// Count is the number of distinct outcomes, 3^L.
func (c Codec) Count() int { return c.count }

// AllCorrect is the outcome of a guess equal to the answer.
func (c Codec) AllCorrect() Outcome { return Outcome(c.count - 1) }

// Parse encodes outcome text.
func (c Codec) Parse(text string) (Outcome, error) {
	if len(text) != c.length {
		return 0, fmt.Errorf("%w: %q has %d symbols, want %d", ErrInvalidFormat, text, len(text), c.length)
	}
	var acc Outcome
	for i := 0; i < len(text); i++ {
		acc *= 3
		switch text[i] {
		case Absent:
		case Present:
			acc += DigitPresent
		case Correct:
			acc += DigitCorrect
		default:
			return 0, fmt.Errorf("%w: %q contains %q", ErrInvalidFormat, text, text[i])
		}
	}
	return acc, nil
}

// Format decodes o into its textual form. o must be in [0, 3^L).
func (c Codec) Format(o Outcome) string {
	b := make([]byte, c.length)
	for i := c.length - 1; i >= 0; i-- {
		switch o % 3 {
		case DigitAbsent:
			b[i] = Absent
		case DigitPresent:
			b[i] = Present
		default:
			b[i] = Correct
		}
		o /= 3
	}
	return string(b)
}

// Digits returns the per-position digits of o (0=absent, 1=present, 2=correct).
func (c Codec) Digits(o Outcome) []int {
	d := make([]int, c.length)
	for i := c.length - 1; i >= 0; i-- {
		d[i] = int(o % 3)
		o /= 3
	}
	return d
}

// Outcomes enumerates every outcome in increasing order.
func (c Codec) Outcomes() []Outcome {
	out := make([]Outcome, c.count)
	for i := range out {
		out[i] = Outcome(i)
	}
	return out
}

// Pow3 returns 3^n.
func Pow3(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 3
	}
	return p
}
