// internal/daily/daily.go
//
// Daily puzzle selection.
//   - Each UTC day maps to one answer, fixed by the date and a salt.
//   - Only days inside a window ending today can be requested.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Layout is the date format used in keys and query strings.
const Layout = "2006-01-02"

var (
	// ErrBadDate is returned by Resolve for text that is not YYYY-MM-DD.
	ErrBadDate = errors.New("daily: bad date")

	// ErrOutOfRange is returned by Resolve for days outside the window.
	ErrOutOfRange = errors.New("daily: date out of range")
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve turns an optional YYYY-MM-DD into a day. Empty text means today.
// The day must lie between back days before now and now, inclusive.
func Resolve(text string, now time.Time, back int) (time.Time, error) {
	today := Day(now)
	if text == "" {
		return today, nil
	}
	day, err := time.Parse(Layout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, text)
	}
	if day.After(today) || day.Before(today.AddDate(0, 0, -back)) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrOutOfRange, text)
	}
	return day, nil
}

// Answer returns the day's answer from candidates, or "" if there are none.
// HMAC(salt, date) seeds a ChaCha8 stream, so every instance sharing the salt
// and the candidate list agrees on the answer.
func Answer(date time.Time, salt string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	var seed [32]byte
	copy(seed[:], mac.Sum(nil))
	return candidates[rand.New(rand.NewChaCha8(seed)).IntN(len(candidates))]
}
