package daily

import (
	"errors"
	"testing"
	"time"
)

func TestDateKeyUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	at := time.Date(2026, 3, 1, 5, 0, 0, 0, loc) // 2026-02-28 19:00 UTC
	if got := DateKey(at); got != "2026-02-28" {
		t.Errorf("DateKey = %s, want 2026-02-28", got)
	}
}

func TestAnswerIsStablePerDay(t *testing.T) {
	day := time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC)
	words := []string{"LEBEN", "GERNE", "KAMEL", "RESTE", "BEBEN"}
	a := Answer(day, "salt", words)
	if b := Answer(day.Add(20*time.Hour), "salt", words); a != b {
		t.Errorf("same day gave %s and %s", a, b)
	}

	seen := map[string]bool{}
	for d := 0; d < 60; d++ {
		seen[Answer(day.AddDate(0, 0, d), "salt", words)] = true
	}
	if len(seen) < 2 {
		t.Errorf("60 days all picked %v", seen)
	}
	for w := range seen {
		found := false
		for _, c := range words {
			found = found || c == w
		}
		if !found {
			t.Errorf("Answer returned %q, not a candidate", w)
		}
	}
}

func TestAnswerEmpty(t *testing.T) {
	if got := Answer(time.Now(), "s", nil); got != "" {
		t.Errorf("Answer with no candidates = %q", got)
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		text    string
		want    time.Time
		wantErr error
	}{
		{"", today, nil},
		{"2026-10-18", today, nil},
		{"2026-10-11", today.AddDate(0, 0, -7), nil},
		{"2026-10-08", today.AddDate(0, 0, -10), nil},
		{"2026-10-07", time.Time{}, ErrOutOfRange},
		{"2026-10-19", time.Time{}, ErrOutOfRange},
		{"yesterday", time.Time{}, ErrBadDate},
		{"2026-13-01", time.Time{}, ErrBadDate},
	}
	for _, test := range tests {
		got, err := Resolve(test.text, now, 10)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("Resolve(%q) error = %v, want %v", test.text, err, test.wantErr)
			continue
		}
		if !got.Equal(test.want) {
			t.Errorf("Resolve(%q) = %v, want %v", test.text, got, test.want)
		}
	}
}
