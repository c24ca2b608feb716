// internal/words/words.go
//
// Dictionary loading for the solver.
//
// Responsibilities:
//   - Load the dictionary from a SQLite database, a plain word file, or the
//     embedded default list.
//   - Normalize entries: trim, uppercase, skip blanks and `#` comments.
//
// Precedence (Load):
//   1. Source.DB set   → rows of the `words` table ordered by position.
//   2. Source.File set → one word per line.
//   3. neither         → embedded assets/words.txt.
//
// Validation (uniform length, A–Z only) is left to solver.New so a bad list
// fails loudly instead of being silently filtered.

package words

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// Source names where the dictionary comes from.
type Source struct {
	File string // path to a word-per-line file
	DB   string // SQLite DSN/path
}

// String describes the source for logs.
func (s Source) String() string {
	switch {
	case s.DB != "":
		return "sqlite:" + s.DB
	case s.File != "":
		return "file:" + s.File
	default:
		return "embedded:" + assets.DefaultDictionary
	}
}

// Load reads the dictionary from src.
func Load(ctx context.Context, src Source) ([]string, error) {
	switch {
	case src.DB != "":
		db, err := OpenDB(src.DB)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := Migrate(ctx, db); err != nil {
			return nil, err
		}
		return LoadSQLite(ctx, db)
	case src.File != "":
		return ReadFile(src.File)
	default:
		return Embedded()
	}
}

// Embedded returns the bundled default dictionary.
func Embedded() ([]string, error) {
	f, err := assets.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// ReadFile loads one word per line from a file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// Read normalizes a word-per-line stream: trims, uppercases, and skips blank
// lines and `#` comments. Order is kept.
func Read(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// normalize trims and uppercases a line; ok is false for blanks and comments.
func normalize(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return "", false
	}
	return strings.ToUpper(s), true
}

// Stats summarizes a dictionary.
type Stats struct {
	Words    int `json:"words"`
	Distinct int `json:"distinct"`
	Length   int `json:"length"`
}

// Summarize counts total and distinct entries; Length is that of the first word.
func Summarize(list []string) Stats {
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		seen[w] = struct{}{}
	}
	st := Stats{Words: len(list), Distinct: len(seen)}
	if len(list) > 0 {
		st.Length = len(list[0])
	}
	return st
}
