// internal/words/sqlite.go
//
// SQLite dictionary storage.
// Responsibilities:
//   - Opening a SQLite database with safe defaults (WAL, busy timeout).
//   - Applying the embedded migrations in sql/*.sql (idempotent, recorded in _migrations).
//   - Reading the dictionary in its stored order and replacing it on import.

package words

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// OpenDB opens (and creates if missing) a SQLite database file.
//
//   - Ensures the parent directory exists for relative DSNs (e.g. ./data/words.db).
//   - Configures busy timeout and WAL journaling mode.
func OpenDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded migrations in lexical order, each inside its
// own transaction, skipping the ones already recorded in _migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// LoadSQLite returns the stored dictionary in position order.
func LoadSQLite(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT word FROM words ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		if n, ok := normalize(w); ok {
			out = append(out, n)
		}
	}
	return out, rows.Err()
}

// Import replaces the stored dictionary with list in a single transaction
// and records where it came from.
func Import(ctx context.Context, db *sql.DB, source string, list []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("clear words: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO words (position, word) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, w := range list {
		if _, err := stmt.ExecContext(ctx, i, w); err != nil {
			return fmt.Errorf("insert %q: %w", w, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO words_source (id, source, imported_at) VALUES (1, ?, ?)
        ON CONFLICT(id) DO UPDATE SET source=excluded.source, imported_at=excluded.imported_at`,
		source, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("record source: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info().Str("source", source).Int("words", len(list)).Msg("dictionary imported")
	return nil
}

// ImportedFrom reports the source recorded by the last Import, or "" if none.
func ImportedFrom(ctx context.Context, db *sql.DB) (string, error) {
	var src string
	err := db.QueryRowContext(ctx, `SELECT source FROM words_source WHERE id=1`).Scan(&src)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return src, err
}
