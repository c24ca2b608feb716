// cmd/wordle-solver/main.go
//
// Terminal front end for the solver.
//   - default:  interactive solving loop on stdin/stdout
//   - -import:  copy the loaded dictionary into the sqlite database and exit
//   - -bench N: self-play the first N solutions and print the guess distribution

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	wordsFile := flag.String("words", "", "Word-per-line dictionary file (default: embedded list)")
	dbPath := flag.String("db", "", "SQLite dictionary database; takes precedence over -words")
	importTo := flag.String("import", "", "Copy the loaded dictionary into this SQLite database and exit")
	factorizations := flag.Bool("factorizations", false, "Print outcome buckets for every guess")
	bench := flag.Int("bench", 0, "Self-play the first N solutions and print the guess distribution")
	rounds := flag.Int("rounds", 6, "Row limit for -bench games")
	workers := flag.Int("workers", 0, "Scoring goroutines (0 = GOMAXPROCS)")
	useColor := flag.Bool("color", false, "Render outcomes as coloured tiles")
	logLevel := flag.String("log-level", "warn", "zerolog level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx := context.Background()
	src := words.Source{File: *wordsFile, DB: *dbPath}
	dict, err := words.Load(ctx, src)
	if err != nil {
		fmt.Println("Error loading dictionary:", err)
		os.Exit(1)
	}
	log.Info().Str("source", src.String()).Int("words", len(dict)).Msg("dictionary loaded")

	if *importTo != "" {
		if err := importDictionary(ctx, *importTo, src.String(), dict); err != nil {
			fmt.Println("Error importing dictionary:", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d words from %s into %s\n", len(dict), src, *importTo)
		return
	}

	s, err := solver.New(dict, solver.WithWorkers(*workers), solver.WithLogger(log.Logger))
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	if *bench > 0 {
		runBench(ctx, s, dict, *bench, *rounds, *workers)
		return
	}

	ui := &terminal{
		in:             bufio.NewScanner(os.Stdin),
		out:            os.Stdout,
		color:          *useColor,
		factorizations: *factorizations,
	}
	if err := ui.run(ctx, s); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func importDictionary(ctx context.Context, dsn, source string, dict []string) error {
	db, err := words.OpenDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := words.Migrate(ctx, db); err != nil {
		return err
	}
	return words.Import(ctx, db, source, dict)
}
