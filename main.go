// main.go
//
// Entry point for the solver HTTP service.
// Responsibilities:
//   - Load configuration (.env, optional YAML, environment).
//   - Configure zerolog's global level.
//   - Load the dictionary (sqlite > file > embedded) and start the router.

package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	src := words.Source{File: cfg.WordsFile, DB: cfg.WordsDB}
	dict, err := words.Load(ctx, src)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("source", src.String()).Msg("failed to load dictionary")
	}

	mem := store.NewMemoryStore(cfg.SessionTTLDuration())
	srv, err := httpserver.New(mem, dict, src.String(), cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", src.String()).Msg("invalid dictionary")
	}
	log.Info().Str("port", cfg.Port).Str("source", src.String()).Int("words", len(dict)).Msg("starting wordle-solver")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
