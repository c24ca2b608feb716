// cmd/wordle-solver/bench.go
//
// -bench: self-play a prefix of the solution list and print how many guesses
// each win took.

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle/apps/solver/internal/autoplay"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// runBench self-plays the first n solutions and prints how many guesses each took.
func runBench(ctx context.Context, s *solver.Solver, dict []string, n, rounds, workers int) {
	answers := s.Solutions()
	if n < len(answers) {
		answers = answers[:n]
	}

	dist := make(map[int]int)
	lost := []string{}
	total := 0
	bar := progressbar.Default(int64(len(answers)))
	for _, answer := range answers {
		res, err := autoplay.Play(ctx, dict, answer, rounds, solver.WithWorkers(workers))
		if err != nil {
			log.Error().Err(err).Str("answer", answer).Msg("self-play failed")
			return
		}
		if res.Won() {
			dist[len(res.Steps)]++
			total += len(res.Steps)
		} else {
			lost = append(lost, answer)
		}
		_ = bar.Add(1)
	}

	keys := make([]int, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	fmt.Println("Guesses  Games")
	for _, k := range keys {
		fmt.Printf("%7d  %5d\n", k, dist[k])
	}
	if won := len(answers) - len(lost); won > 0 {
		fmt.Printf("Average: %.3f over %d wins\n", float64(total)/float64(won), won)
	}
	if len(lost) > 0 {
		fmt.Printf("Lost (%d): %v\n", len(lost), lost)
	}
}
