// internal/httpserver/routes_daily.go
//
// HTTP route for the daily puzzle.
//   - GET /daily → the solver's self-play transcript for today's answer
//   - GET /daily?date=YYYY-MM-DD → the same for one of the last dailyWindow days
//
// The answer is chosen deterministically from date + salt, so every instance
// with the same dictionary and salt agrees. Transcripts are cached per date;
// dates that fall out of the window are dropped from the cache.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/autoplay"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// dailyWindow is how many past days /daily serves besides today.
const dailyWindow = 30

// dailyServer wraps dependencies for /daily.
type dailyServer struct {
	srv        *Server
	salt       string
	candidates []string // distinct dictionary words, sorted

	now func() time.Time

	mu    sync.Mutex
	cache map[string]dailyRes // keyed by date
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date  string          `json:"date"`
	State string          `json:"state"` // won | lost | playing (no candidates left)
	Steps []autoplay.Step `json:"steps"`
}

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router, candidates []string) *dailyServer {
	dd := &dailyServer{
		srv:        s,
		salt:       s.cfg.DailySalt,
		candidates: candidates,
		now:        time.Now,
		cache:      make(map[string]dailyRes),
	}
	r.Get("/daily", dd.handleDaily)
	return dd
}

// handleDaily self-plays the day's answer, or serves the cached transcript.
func (d *dailyServer) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := d.now()
	day, err := daily.Resolve(r.URL.Query().Get("date"), now, dailyWindow)
	if errors.Is(err, daily.ErrOutOfRange) {
		http.Error(w, `{"error":"date_out_of_range"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"bad_date"}`, http.StatusBadRequest)
		return
	}
	date := daily.DateKey(day)

	d.mu.Lock()
	res, ok := d.cache[date]
	d.mu.Unlock()
	if ok {
		_ = json.NewEncoder(w).Encode(res)
		return
	}

	answer := daily.Answer(day, d.salt, d.candidates)
	if answer == "" {
		http.Error(w, `{"error":"empty_dictionary"}`, http.StatusServiceUnavailable)
		return
	}
	played, err := autoplay.Play(r.Context(), d.srv.dict, answer, d.srv.cfg.MaxRounds,
		solver.WithWorkers(d.srv.cfg.Workers))
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("daily self-play")
		if r.Context().Err() == nil {
			http.Error(w, `{"error":"self_play_failed"}`, http.StatusInternalServerError)
		}
		return
	}
	res = dailyRes{Date: date, State: string(played.State), Steps: played.Steps}

	oldest := daily.DateKey(daily.Day(now).AddDate(0, 0, -dailyWindow))
	d.mu.Lock()
	for k := range d.cache {
		if k < oldest {
			delete(d.cache, k)
		}
	}
	d.cache[date] = res
	d.mu.Unlock()
	log.Info().Str("date", date).Str("state", res.State).Int("guesses", len(res.Steps)).Msg("daily solved")

	_ = json.NewEncoder(w).Encode(res)
}
