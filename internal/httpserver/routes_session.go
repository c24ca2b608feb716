// internal/httpserver/routes_session.go
//
// HTTP routes for interactive solving.
//   - POST   /session/new            → start a session, returns its token
//   - GET    /session/guess          → best next guess for the session
//   - POST   /session/answer         → apply a guess and its outcome ("xgxyy")
//   - GET    /session/solutions      → remaining candidates
//   - GET    /session/factorizations → outcome buckets for ?guess=WORD
//   - DELETE /session                → drop the session
//
// Every route except /session/new requires the session token.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
)

// mountSession registers all /session routes.
func (s *Server) mountSession() {
	s.r.Post("/session/new", s.handleNewSession)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireSession())
		r.Get("/session/guess", s.handleNextGuess)
		r.Post("/session/answer", s.handleAnswer)
		r.Get("/session/solutions", s.handleSolutions)
		r.Get("/session/factorizations", s.handleFactorizations)
		r.Delete("/session", s.handleDeleteSession)
	})
}

// newSessionRes is returned by POST /session/new.
type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	Length    int    `json:"length"`
	Remaining int    `json:"remaining"`
}

// handleNewSession creates a solver over the shared dictionary and binds it to a token.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	id := genID()
	sv, err := solver.New(s.dict,
		solver.WithWorkers(s.cfg.Workers),
		solver.WithLogger(log.Logger.With().Str("session", id).Logger()),
	)
	if err != nil {
		log.Error().Err(err).Msg("create solver")
		http.Error(w, `{"error":"invalid_dictionary"}`, http.StatusInternalServerError)
		return
	}
	sess := &store.Session{ID: id, Solver: sv}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.signToken(id)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setTokenCookie(w, tok, exp)
	log.Info().Str("session", id).Int("words", len(s.dict)).Msg("session started")
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: id,
		Token:     tok,
		Length:    sv.Len(),
		Remaining: sv.Remaining(),
	})
}

// guessRes is returned by GET /session/guess.
type guessRes struct {
	Guess      string `json:"guess"`
	WorstCase  int    `json:"worstCase"`
	Remaining  int    `json:"remaining"`
	IsSolution bool   `json:"isSolution"` // the guess itself could be the answer
}

// handleNextGuess runs the minimax search; the request context bounds it.
func (s *Server) handleNextGuess(w http.ResponseWriter, r *http.Request) {
	sv := currentSession(r).Solver
	guess, err := sv.NextGuess(r.Context())
	if err != nil {
		// The Timeout middleware answers 504 on deadline; a cancelled client gets nothing.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("session", currentSession(r).ID).Msg("next guess abandoned")
			return
		}
		log.Error().Err(err).Msg("next guess")
		http.Error(w, `{"error":"search_failed"}`, http.StatusInternalServerError)
		return
	}
	res := guessRes{Guess: guess, Remaining: sv.Remaining()}
	if guess != "" {
		res.WorstCase, _ = sv.WorstCase(guess)
		res.IsSolution = sv.IsSolution(guess)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// answerReq is the payload for POST /session/answer.
type answerReq struct {
	Guess   string `json:"guess"`
	Outcome string `json:"outcome"` // e.g. "xgxyy"
}

// solutionsRes is returned by /session/answer and /session/solutions.
type solutionsRes struct {
	Remaining int      `json:"remaining"`
	Solutions []string `json:"solutions"`
}

// handleAnswer narrows the solution space.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sv := currentSession(r).Solver
	o, err := sv.ParseOutcome(strings.TrimSpace(req.Outcome))
	if err != nil {
		http.Error(w, `{"error":"invalid_format"}`, http.StatusBadRequest)
		return
	}
	if err := sv.ApplyAnswer(strings.ToUpper(strings.TrimSpace(req.Guess)), o); err != nil {
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
		return
	}
	writeSolutions(w, sv.Solutions())
}

// handleSolutions lists the remaining candidates.
func (s *Server) handleSolutions(w http.ResponseWriter, r *http.Request) {
	writeSolutions(w, currentSession(r).Solver.Solutions())
}

func writeSolutions(w http.ResponseWriter, sols []string) {
	if sols == nil {
		sols = []string{}
	}
	_ = json.NewEncoder(w).Encode(solutionsRes{Remaining: len(sols), Solutions: sols})
}

// bucketRes is one non-empty factorization bucket.
type bucketRes struct {
	Outcome string   `json:"outcome"`
	Marks   []int    `json:"marks"` // per-letter: 0=absent, 1=present, 2=correct
	Words   []string `json:"words"`
}

// handleFactorizations partitions the solution space by outcome for ?guess=.
func (s *Server) handleFactorizations(w http.ResponseWriter, r *http.Request) {
	sv := currentSession(r).Solver
	guess := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("guess")))
	fs, err := sv.Factorizations(guess)
	if err != nil {
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
		return
	}
	c := sv.Codec()
	out := []bucketRes{}
	for _, f := range solver.NonEmpty(fs) {
		out = append(out, bucketRes{Outcome: c.Format(f.Outcome), Marks: c.Digits(f.Outcome), Words: f.Words})
	}
	_ = json.NewEncoder(w).Encode(out)
}

// handleDeleteSession drops the session and clears the cookie.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), currentSession(r).ID)
	s.clearTokenCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
