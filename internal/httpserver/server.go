// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/daily".
//   - Session endpoints (token-bound): /session/*.
//   - Admin endpoints (bcrypt admin key): /admin/*, mounted only when a key hash is configured.
//   - Periodic eviction of idle sessions.
//
// Notes:
//   - Every session owns its own solver; the dictionary is shared read-only.
//   - The request context flows into NextGuess, so the Timeout middleware
//     also cancels long searches.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Server bundles router, session store and the shared dictionary.
type Server struct {
	r      *chi.Mux
	store  store.Store
	cfg    config.Config
	dict   []string // shared, never mutated
	source string   // where dict was loaded from
	daily  *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
// It fails if dict is not a valid solver dictionary.
func New(st store.Store, dict []string, source string, cfg config.Config) (*Server, error) {
	base, err := solver.New(dict)
	if err != nil {
		return nil, err
	}
	s := &Server{r: chi.NewRouter(), store: st, cfg: cfg, dict: dict, source: source}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	if cfg.RequestTimeout > 0 {
		s.r.Use(chimw.Timeout(cfg.RequestTimeoutDuration())) // bound handler time, cancels searches
	}
	s.r.Use(jsonContentType)        // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","/daily","POST /session/new","GET /session/guess","POST /session/answer","GET /session/solutions","GET /session/factorizations"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Sessions: token-bound
	s.mountSession()

	// Daily self-play transcript: public
	s.daily = s.mountDaily(s.r, base.Solutions())

	// Admin: only when a key hash is configured
	if cfg.AdminKeyHash != "" {
		s.r.With(s.requireAdmin()).Get("/admin/words", s.handleAdminWords)
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s, nil
}

// Start begins serving HTTP on addr and sweeps idle sessions every minute.
func (s *Server) Start(addr string) error {
	go s.sweep(time.Minute)
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// sweep evicts idle sessions forever at the given interval.
func (s *Server) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		if n := s.store.Sweep(context.Background()); n > 0 {
			log.Info().Int("evicted", n).Int("live", s.store.Len()).Msg("sessions swept")
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- ADMIN -------------------------------------

// adminWordsRes is returned by GET /admin/words.
type adminWordsRes struct {
	words.Stats
	Source   string `json:"source"`
	Imported string `json:"imported,omitempty"` // origin recorded by the last import into WORDS_DB
	Sessions int    `json:"sessions"`
}

// handleAdminWords reports dictionary and session counts, plus the import
// origin when the dictionary lives in sqlite.
func (s *Server) handleAdminWords(w http.ResponseWriter, r *http.Request) {
	res := adminWordsRes{
		Stats:    words.Summarize(s.dict),
		Source:   s.source,
		Sessions: s.store.Len(),
	}
	if s.cfg.WordsDB != "" {
		imported, err := importedFrom(r.Context(), s.cfg.WordsDB)
		if err != nil {
			log.Error().Err(err).Str("db", s.cfg.WordsDB).Msg("read import origin")
			http.Error(w, `{"error":"db_failed"}`, http.StatusInternalServerError)
			return
		}
		res.Imported = imported
	}
	_ = json.NewEncoder(w).Encode(res)
}

func importedFrom(ctx context.Context, dsn string) (string, error) {
	db, err := words.OpenDB(dsn)
	if err != nil {
		return "", err
	}
	defer db.Close()
	if err := words.Migrate(ctx, db); err != nil {
		return "", err
	}
	return words.ImportedFrom(ctx, db)
}

// ------------------------------- small util --------------------------------

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
