// Package api provides the HTTP server for the Paws progression engine.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pocketpaws/paws/internal/app/progression"
)

// Server is the Paws HTTP API server.
type Server struct {
	profile   *progression.ProfileStore
	streak    *progression.StreakTracker
	quests    *progression.QuestEngine
	badges    *progression.BadgeEvaluator
	attention *progression.AttentionGate

	metricsEnabled bool
	resetAll       func() error // nil disables DELETE /api/progression
}

// NewServer creates a new API server over the progression services.
func NewServer(profile *progression.ProfileStore, streak *progression.StreakTracker, quests *progression.QuestEngine, badges *progression.BadgeEvaluator, attention *progression.AttentionGate) *Server {
	return &Server{
		profile:   profile,
		streak:    streak,
		quests:    quests,
		badges:    badges,
		attention: attention,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetResetAll sets the clear-all-progression hook.
func (s *Server) SetResetAll(fn func() error) { s.resetAll = fn }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/status", s.handleStatus)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/quests", func(r chi.Router) {
			r.Get("/", s.handleQuests)
			r.Post("/increment", s.handleIncrementByTitle)
			r.Post("/complete-batch", s.handleCompleteBatch)
			r.Post("/{id}/increment", s.handleIncrementQuest)
			r.Post("/{id}/reset", s.handleResetQuest)
			r.Post("/batch/{n}/reset", s.handleResetBatch)
		})

		r.Route("/streak", func(r chi.Router) {
			r.Get("/", s.handleStreak)
			r.Post("/check", s.handleStreakCheck)
			r.Post("/freeze", s.handleStreakFreeze)
			r.Post("/freeze/consume", s.handleStreakFreezeConsume)
		})

		r.Route("/badges", func(r chi.Router) {
			r.Get("/", s.handleBadges)
			r.Post("/recompute", s.handleBadgesRecompute)
		})

		r.Post("/attention/check", s.handleAttentionCheck)

		r.Get("/level", s.handleLevel)

		r.Route("/rewards", func(r chi.Router) {
			r.Get("/", s.handleRewards)
			r.Post("/{id}/claim", s.handleClaimReward)
		})

		r.Delete("/progression", s.handleResetProgression)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}
