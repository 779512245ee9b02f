package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pocketpaws/paws/internal/domain"
)

// ─── Progression REST API (/api/*) ───────────────────────────────────────────
// Thin JSON layer over the progression services. Handlers translate sentinel
// errors to status codes and otherwise stay out of the way.

// writeDomainError maps sentinel errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuestNotFound),
		errors.Is(err, domain.ErrBatchNotFound),
		errors.Is(err, domain.ErrBadgeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRewardNotPending),
		errors.Is(err, domain.ErrNoFreezeAvailable),
		errors.Is(err, domain.ErrNoMissToFreeze),
		errors.Is(err, domain.ErrInsufficientCoins):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- /api/status ---

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	completion := s.quests.BatchCompletion()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "ok",
		"batch":            s.quests.CurrentBatch(),
		"batch_completion": completion,
		"streak":           s.streak.Current(),
		"level":            s.profile.Profile().Level,
		"needs_attention":  s.attention.NeedsAttention(completion, time.Now()),
	})
}

// --- /api/attention/check ---

// The notification scheduler polls this; a true response counts as a firing
// and consumes the rate-limit window. Status reads use the side-effect-free
// NeedsAttention instead.
func (s *Server) handleAttentionCheck(w http.ResponseWriter, r *http.Request) {
	notify := s.attention.ShouldNotify(s.quests.BatchCompletion(), time.Now())
	writeJSON(w, http.StatusOK, map[string]interface{}{"notify": notify})
}

// --- /api/quests ---

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	popups := s.quests.TakePopups()
	if popups == nil {
		popups = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batch":     s.quests.CurrentBatch(),
		"max_batch": s.quests.MaxBatch(),
		"quests":    s.quests.Quests(),
		"popups":    popups,
	})
}

type incrementRequest struct {
	Amount int `json:"amount"`
}

func (s *Server) handleIncrementQuest(w http.ResponseWriter, r *http.Request) {
	var req incrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	if err := s.quests.IncrementQuest(chi.URLParam(r, "id"), req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}
	s.handleQuests(w, r)
}

type incrementByTitleRequest struct {
	Title  string `json:"title"`
	Amount int    `json:"amount"`
	Batch  int    `json:"batch,omitempty"`
	Static bool   `json:"static,omitempty"`
}

func (s *Server) handleIncrementByTitle(w http.ResponseWriter, r *http.Request) {
	var req incrementByTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Amount == 0 && !req.Static {
		req.Amount = 1
	}

	var err error
	if req.Static {
		err = s.quests.StaticIncrementQuestByTitle(req.Title, req.Amount, req.Batch)
	} else {
		err = s.quests.IncrementQuestByTitle(req.Title, req.Amount, req.Batch)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.handleQuests(w, r)
}

func (s *Server) handleResetQuest(w http.ResponseWriter, r *http.Request) {
	if err := s.quests.ResetQuest(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetBatch(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "batch must be a number")
		return
	}
	if err := s.quests.ResetBatch(n); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompleteBatch(w http.ResponseWriter, r *http.Request) {
	s.quests.CompleteAllInCurrentBatch()
	s.handleQuests(w, r)
}

// --- /api/streak ---

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.streak.Record())
}

func (s *Server) handleStreakCheck(w http.ResponseWriter, r *http.Request) {
	res, err := s.streak.CheckDaily(time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStreakFreeze(w http.ResponseWriter, r *http.Request) {
	if err := s.streak.AddFreeze(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.streak.Record())
}

func (s *Server) handleStreakFreezeConsume(w http.ResponseWriter, r *http.Request) {
	if err := s.streak.ConsumeFreezeOnMiss(time.Now()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.streak.Record())
}

// --- /api/badges ---

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges":   s.badges.Badges(),
		"unlocked": s.badges.UnlockedCount(),
	})
}

func (s *Server) handleBadgesRecompute(w http.ResponseWriter, r *http.Request) {
	stats := s.profile.Snapshot(s.streak.Current())
	newly, err := s.badges.Recompute(stats, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if newly == nil {
		newly = []domain.Badge{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"newly_unlocked": newly,
		"unlocked":       s.badges.UnlockedCount(),
	})
}

// --- /api/level ---

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	p := s.profile.Profile()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":    p.Level,
		"xp":       p.XP,
		"coins":    p.Coins,
		"progress": s.profile.ProgressToNextLevel(),
	})
}

// --- /api/rewards ---

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	pending := s.quests.PendingRewards()
	if pending == nil {
		pending = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pending": pending})
}

func (s *Server) handleClaimReward(w http.ResponseWriter, r *http.Request) {
	level, leveledUp, err := s.quests.ClaimReward(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":      level,
		"leveled_up": leveledUp,
	})
}

// --- DELETE /api/progression ---

func (s *Server) handleResetProgression(w http.ResponseWriter, r *http.Request) {
	if s.resetAll == nil {
		writeError(w, http.StatusNotImplemented, "reset is not wired")
		return
	}
	if err := s.resetAll(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
