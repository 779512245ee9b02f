package progression

import (
	"sync"
	"time"

	"github.com/pocketpaws/paws/internal/domain"
)

// AttentionPolicy governs the "pet needs attention" local notification.
// The actual push scheduler is an external collaborator; this gate only
// decides whether a notification is allowed to fire.
type AttentionPolicy struct {
	// CompletionThreshold: only nag while the active batch sits below this
	// completion fraction.
	CompletionThreshold float64
	// MinInterval rate-limits consecutive notifications.
	MinInterval time.Duration
}

// DefaultAttentionPolicy nags below one-third completion, at most once per
// 30 minutes.
func DefaultAttentionPolicy() AttentionPolicy {
	return AttentionPolicy{
		CompletionThreshold: 1.0 / 3.0,
		MinInterval:         30 * time.Minute,
	}
}

// AttentionGate applies the policy and remembers when it last fired.
type AttentionGate struct {
	mu        sync.Mutex
	store     domain.Store
	policy    AttentionPolicy
	lastFired time.Time
}

// NewAttentionGate loads the last-fired timestamp so restarts do not reset
// the rate limit.
func NewAttentionGate(store domain.Store, policy AttentionPolicy) *AttentionGate {
	g := &AttentionGate{store: store, policy: policy}
	var last time.Time
	if loadBlob(store, keyAttention, &last) {
		g.lastFired = last
	}
	return g
}

// ShouldNotify reports whether an attention notification may fire now, and
// if so records the firing. batchCompletion is the active batch's progress
// fraction.
func (g *AttentionGate) ShouldNotify(batchCompletion float64, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if batchCompletion >= g.policy.CompletionThreshold {
		return false
	}
	if !g.lastFired.IsZero() && now.Sub(g.lastFired) < g.policy.MinInterval {
		return false
	}

	g.lastFired = now
	if err := saveBlob(g.store, keyAttention, now); err != nil {
		// The decision stands; a lost timestamp only risks one extra nag.
		return true
	}
	return true
}

// NeedsAttention reports whether a notification would fire now, without
// recording anything. Read-only callers (status endpoints, dashboards) use
// this so polling never consumes the rate-limit window.
func (g *AttentionGate) NeedsAttention(batchCompletion float64, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if batchCompletion >= g.policy.CompletionThreshold {
		return false
	}
	return g.lastFired.IsZero() || now.Sub(g.lastFired) >= g.policy.MinInterval
}

// Policy returns the gate's policy.
func (g *AttentionGate) Policy() AttentionPolicy {
	return g.policy
}

// Reset forgets the last firing and deletes its persisted timestamp.
func (g *AttentionGate) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Delete(keyAttention); err != nil {
		return err
	}
	g.lastFired = time.Time{}
	return nil
}
