package progression

import (
	"sync"
	"time"

	"github.com/pocketpaws/paws/internal/domain"
)

// statCurrentStreak is the pseudo-counter badge rules use to read the
// current streak from a StatsSnapshot.
const statCurrentStreak = "streak.current"

// EvaluateBadges is the pure recomputation pass: given the current badge
// mapping and a statistics snapshot, it returns a new mapping with updated
// progress, unlocked flags, and unlock timestamps. Badges whose rule matches
// no known statistic pass through unchanged. Unlocks are monotonic and the
// unlock timestamp is set exactly once, so re-running with unchanged inputs
// produces identical output.
func EvaluateBadges(byCat map[domain.BadgeCategory][]domain.Badge, stats domain.StatsSnapshot, now time.Time) map[domain.BadgeCategory][]domain.Badge {
	out := make(map[domain.BadgeCategory][]domain.Badge, len(byCat))
	for cat, badges := range byCat {
		next := make([]domain.Badge, len(badges))
		for i, b := range badges {
			next[i] = evaluateBadge(b, stats, now)
		}
		out[cat] = next
	}
	return out
}

func evaluateBadge(b domain.Badge, stats domain.StatsSnapshot, now time.Time) domain.Badge {
	progress, ok := badgeProgress(b.Rule, stats)
	if !ok {
		return b // unknown rule, pass through unchanged
	}

	if b.Unlocked {
		// Monotonic: never re-lock, never move the timestamp, progress
		// stays pinned at full.
		b.Progress = 1.0
		return b
	}

	b.Progress = progress
	if progress >= 1.0 {
		b.Unlocked = true
		t := now
		b.UnlockedAt = &t
	}
	return b
}

// badgeProgress computes a rule's progress fraction in [0,1].
// Returns ok=false for rules this evaluator does not know.
func badgeProgress(rule domain.BadgeRule, stats domain.StatsSnapshot) (float64, bool) {
	switch rule.Kind {
	case domain.RuleCounter:
		if rule.Threshold <= 0 {
			return 1.0, true
		}
		return clampFraction(float64(counterValue(stats, rule.Stat)) / float64(rule.Threshold)), true

	case domain.RuleAggregate:
		names := domain.GraphStatNames(stats.Student)
		var nonZero int
		for _, name := range names {
			if stats.Counters[name] > 0 {
				nonZero++
			}
		}
		return clampFraction(float64(nonZero) / float64(len(names))), true

	case domain.RuleLevel:
		if rule.Threshold <= 0 {
			return 1.0, true
		}
		return clampFraction(float64(stats.Level) / float64(rule.Threshold)), true
	}
	return 0, false
}

func counterValue(stats domain.StatsSnapshot, stat string) int64 {
	if stat == statCurrentStreak {
		return int64(stats.CurrentStreak)
	}
	return stats.Counters[stat]
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ─── Evaluator ──────────────────────────────────────────────────────────────

// BadgeEvaluator owns the persisted badge mapping and re-runs the pure pass
// whenever the achievements surface asks for it.
type BadgeEvaluator struct {
	mu     sync.Mutex
	store  domain.Store
	bus    *Bus
	badges map[domain.BadgeCategory][]domain.Badge
}

// NewBadgeEvaluator joins persisted badge state onto the static catalog.
// Definitions (name, icon, rule) always come from the catalog; persisted
// blobs only contribute progress and unlock state. Persisted badges the
// catalog no longer knows are kept as-is.
func NewBadgeEvaluator(store domain.Store, bus *Bus) *BadgeEvaluator {
	e := &BadgeEvaluator{store: store, bus: bus, badges: DefaultBadges()}

	var persisted map[domain.BadgeCategory][]domain.Badge
	if !loadBlob(store, keyBadges, &persisted) {
		return e
	}

	saved := make(map[string]domain.Badge)
	for _, badges := range persisted {
		for _, b := range badges {
			saved[b.ID] = b
		}
	}
	for cat, badges := range e.badges {
		for i, b := range badges {
			if old, ok := saved[b.ID]; ok {
				badges[i].Progress = old.Progress
				badges[i].Unlocked = old.Unlocked
				badges[i].UnlockedAt = old.UnlockedAt
				delete(saved, b.ID)
			}
		}
		e.badges[cat] = badges
	}
	// Orphans: persisted badges with no catalog entry pass through.
	for cat, badges := range persisted {
		for _, b := range badges {
			if _, orphan := saved[b.ID]; orphan && cat.Valid() {
				e.badges[cat] = append(e.badges[cat], b)
			}
		}
	}
	return e
}

// Badges returns a copy of the current mapping.
func (e *BadgeEvaluator) Badges() map[domain.BadgeCategory][]domain.Badge {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyBadges(e.badges)
}

// Recompute runs the evaluation pass against the given snapshot, persists
// the result, and publishes an event for every locked→unlocked transition.
// Safe to run repeatedly; an unchanged snapshot changes nothing.
func (e *BadgeEvaluator) Recompute(stats domain.StatsSnapshot, now time.Time) ([]domain.Badge, error) {
	e.mu.Lock()

	before := e.badges
	after := EvaluateBadges(before, stats, now)

	var newlyUnlocked []domain.Badge
	for cat, badges := range after {
		for i, b := range badges {
			if b.Unlocked && !before[cat][i].Unlocked {
				newlyUnlocked = append(newlyUnlocked, b)
			}
		}
	}

	e.badges = after
	err := saveBlob(e.store, keyBadges, e.badges)
	e.mu.Unlock()
	if err != nil {
		return newlyUnlocked, err
	}

	for _, b := range newlyUnlocked {
		e.bus.Publish(EventBadgeUnlocked, BadgeUnlocked{BadgeID: b.ID, Category: b.Category})
	}
	return newlyUnlocked, nil
}

// UnlockedCount returns how many badges are unlocked.
func (e *BadgeEvaluator) UnlockedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	var n int
	for _, badges := range e.badges {
		for _, b := range badges {
			if b.Unlocked {
				n++
			}
		}
	}
	return n
}

// Reset deletes persisted badge state and reverts to the pristine catalog.
func (e *BadgeEvaluator) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Delete(keyBadges); err != nil {
		return err
	}
	e.badges = DefaultBadges()
	return nil
}

func copyBadges(src map[domain.BadgeCategory][]domain.Badge) map[domain.BadgeCategory][]domain.Badge {
	out := make(map[domain.BadgeCategory][]domain.Badge, len(src))
	for cat, badges := range src {
		next := make([]domain.Badge, len(badges))
		copy(next, badges)
		out[cat] = next
	}
	return out
}
