package progression

import (
	"fmt"
	"sync"

	"github.com/pocketpaws/paws/internal/domain"
)

// ProfileStore owns the progression profile: XP, level, coin balance, and
// the named usage counters that feed badge evaluation. Level only increases;
// XP and coins only increase except on an explicit spend.
type ProfileStore struct {
	mu    sync.Mutex
	store domain.Store
	table XPTable
	bus   *Bus
	p     domain.Profile
}

// NewProfileStore loads the persisted profile, falling back to first-run
// defaults (level 1, empty counters).
func NewProfileStore(store domain.Store, table XPTable, bus *Bus) *ProfileStore {
	ps := &ProfileStore{store: store, table: table, bus: bus}
	if !loadBlob(store, keyProfile, &ps.p) {
		ps.p = domain.NewProfile()
	}
	if ps.p.Counters == nil {
		ps.p.Counters = make(map[string]int64)
	}
	if ps.p.Level < 1 {
		ps.p.Level = 1
	}
	return ps
}

// Profile returns a copy of the current profile.
func (ps *ProfileStore) Profile() domain.Profile {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.copyLocked()
}

// Snapshot builds the read-only statistics view badges evaluate against.
func (ps *ProfileStore) Snapshot(currentStreak int) domain.StatsSnapshot {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	counters := make(map[string]int64, len(ps.p.Counters))
	for k, v := range ps.p.Counters {
		counters[k] = v
	}
	return domain.StatsSnapshot{
		Level:         ps.p.Level,
		CurrentStreak: currentStreak,
		Student:       ps.p.Student,
		Counters:      counters,
	}
}

// Grant adds XP and coins, typically from a claimed quest reward.
// Returns the resulting level and whether it rose.
func (ps *ProfileStore) Grant(xp, coins int64) (int, bool, error) {
	if xp < 0 || coins < 0 {
		return 0, false, fmt.Errorf("grant amounts must be non-negative, got xp=%d coins=%d", xp, coins)
	}

	ps.mu.Lock()
	// Work on a staged copy; commit only once the write lands so a failed
	// claim can be retried without double-granting.
	next := ps.p
	next.XP += xp
	next.Coins += coins

	oldLevel := next.Level
	if lvl := ps.table.LevelForXP(next.XP); lvl > next.Level {
		next.Level = lvl
	}
	newLevel := next.Level

	err := saveBlob(ps.store, keyProfile, next)
	if err != nil {
		ps.mu.Unlock()
		return 0, false, err
	}
	ps.p = next
	ps.mu.Unlock()

	if newLevel > oldLevel {
		ps.bus.Publish(EventLevelUp, LevelUp{Level: newLevel})
	}
	return newLevel, newLevel > oldLevel, nil
}

// SpendCoins deducts from the coin balance, the only path by which coins
// decrease.
func (ps *ProfileStore) SpendCoins(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("spend amount must be positive, got %d", amount)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.p.Coins < amount {
		return domain.ErrInsufficientCoins
	}
	ps.p.Coins -= amount
	return saveBlob(ps.store, keyProfile, ps.p)
}

// IncrementCounter bumps a named usage counter (e.g. a statistic graph
// update) and returns the new value.
func (ps *ProfileStore) IncrementCounter(name string, delta int64) (int64, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("counter delta must be positive, got %d", delta)
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.p.Counters[name] += delta
	if err := saveBlob(ps.store, keyProfile, ps.p); err != nil {
		return 0, err
	}
	return ps.p.Counters[name], nil
}

// SetStudent flags the profile as a student, which adds the study graph to
// the badge aggregate total.
func (ps *ProfileStore) SetStudent(student bool) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.p.Student = student
	return saveBlob(ps.store, keyProfile, ps.p)
}

// ProgressToNextLevel reports the profile's progress within its current
// level as a fraction in [0,1].
func (ps *ProfileStore) ProgressToNextLevel() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.table.ProgressToNextLevel(ps.p.XP, ps.p.Level)
}

// Reset deletes the persisted profile and reverts to first-run defaults.
func (ps *ProfileStore) Reset() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if err := ps.store.Delete(keyProfile); err != nil {
		return err
	}
	ps.p = domain.NewProfile()
	return nil
}

func (ps *ProfileStore) copyLocked() domain.Profile {
	p := ps.p
	p.Counters = make(map[string]int64, len(ps.p.Counters))
	for k, v := range ps.p.Counters {
		p.Counters[k] = v
	}
	return p
}
