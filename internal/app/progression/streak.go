package progression

import (
	"sync"
	"time"

	"github.com/pocketpaws/paws/internal/domain"
)

// StreakTracker owns the daily-login streak. The check is keyed to calendar
// days (never elapsed hours) and is idempotent per day, so it is safe to run
// on every app foregrounding.
//
// The freeze is an explicit, consumable resource: it is never applied
// automatically. Callers that want to save a broken streak must invoke
// ConsumeFreezeOnMiss before the daily check runs its reset branch.
type StreakTracker struct {
	mu    sync.Mutex
	store domain.Store
	bus   *Bus
	cal   domain.Calendar
	rec   domain.StreakRecord
}

// CheckResult reports the outcome of a daily check.
type CheckResult struct {
	// Updated is true when the check changed state (first login or a new day).
	Updated bool `json:"updated"`
	// ShowPopup tells the UI to celebrate the streak.
	ShowPopup bool                `json:"show_popup"`
	Record    domain.StreakRecord `json:"record"`
}

// NewStreakTracker loads persisted streak state, falling back to a zero
// record on first run or decode failure.
func NewStreakTracker(store domain.Store, cal domain.Calendar, bus *Bus) *StreakTracker {
	st := &StreakTracker{store: store, bus: bus, cal: cal}
	if !loadBlob(store, keyStreak, &st.rec) {
		st.rec = domain.StreakRecord{}
	}
	return st
}

// Record returns a copy of the current streak state.
func (st *StreakTracker) Record() domain.StreakRecord {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rec
}

// Current returns the current streak length.
func (st *StreakTracker) Current() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rec.Current
}

// CheckDaily evaluates the login-streak state machine for the given moment.
//
//   - First-ever login: streak, longest, and total all become 1.
//   - Same calendar day as the last login: no state change.
//   - Exactly one day later: streak extends.
//   - Gap of two or more days: streak resets to 1, never 0.
func (st *StreakTracker) CheckDaily(now time.Time) (CheckResult, error) {
	st.mu.Lock()

	if st.rec.LastLogin == nil {
		st.rec.Current = 1
		st.rec.Longest = 1
		st.rec.TotalDays = 1
		t := now
		st.rec.LastLogin = &t
		return st.finishCheckLocked(now)
	}

	gap := st.cal.DaysBetween(*st.rec.LastLogin, now)
	if gap <= 0 {
		// Same day (or a clock that went backwards) — already counted.
		res := CheckResult{Updated: false, ShowPopup: false, Record: st.rec}
		st.mu.Unlock()
		return res, nil
	}

	if gap == 1 {
		st.rec.Current++
	} else {
		st.rec.Current = 1
	}
	if st.rec.Current > st.rec.Longest {
		st.rec.Longest = st.rec.Current
	}
	st.rec.TotalDays++
	t := now
	st.rec.LastLogin = &t
	return st.finishCheckLocked(now)
}

// finishCheckLocked persists, releases the lock, and publishes the update.
func (st *StreakTracker) finishCheckLocked(now time.Time) (CheckResult, error) {
	err := saveBlob(st.store, keyStreak, st.rec)
	res := CheckResult{Updated: true, ShowPopup: true, Record: st.rec}
	st.mu.Unlock()
	if err != nil {
		return res, err
	}
	st.bus.Publish(EventStreakUpdated, StreakUpdated{
		Current: res.Record.Current,
		Longest: res.Record.Longest,
	})
	return res, nil
}

// AddFreeze banks one freeze credit (the purchasable "streak saver").
func (st *StreakTracker) AddFreeze() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.rec.Freezes++
	return saveBlob(st.store, keyStreak, st.rec)
}

// ConsumeFreezeOnMiss spends one banked freeze credit to bridge a pending
// miss: when the last login is two or more calendar days ago, the gap is
// closed so the next CheckDaily takes the consecutive-day branch instead of
// resetting. Returns ErrNoMissToFreeze when there is nothing to save and
// ErrNoFreezeAvailable when no credit is banked.
func (st *StreakTracker) ConsumeFreezeOnMiss(now time.Time) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.rec.LastLogin == nil {
		return domain.ErrNoMissToFreeze
	}
	if st.cal.DaysBetween(*st.rec.LastLogin, now) < 2 {
		return domain.ErrNoMissToFreeze
	}
	if st.rec.Freezes <= 0 {
		return domain.ErrNoFreezeAvailable
	}

	st.rec.Freezes--
	yesterday := st.cal.StartOfDay(now).AddDate(0, 0, -1)
	st.rec.LastLogin = &yesterday
	return saveBlob(st.store, keyStreak, st.rec)
}

// Reset deletes persisted streak state and reverts to first-run defaults.
func (st *StreakTracker) Reset() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.store.Delete(keyStreak); err != nil {
		return err
	}
	st.rec = domain.StreakRecord{}
	return nil
}
