package progression

import (
	"log"
	"sync"
	"time"

	"github.com/pocketpaws/paws/internal/domain"
)

// QuestConfig tunes the quest engine.
type QuestConfig struct {
	// AdvanceDelay is how long to wait after a batch completes before
	// advancing, so UI feedback can play. Zero advances synchronously.
	AdvanceDelay time.Duration
}

// QuestEngine owns the quest catalog, the current-batch pointer, and
// per-quest progress. Batches are consumed strictly in ascending order and
// wrap back to 1 after the last; the catalog is cyclic.
//
// Every mutation persists the whole catalog and then checks batch
// completion; completion detection and reward granting are decoupled
// through the pending-reward set.
type QuestEngine struct {
	mu      sync.Mutex
	store   domain.Store
	bus     *Bus
	streak  *StreakTracker
	profile *ProfileStore

	defs  []domain.QuestDefinition
	index map[string]int // quest ID → position in defs

	completed    map[string]int // quest ID → completed count
	currentBatch int
	maxBatch     int
	pending      []string // quest IDs with unclaimed rewards (set semantics)
	popups       []string // popup-kind quest IDs flagged for the UI

	advanceDelay   time.Duration
	advancePending bool
	advanceTimer   *time.Timer
}

// NewQuestEngine joins persisted quest state onto the static catalog.
// Unknown persisted IDs are dropped; missing ones start at zero.
func NewQuestEngine(store domain.Store, streak *StreakTracker, profile *ProfileStore, bus *Bus, cfg QuestConfig) *QuestEngine {
	defs := DefaultQuestCatalog()

	e := &QuestEngine{
		store:        store,
		bus:          bus,
		streak:       streak,
		profile:      profile,
		defs:         defs,
		index:        make(map[string]int, len(defs)),
		completed:    make(map[string]int, len(defs)),
		currentBatch: 1,
		advanceDelay: cfg.AdvanceDelay,
	}
	for i, d := range defs {
		e.index[d.ID] = i
		if d.Batch > e.maxBatch {
			e.maxBatch = d.Batch
		}
	}

	var states []domain.QuestState
	if loadBlob(store, keyAllQuests, &states) {
		for _, s := range states {
			if _, known := e.index[s.ID]; known && s.Completed > 0 {
				e.completed[s.ID] = s.Completed
			}
		}
	}

	var batch int
	if loadBlob(store, keyCurrentBatch, &batch) && batch >= 1 && batch <= e.maxBatch {
		e.currentBatch = batch
	}

	var pending []string
	if loadBlob(store, keyPendingRewards, &pending) {
		for _, id := range pending {
			if _, known := e.index[id]; known {
				e.addPendingLocked(id)
			}
		}
	}

	// A shutdown can land between a batch completing and its scheduled
	// advance firing, persisting a fully-complete batch. Re-run the check
	// so a reloaded complete batch advances (or re-schedules) instead of
	// stalling forever.
	e.mu.Lock()
	e.checkBatchLocked()
	e.mu.Unlock()

	return e
}

// Close stops any scheduled batch advance.
func (e *QuestEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.advanceTimer != nil {
		e.advanceTimer.Stop()
		e.advanceTimer = nil
	}
}

// ─── Read Surface ───────────────────────────────────────────────────────────

// Quests returns every quest joined with its state, in catalog order.
func (e *QuestEngine) Quests() []domain.Quest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Quest, len(e.defs))
	for i, d := range e.defs {
		out[i] = domain.Quest{QuestDefinition: d, Completed: e.completed[d.ID]}
	}
	return out
}

// CurrentBatch returns the active batch number.
func (e *QuestEngine) CurrentBatch() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentBatch
}

// MaxBatch returns the highest batch number in the catalog.
func (e *QuestEngine) MaxBatch() int {
	return e.maxBatch
}

// BatchQuests returns the quests belonging to the given batch.
func (e *QuestEngine) BatchQuests(batch int) []domain.Quest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.batchQuestsLocked(batch)
}

func (e *QuestEngine) batchQuestsLocked(batch int) []domain.Quest {
	var out []domain.Quest
	for _, d := range e.defs {
		if d.Batch == batch {
			out = append(out, domain.Quest{QuestDefinition: d, Completed: e.completed[d.ID]})
		}
	}
	return out
}

// BatchCompletion returns the active batch's mean progress in [0,1].
func (e *QuestEngine) BatchCompletion() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	quests := e.batchQuestsLocked(e.currentBatch)
	if len(quests) == 0 {
		return 0
	}
	var sum float64
	for _, q := range quests {
		sum += q.Progress()
	}
	return sum / float64(len(quests))
}

// PendingRewards returns the quest IDs with unclaimed rewards.
func (e *QuestEngine) PendingRewards() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.pending))
	copy(out, e.pending)
	return out
}

// TakePopups drains the popup-quest flags queued for the UI.
func (e *QuestEngine) TakePopups() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.popups
	e.popups = nil
	return out
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// IncrementQuest adds to a quest's completed count, clamped to its target.
// A no-op on an already-complete quest. Unknown IDs report ErrQuestNotFound.
func (e *QuestEngine) IncrementQuest(id string, amount int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx, ok := e.index[id]
	if !ok {
		log.Printf("[quest] increment: unknown quest %q", id)
		return domain.ErrQuestNotFound
	}
	e.applyLocked(idx, amount, false)
	return nil
}

// IncrementQuestByTitle adds to the quest with the given title. The catalog
// reuses titles across batches; batchFilter disambiguates (0 means the
// active batch).
func (e *QuestEngine) IncrementQuestByTitle(title string, amount, batchFilter int) error {
	return e.byTitle(title, amount, batchFilter, false)
}

// StaticIncrementQuestByTitle advances the quest using an absolute
// cumulative rule: completed becomes max(completed, amount), clamped.
// External callers can report running totals without double-counting —
// re-delivering the same amount is a no-op.
func (e *QuestEngine) StaticIncrementQuestByTitle(title string, amount, batchFilter int) error {
	return e.byTitle(title, amount, batchFilter, true)
}

func (e *QuestEngine) byTitle(title string, amount, batchFilter int, static bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	batch := batchFilter
	if batch == 0 {
		batch = e.currentBatch
	}
	for i, d := range e.defs {
		if d.Title == title && d.Batch == batch {
			e.applyLocked(i, amount, static)
			return nil
		}
	}
	log.Printf("[quest] increment: no quest titled %q in batch %d", title, batch)
	return domain.ErrQuestNotFound
}

// applyLocked mutates one quest's progress, then persists and runs the
// batch-completion check.
func (e *QuestEngine) applyLocked(idx, amount int, static bool) {
	d := e.defs[idx]
	cur := e.completed[d.ID]

	if cur >= d.Target && d.Target > 0 {
		return // already complete; increments never exceed the target
	}
	if !static && amount <= 0 {
		return // progress never decreases outside an explicit reset
	}

	next := cur + amount
	if static {
		next = amount
		if next < cur {
			next = cur // cumulative totals are monotonic
		}
	}
	if next > d.Target {
		next = d.Target
	}
	if next == cur {
		return
	}

	e.completed[d.ID] = next
	if next >= d.Target && d.Target > 0 {
		e.questCompletedLocked(d)
	}
	e.persistLocked()
	e.checkBatchLocked()
}

// ResetQuest zeroes one quest's completed count.
func (e *QuestEngine) ResetQuest(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.index[id]; !ok {
		log.Printf("[quest] reset: unknown quest %q", id)
		return domain.ErrQuestNotFound
	}
	delete(e.completed, id)
	e.persistLocked()
	return nil
}

// ResetBatch zeroes the completed count of every quest in a batch.
func (e *QuestEngine) ResetBatch(batch int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if batch < 1 || batch > e.maxBatch {
		log.Printf("[quest] reset: no batch %d", batch)
		return domain.ErrBatchNotFound
	}
	e.resetBatchLocked(batch)
	e.persistLocked()
	return nil
}

func (e *QuestEngine) resetBatchLocked(batch int) {
	for _, d := range e.defs {
		if d.Batch == batch {
			delete(e.completed, d.ID)
		}
	}
}

// CompleteAllInCurrentBatch force-completes the active batch (debug aid).
// Still runs completion checks, so the batch advances as usual.
func (e *QuestEngine) CompleteAllInCurrentBatch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, d := range e.defs {
		if d.Batch != e.currentBatch {
			continue
		}
		if e.completed[d.ID] >= d.Target && d.Target > 0 {
			continue
		}
		e.completed[d.ID] = d.Target
		e.questCompletedLocked(d)
	}
	e.persistLocked()
	e.checkBatchLocked()
}

// ClaimReward applies a completed quest's XP and coins to the profile and
// removes it from the pending set. Claiming is the only way an id leaves
// the set, and an id can only be claimed once.
func (e *QuestEngine) ClaimReward(id string) (int, bool, error) {
	e.mu.Lock()
	found := false
	for i, p := range e.pending {
		if p == id {
			e.pending = append(e.pending[:i], e.pending[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		e.mu.Unlock()
		return 0, false, domain.ErrRewardNotPending
	}
	idx := e.index[id]
	d := e.defs[idx]
	e.persistLocked()
	e.mu.Unlock()

	level, leveledUp, err := e.profile.Grant(d.RewardXP, d.RewardCoins)
	if err != nil {
		// The reward was never applied; put the id back so the claim can
		// be retried.
		e.mu.Lock()
		e.addPendingLocked(id)
		e.persistLocked()
		e.mu.Unlock()
		return 0, false, err
	}
	return level, leveledUp, nil
}

// Reset deletes all persisted quest state and reinitializes to first-run
// defaults: batch 1, every count at zero, nothing pending.
func (e *QuestEngine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.advanceTimer != nil {
		e.advanceTimer.Stop()
		e.advanceTimer = nil
	}
	e.advancePending = false
	for _, key := range []string{keyAllQuests, keyCurrentBatch, keyPendingRewards} {
		if err := e.store.Delete(key); err != nil {
			return err
		}
	}
	e.completed = make(map[string]int, len(e.defs))
	e.currentBatch = 1
	e.pending = nil
	e.popups = nil
	return nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

// questCompletedLocked records a completion: the reward goes onto the
// pending set and the event is published.
func (e *QuestEngine) questCompletedLocked(d domain.QuestDefinition) {
	e.addPendingLocked(d.ID)
	e.bus.Publish(EventQuestCompleted, QuestCompleted{QuestID: d.ID, Title: d.Title, Batch: d.Batch})
}

// addPendingLocked appends an id with set semantics — adding twice never
// duplicates a reward.
func (e *QuestEngine) addPendingLocked(id string) {
	for _, p := range e.pending {
		if p == id {
			return
		}
	}
	e.pending = append(e.pending, id)
}

// persistLocked rewrites the whole quest state: all counts (catalog order),
// the batch pointer, and the pending set.
func (e *QuestEngine) persistLocked() {
	states := make([]domain.QuestState, len(e.defs))
	for i, d := range e.defs {
		states[i] = domain.QuestState{ID: d.ID, Completed: e.completed[d.ID]}
	}
	if err := saveBlob(e.store, keyAllQuests, states); err != nil {
		log.Printf("[quest] %v", err)
	}
	if err := saveBlob(e.store, keyCurrentBatch, e.currentBatch); err != nil {
		log.Printf("[quest] %v", err)
	}
	if err := saveBlob(e.store, keyPendingRewards, e.pending); err != nil {
		log.Printf("[quest] %v", err)
	}
}

// checkBatchLocked advances the batch once every quest in it is complete.
// With a configured delay the advance is scheduled so UI feedback can play.
func (e *QuestEngine) checkBatchLocked() {
	if e.advancePending {
		return
	}
	quests := e.batchQuestsLocked(e.currentBatch)
	if len(quests) == 0 {
		return
	}
	for _, q := range quests {
		if !q.IsComplete() {
			return
		}
	}

	if e.advanceDelay <= 0 {
		e.advanceBatchLocked()
		return
	}
	e.advancePending = true
	e.advanceTimer = time.AfterFunc(e.advanceDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if !e.advancePending {
			return // reset raced the timer
		}
		e.advancePending = false
		e.advanceBatchLocked()
	})
}

// advanceBatchLocked moves to the next batch (wrapping after the last),
// zeroes its quests, and runs the auto-complete rules for the new batch.
func (e *QuestEngine) advanceBatchLocked() {
	from := e.currentBatch
	e.currentBatch = (e.currentBatch % e.maxBatch) + 1
	e.resetBatchLocked(e.currentBatch)
	e.bus.Publish(EventBatchAdvanced, BatchAdvanced{From: from, To: e.currentBatch})

	// Auto-complete rules for the batch just entered.
	streak := e.streak.Current()
	for _, d := range e.defs {
		if d.Batch != e.currentBatch {
			continue
		}
		switch d.Kind {
		case domain.QuestStreakGated:
			if streak >= d.Target {
				e.completed[d.ID] = d.Target
				e.questCompletedLocked(d)
			}
		case domain.QuestPopup:
			e.popups = append(e.popups, d.ID)
		}
	}
	e.persistLocked()

	// Auto-completion may have finished the new batch outright.
	e.checkBatchLocked()
}
