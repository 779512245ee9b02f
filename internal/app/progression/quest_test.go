package progression_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pocketpaws/paws/internal/app/progression"
	"github.com/pocketpaws/paws/internal/domain"
	"github.com/pocketpaws/paws/internal/infra/store"
)

// testRig wires a quest engine with a fresh store, streak tracker, and
// profile. AdvanceDelay is zero so batch advances run synchronously.
type testRig struct {
	store   *store.Store
	bus     *progression.Bus
	streak  *progression.StreakTracker
	profile *progression.ProfileStore
	quests  *progression.QuestEngine
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	s := testStore(t)
	bus := progression.NewBus()
	streak := progression.NewStreakTracker(s, domain.DefaultCalendar(), bus)
	profile := progression.NewProfileStore(s, progression.DefaultXPTable(), bus)
	quests := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{})
	t.Cleanup(quests.Close)
	return &testRig{store: s, bus: bus, streak: streak, profile: profile, quests: quests}
}

func questByID(t *testing.T, e *progression.QuestEngine, id string) domain.Quest {
	t.Helper()
	for _, q := range e.Quests() {
		if q.ID == id {
			return q
		}
	}
	t.Fatalf("quest %q not in catalog", id)
	return domain.Quest{}
}

func TestQuest_IncrementClampsToTarget(t *testing.T) {
	r := newRig(t)

	// b1.feed has target 2; a huge increment clamps.
	if err := r.quests.IncrementQuest("b1.feed", 100); err != nil {
		t.Fatalf("increment: %v", err)
	}
	q := questByID(t, r.quests, "b1.feed")
	if q.Completed != 2 {
		t.Errorf("completed = %d, want clamped to target 2", q.Completed)
	}
	if !q.IsComplete() {
		t.Error("quest should be complete")
	}
}

func TestQuest_IncrementCompleteIsNoOp(t *testing.T) {
	r := newRig(t)

	_ = r.quests.IncrementQuest("b1.feed", 2)
	_ = r.quests.IncrementQuest("b1.feed", 5)

	if q := questByID(t, r.quests, "b1.feed"); q.Completed != 2 {
		t.Errorf("completed = %d, want unchanged 2", q.Completed)
	}
}

func TestQuest_BoundsInvariant(t *testing.T) {
	r := newRig(t)

	// Any sequence of increments keeps 0 ≤ completed ≤ target and never
	// moves progress backwards.
	seq := []int{1, -3, 10, 0, 2}
	prev := 0
	for _, amt := range seq {
		_ = r.quests.IncrementQuest("b1.feed", amt)
		q := questByID(t, r.quests, "b1.feed")
		if q.Completed < prev {
			t.Errorf("completed fell %d → %d on amount %d", prev, q.Completed, amt)
		}
		prev = q.Completed
	}
	for _, q := range r.quests.Quests() {
		if q.Completed < 0 || (q.Target > 0 && q.Completed > q.Target) {
			t.Errorf("quest %s completed %d outside [0,%d]", q.ID, q.Completed, q.Target)
		}
	}
}

func TestQuest_NegativeIncrementIsNoOp(t *testing.T) {
	r := newRig(t)

	_ = r.quests.IncrementQuest("b1.feed", 1)
	_ = r.quests.IncrementQuest("b1.feed", -1)

	if q := questByID(t, r.quests, "b1.feed"); q.Completed != 1 {
		t.Errorf("completed = %d after negative increment, want monotone 1", q.Completed)
	}
}

func TestQuest_UnknownIsNotFoundNotPanic(t *testing.T) {
	r := newRig(t)

	if err := r.quests.IncrementQuest("b9.ghost", 1); !errors.Is(err, domain.ErrQuestNotFound) {
		t.Errorf("unknown id = %v, want ErrQuestNotFound", err)
	}
	if err := r.quests.IncrementQuestByTitle("Climb the moon", 1, 0); !errors.Is(err, domain.ErrQuestNotFound) {
		t.Errorf("unknown title = %v, want ErrQuestNotFound", err)
	}
	if err := r.quests.ResetQuest("b9.ghost"); !errors.Is(err, domain.ErrQuestNotFound) {
		t.Errorf("reset unknown = %v, want ErrQuestNotFound", err)
	}
	if err := r.quests.ResetBatch(99); !errors.Is(err, domain.ErrBatchNotFound) {
		t.Errorf("reset unknown batch = %v, want ErrBatchNotFound", err)
	}
}

func TestQuest_TitleFilterDisambiguatesBatches(t *testing.T) {
	r := newRig(t)

	// "Update your mood graph" exists in batches 1, 2, and 4. Unfiltered
	// targets the active batch; an explicit filter picks another.
	_ = r.quests.IncrementQuestByTitle("Update your mood graph", 1, 0)
	if q := questByID(t, r.quests, "b1.mood"); q.Completed != 1 {
		t.Errorf("b1.mood = %d, want 1 (active batch)", q.Completed)
	}

	_ = r.quests.IncrementQuestByTitle("Update your mood graph", 2, 2)
	if q := questByID(t, r.quests, "b2.mood"); q.Completed != 2 {
		t.Errorf("b2.mood = %d, want 2 (filtered batch)", q.Completed)
	}
	if q := questByID(t, r.quests, "b4.mood"); q.Completed != 0 {
		t.Errorf("b4.mood = %d, want untouched 0", q.Completed)
	}
}

func TestQuest_StaticIncrementIdempotent(t *testing.T) {
	r := newRig(t)

	// Re-delivering the same cumulative total must not double progress.
	_ = r.quests.StaticIncrementQuestByTitle("Update your sleep graph", 1, 2)
	_ = r.quests.StaticIncrementQuestByTitle("Update your sleep graph", 1, 2)

	if q := questByID(t, r.quests, "b2.sleep"); q.Completed != 1 {
		t.Errorf("completed = %d, want 1 (idempotent under re-delivery)", q.Completed)
	}

	// A lower total than already recorded never regresses progress.
	_ = r.quests.StaticIncrementQuestByTitle("Update your sleep graph", 0, 2)
	if q := questByID(t, r.quests, "b2.sleep"); q.Completed != 1 {
		t.Errorf("completed = %d, want monotone 1", q.Completed)
	}
}

func TestQuest_BatchAdvanceScenario(t *testing.T) {
	r := newRig(t)

	// Batch 1 targets are {1,2,1}. Complete the first and third, then the
	// second twice.
	_ = r.quests.IncrementQuest("b1.mood", 1)
	_ = r.quests.IncrementQuest("b1.pet", 1)
	if r.quests.CurrentBatch() != 1 {
		t.Fatal("batch must not advance until every quest is complete")
	}
	_ = r.quests.IncrementQuest("b1.feed", 1)
	if r.quests.CurrentBatch() != 1 {
		t.Fatal("b1.feed at 1/2 — batch must not advance yet")
	}
	_ = r.quests.IncrementQuest("b1.feed", 1)

	if got := r.quests.CurrentBatch(); got != 2 {
		t.Fatalf("current batch = %d, want 2", got)
	}
	for _, q := range r.quests.BatchQuests(2) {
		if q.Completed != 0 {
			t.Errorf("batch-2 quest %s = %d, want reset to 0", q.ID, q.Completed)
		}
	}
}

func TestQuest_AdvanceAfterDelay(t *testing.T) {
	s := testStore(t)
	bus := progression.NewBus()
	streak := progression.NewStreakTracker(s, domain.DefaultCalendar(), bus)
	profile := progression.NewProfileStore(s, progression.DefaultXPTable(), bus)
	e := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{
		AdvanceDelay: 20 * time.Millisecond,
	})
	t.Cleanup(e.Close)

	e.CompleteAllInCurrentBatch()
	if e.CurrentBatch() != 1 {
		t.Fatal("advance should be deferred by the configured delay")
	}

	deadline := time.Now().Add(2 * time.Second)
	for e.CurrentBatch() != 2 {
		if time.Now().After(deadline) {
			t.Fatal("batch never advanced after the delay")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestQuest_CompleteAllInCurrentBatch(t *testing.T) {
	r := newRig(t)

	var completed []string
	r.bus.Subscribe(progression.EventQuestCompleted, func(ev progression.Event) {
		completed = append(completed, ev.Payload.(progression.QuestCompleted).QuestID)
	})

	r.quests.CompleteAllInCurrentBatch()

	if r.quests.CurrentBatch() != 2 {
		t.Errorf("batch = %d, want 2 (force-complete still advances)", r.quests.CurrentBatch())
	}
	if len(completed) < 3 {
		t.Errorf("quest-completed events = %d, want ≥3", len(completed))
	}
}

func TestQuest_StreakGatedAutoComplete(t *testing.T) {
	r := newRig(t)

	// Build a 3-day streak, then finish batch 1. Batch 2's "maintain a
	// 3-day streak" quest must auto-complete on entry.
	for i := 0; i < 3; i++ {
		_, _ = r.streak.CheckDaily(noon.AddDate(0, 0, i))
	}
	r.quests.CompleteAllInCurrentBatch()

	if r.quests.CurrentBatch() != 2 {
		t.Fatalf("batch = %d, want 2", r.quests.CurrentBatch())
	}
	if q := questByID(t, r.quests, "b2.streak3"); !q.IsComplete() {
		t.Error("streak-gated quest should auto-complete with a 3-day streak")
	}
}

func TestQuest_StreakGatedStaysOpenWithoutStreak(t *testing.T) {
	r := newRig(t)

	r.quests.CompleteAllInCurrentBatch() // no streak built

	if q := questByID(t, r.quests, "b2.streak3"); q.IsComplete() {
		t.Error("streak-gated quest must stay open below its streak target")
	}
}

func TestQuest_PopupFlaggedNotCompleted(t *testing.T) {
	r := newRig(t)

	r.quests.CompleteAllInCurrentBatch() // enter batch 2

	popups := r.quests.TakePopups()
	if len(popups) != 1 || popups[0] != "b2.hello" {
		t.Errorf("popups = %v, want [b2.hello]", popups)
	}
	if q := questByID(t, r.quests, "b2.hello"); q.IsComplete() {
		t.Error("popup quest is flagged for the UI, never auto-completed")
	}

	// Drained.
	if again := r.quests.TakePopups(); len(again) != 0 {
		t.Errorf("second drain = %v, want empty", again)
	}
}

func TestQuest_BatchCycleWraps(t *testing.T) {
	r := newRig(t)

	// Force-completing every batch in turn must wrap back to 1.
	max := r.quests.MaxBatch()
	for i := 0; i < max; i++ {
		r.quests.CompleteAllInCurrentBatch()
	}
	if got := r.quests.CurrentBatch(); got != 1 {
		t.Errorf("batch after full cycle = %d, want wrapped to 1", got)
	}
}

func TestQuest_PendingRewardsAreASet(t *testing.T) {
	r := newRig(t)

	_ = r.quests.IncrementQuest("b1.mood", 1) // completes b1.mood
	_ = r.quests.IncrementQuest("b1.mood", 1) // no-op, must not re-add

	pending := r.quests.PendingRewards()
	count := 0
	for _, id := range pending {
		if id == "b1.mood" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("b1.mood appears %d times in pending rewards, want 1", count)
	}
}

func TestQuest_ClaimReward(t *testing.T) {
	r := newRig(t)

	_ = r.quests.IncrementQuest("b1.mood", 1) // reward: 50 XP, 10 coins

	if _, _, err := r.quests.ClaimReward("b1.mood"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	p := r.profile.Profile()
	if p.XP != 50 || p.Coins != 10 {
		t.Errorf("profile = %d XP / %d coins, want 50/10", p.XP, p.Coins)
	}

	// Removing the id from pending is the only way to clear it, and it can
	// only happen once.
	if _, _, err := r.quests.ClaimReward("b1.mood"); !errors.Is(err, domain.ErrRewardNotPending) {
		t.Errorf("second claim = %v, want ErrRewardNotPending", err)
	}
	if _, _, err := r.quests.ClaimReward("b1.feed"); !errors.Is(err, domain.ErrRewardNotPending) {
		t.Errorf("unearned claim = %v, want ErrRewardNotPending", err)
	}
}

func TestQuest_SurvivesRestart(t *testing.T) {
	s := testStore(t)
	bus := progression.NewBus()
	streak := progression.NewStreakTracker(s, domain.DefaultCalendar(), bus)
	profile := progression.NewProfileStore(s, progression.DefaultXPTable(), bus)

	e := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{})
	_ = e.IncrementQuest("b1.feed", 1)
	_ = e.IncrementQuest("b1.mood", 1)
	e.Close()

	e2 := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{})
	t.Cleanup(e2.Close)
	if q := questByID(t, e2, "b1.feed"); q.Completed != 1 {
		t.Errorf("reloaded b1.feed = %d, want 1", q.Completed)
	}
	if got := e2.PendingRewards(); len(got) != 1 || got[0] != "b1.mood" {
		t.Errorf("reloaded pending = %v, want [b1.mood]", got)
	}
}

func TestQuest_CompleteBatchAdvancesAfterRestart(t *testing.T) {
	s := testStore(t)
	bus := progression.NewBus()
	streak := progression.NewStreakTracker(s, domain.DefaultCalendar(), bus)
	profile := progression.NewProfileStore(s, progression.DefaultXPTable(), bus)

	// Complete batch 1 while the advance is still waiting on a long delay,
	// then shut down. The store now holds a fully-complete batch 1.
	e := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{
		AdvanceDelay: time.Hour,
	})
	e.CompleteAllInCurrentBatch()
	if e.CurrentBatch() != 1 {
		t.Fatal("setup: advance should still be pending")
	}
	e.Close()

	// Reopening must pick the advance back up instead of stalling on a
	// batch no increment can ever touch again.
	e2 := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{})
	t.Cleanup(e2.Close)
	if got := e2.CurrentBatch(); got != 2 {
		t.Fatalf("batch after reload = %d, want 2", got)
	}
	for _, q := range e2.BatchQuests(2) {
		if q.Completed != 0 {
			t.Errorf("batch-2 quest %s = %d, want reset to 0", q.ID, q.Completed)
		}
	}
}

func TestQuest_FailedClaimKeepsRewardPending(t *testing.T) {
	r := newRig(t)

	_ = r.quests.IncrementQuest("b1.mood", 1)

	// With the store gone the profile grant cannot persist; the claim must
	// fail without losing the reward.
	_ = r.store.Close()
	if _, _, err := r.quests.ClaimReward("b1.mood"); err == nil {
		t.Fatal("claim should fail when the grant cannot be persisted")
	}

	pending := r.quests.PendingRewards()
	if len(pending) != 1 || pending[0] != "b1.mood" {
		t.Errorf("pending = %v, want [b1.mood] retained for retry", pending)
	}
	if r.profile.Profile().XP != 0 {
		t.Errorf("xp = %d, want 0 (grant never applied)", r.profile.Profile().XP)
	}
}

func TestQuest_MalformedBlobFallsBackToDefaults(t *testing.T) {
	s := testStore(t)
	_ = s.Set("quest.allQuests", []byte("{not json"))
	_ = s.Set("quest.currentBatch", []byte(`{"schema_version":99,"data":7}`))

	bus := progression.NewBus()
	streak := progression.NewStreakTracker(s, domain.DefaultCalendar(), bus)
	profile := progression.NewProfileStore(s, progression.DefaultXPTable(), bus)
	e := progression.NewQuestEngine(s, streak, profile, bus, progression.QuestConfig{})
	t.Cleanup(e.Close)

	if e.CurrentBatch() != 1 {
		t.Errorf("batch = %d, want default 1 on decode failure", e.CurrentBatch())
	}
	for _, q := range e.Quests() {
		if q.Completed != 0 {
			t.Errorf("quest %s = %d, want fresh 0", q.ID, q.Completed)
		}
	}
}

func TestQuest_ResetReinitializes(t *testing.T) {
	r := newRig(t)

	r.quests.CompleteAllInCurrentBatch()
	if err := r.quests.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if r.quests.CurrentBatch() != 1 {
		t.Errorf("batch = %d, want 1", r.quests.CurrentBatch())
	}
	if len(r.quests.PendingRewards()) != 0 {
		t.Error("pending rewards should be empty after reset")
	}
	for _, q := range r.quests.Quests() {
		if q.Completed != 0 {
			t.Errorf("quest %s = %d, want 0", q.ID, q.Completed)
		}
	}
}

func TestQuest_BatchAdvancePublishes(t *testing.T) {
	r := newRig(t)

	var advances []progression.BatchAdvanced
	r.bus.Subscribe(progression.EventBatchAdvanced, func(ev progression.Event) {
		advances = append(advances, ev.Payload.(progression.BatchAdvanced))
	})

	r.quests.CompleteAllInCurrentBatch()

	if len(advances) != 1 {
		t.Fatalf("advance events = %d, want 1", len(advances))
	}
	if advances[0].From != 1 || advances[0].To != 2 {
		t.Errorf("advance = %+v, want 1→2", advances[0])
	}
}

func TestQuest_BatchCompletionFraction(t *testing.T) {
	r := newRig(t)

	if got := r.quests.BatchCompletion(); got != 0 {
		t.Errorf("fresh completion = %f, want 0", got)
	}
	// Batch 1: targets {1,2,1}. One of three quests done, one half done.
	_ = r.quests.IncrementQuest("b1.mood", 1)
	_ = r.quests.IncrementQuest("b1.feed", 1)
	want := (1.0 + 0.5 + 0.0) / 3.0
	if got := r.quests.BatchCompletion(); got != want {
		t.Errorf("completion = %f, want %f", got, want)
	}
}
