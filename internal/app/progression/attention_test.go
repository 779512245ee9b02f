package progression_test

import (
	"testing"
	"time"

	"github.com/pocketpaws/paws/internal/app/progression"
)

func TestAttention_FiresWhenBatchNeglected(t *testing.T) {
	g := progression.NewAttentionGate(testStore(t), progression.DefaultAttentionPolicy())

	if !g.ShouldNotify(0.0, noon) {
		t.Error("zero completion should fire")
	}
}

func TestAttention_SuppressedAboveThreshold(t *testing.T) {
	g := progression.NewAttentionGate(testStore(t), progression.DefaultAttentionPolicy())

	// At or above a third of the batch done, the user is engaged enough.
	if g.ShouldNotify(1.0/3.0, noon) {
		t.Error("completion at the threshold must not fire")
	}
	if g.ShouldNotify(0.5, noon) {
		t.Error("completion above the threshold must not fire")
	}
}

func TestAttention_RateLimited(t *testing.T) {
	g := progression.NewAttentionGate(testStore(t), progression.DefaultAttentionPolicy())

	if !g.ShouldNotify(0.1, noon) {
		t.Fatal("first check should fire")
	}
	if g.ShouldNotify(0.1, noon.Add(10*time.Minute)) {
		t.Error("second check inside the interval must not fire")
	}
	if !g.ShouldNotify(0.1, noon.Add(31*time.Minute)) {
		t.Error("check past the interval should fire again")
	}
}

func TestAttention_SuppressedCheckDoesNotResetTimer(t *testing.T) {
	g := progression.NewAttentionGate(testStore(t), progression.DefaultAttentionPolicy())

	_ = g.ShouldNotify(0.1, noon)
	// An engaged check in between leaves the rate limit anchored to the
	// last actual firing.
	_ = g.ShouldNotify(0.9, noon.Add(20*time.Minute))
	if !g.ShouldNotify(0.1, noon.Add(31*time.Minute)) {
		t.Error("suppressed checks must not push the rate-limit window")
	}
}

func TestAttention_NeedsAttentionIsReadOnly(t *testing.T) {
	g := progression.NewAttentionGate(testStore(t), progression.DefaultAttentionPolicy())

	// Any number of read-only peeks leaves the rate-limit window untouched.
	for i := 0; i < 5; i++ {
		if !g.NeedsAttention(0.1, noon) {
			t.Fatal("peek should report a pending notification")
		}
	}
	if !g.ShouldNotify(0.1, noon) {
		t.Error("peeking must not consume the firing")
	}

	// After a real firing the peek reflects the window.
	if g.NeedsAttention(0.1, noon.Add(10*time.Minute)) {
		t.Error("peek inside the interval should be false")
	}
	if !g.NeedsAttention(0.1, noon.Add(31*time.Minute)) {
		t.Error("peek past the interval should be true")
	}
}

func TestAttention_LastFiringSurvivesRestart(t *testing.T) {
	s := testStore(t)
	g := progression.NewAttentionGate(s, progression.DefaultAttentionPolicy())
	_ = g.ShouldNotify(0.0, noon)

	g2 := progression.NewAttentionGate(s, progression.DefaultAttentionPolicy())
	if g2.ShouldNotify(0.0, noon.Add(5*time.Minute)) {
		t.Error("rate limit must survive a restart")
	}
	if !g2.ShouldNotify(0.0, noon.Add(time.Hour)) {
		t.Error("gate should fire once the interval has passed")
	}
}

func TestAttention_Reset(t *testing.T) {
	g := progression.NewAttentionGate(testStore(t), progression.DefaultAttentionPolicy())
	_ = g.ShouldNotify(0.0, noon)

	if err := g.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !g.ShouldNotify(0.0, noon.Add(time.Minute)) {
		t.Error("reset should clear the rate limit")
	}
}
