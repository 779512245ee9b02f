package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. NotFound errors are
// no-op signals: callers log them and carry on, they never escape to the UI.

var (
	// Quest errors
	ErrQuestNotFound = errors.New("quest not found")
	ErrBatchNotFound = errors.New("batch not found")

	// Reward errors
	ErrRewardNotPending = errors.New("quest has no pending reward")

	// Streak errors
	ErrNoFreezeAvailable = errors.New("no streak freeze available")
	ErrNoMissToFreeze    = errors.New("no missed day to freeze")

	// Badge errors
	ErrBadgeNotFound   = errors.New("badge not found")
	ErrUnknownCategory = errors.New("unknown badge category")

	// Profile errors
	ErrInsufficientCoins = errors.New("insufficient coins")
)
