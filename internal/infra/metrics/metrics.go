// Package metrics provides Prometheus metrics for the Paws progression
// engine — counters for quest, batch, badge, and level activity, gauges for
// the live streak and level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Quests ─────────────────────────────────────────────────────────────────

// QuestsCompleted tracks completed quests by batch.
var QuestsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "paws",
	Name:      "quests_completed_total",
	Help:      "Total quests completed.",
}, []string{"batch"})

// BatchesAdvanced tracks batch transitions.
var BatchesAdvanced = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "paws",
	Name:      "batches_advanced_total",
	Help:      "Total quest-batch advances.",
})

// CurrentBatch tracks the active batch number.
var CurrentBatch = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "paws",
	Name:      "quest_batch_current",
	Help:      "Active quest batch number.",
})

// ─── Streak ─────────────────────────────────────────────────────────────────

// CurrentStreak tracks the current login-streak length.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "paws",
	Name:      "streak_current_days",
	Help:      "Current login streak in days.",
})

// LongestStreak tracks the longest streak seen.
var LongestStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "paws",
	Name:      "streak_longest_days",
	Help:      "Longest login streak in days.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgesUnlocked tracks badge unlocks by category.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "paws",
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
}, []string{"category"})

// ─── Levels ─────────────────────────────────────────────────────────────────

// LevelUps tracks level-up events.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "paws",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// CurrentLevel tracks the profile's level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "paws",
	Name:      "level_current",
	Help:      "Current profile level.",
})
