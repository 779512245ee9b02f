// Package domain holds the progression engine's shared types.
// Quests, streaks, badges, and the profile are plain values; all behavior
// with side effects lives in the app layer.
package domain

import "time"

// ─── Quest Types ────────────────────────────────────────────────────────────

// QuestKind categorizes how a quest is driven.
type QuestKind string

const (
	// QuestCount quests advance via explicit increments.
	QuestCount QuestKind = "count"
	// QuestStreakGated quests auto-complete when the login streak reaches Target.
	QuestStreakGated QuestKind = "streak"
	// QuestPopup quests exist to surface a popup; they are flagged for the UI
	// on batch entry, never auto-completed.
	QuestPopup QuestKind = "popup"
)

// QuestDefinition is an immutable catalog entry. Titles are deliberately
// reused across batches; ID and Batch disambiguate.
type QuestDefinition struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Kind        QuestKind `json:"kind"`
	Target      int       `json:"target"`
	RewardXP    int64     `json:"reward_xp"`
	RewardCoins int64     `json:"reward_coins"`
	Batch       int       `json:"batch"`
}

// QuestState is the mutable half of a quest, persisted per definition ID.
type QuestState struct {
	ID        string `json:"id"`
	Completed int    `json:"completed"`
}

// Quest is a definition joined with its current state.
type Quest struct {
	QuestDefinition
	Completed int `json:"completed"`
}

// IsComplete reports whether the quest has reached its target.
func (q Quest) IsComplete() bool {
	return q.Completed >= q.Target
}

// Progress returns completion as a fraction in [0,1]. Zero-target quests
// report 0 until force-completed.
func (q Quest) Progress() float64 {
	if q.Target <= 0 {
		return 0
	}
	p := float64(q.Completed) / float64(q.Target)
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakRecord tracks consecutive login days.
// Current resets to 1 on a miss, never to 0 — once a user has logged in at
// least once they are never streak-less.
type StreakRecord struct {
	Current   int        `json:"current"`
	Longest   int        `json:"longest"`
	TotalDays int        `json:"total_days"`
	LastLogin *time.Time `json:"last_login"`
	Freezes   int        `json:"freezes"` // banked consumable freeze credits
}

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeCategory is the closed set of badge groupings.
type BadgeCategory string

const (
	CatGraphs  BadgeCategory = "graphs"
	CatStreaks BadgeCategory = "streaks"
	CatLevels  BadgeCategory = "levels"
	CatCare    BadgeCategory = "care"
)

// BadgeCategories returns all known categories in display order.
func BadgeCategories() []BadgeCategory {
	return []BadgeCategory{CatGraphs, CatStreaks, CatLevels, CatCare}
}

// Valid reports whether the category is one of the known set.
func (c BadgeCategory) Valid() bool {
	switch c {
	case CatGraphs, CatStreaks, CatLevels, CatCare:
		return true
	}
	return false
}

// BadgeRuleKind selects how badge progress is computed.
type BadgeRuleKind string

const (
	// RuleCounter: progress = min(counter/threshold, 1).
	RuleCounter BadgeRuleKind = "counter"
	// RuleAggregate: progress = distinct non-zero graph stats / total graphs.
	RuleAggregate BadgeRuleKind = "aggregate"
	// RuleLevel: progress = min(level/threshold, 1).
	RuleLevel BadgeRuleKind = "level"
)

// BadgeRule describes a badge's unlock condition against a StatsSnapshot.
// Stat names a usage counter for RuleCounter; ignored otherwise.
type BadgeRule struct {
	Kind      BadgeRuleKind `json:"kind"`
	Stat      string        `json:"stat,omitempty"`
	Threshold int           `json:"threshold"`
}

// Badge is an achievement with a progress fraction and a monotonic unlocked
// flag. UnlockedAt is set exactly once, on the locked→unlocked transition.
type Badge struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Icon       string        `json:"icon"`
	Category   BadgeCategory `json:"category"`
	Rule       BadgeRule     `json:"-"` // from the catalog, not persisted
	Progress   float64       `json:"progress"`
	Unlocked   bool          `json:"unlocked"`
	UnlockedAt *time.Time    `json:"unlocked_at,omitempty"`
}

// ─── Profile Types ──────────────────────────────────────────────────────────

// GraphStats are the statistic graphs whose update counters feed badges.
// StudyGraph only counts for student profiles.
const (
	GraphMood     = "graph.mood"
	GraphSleep    = "graph.sleep"
	GraphWater    = "graph.water"
	GraphExercise = "graph.exercise"
	GraphScreen   = "graph.screen"
	GraphStudy    = "graph.study"
)

// GraphStatNames returns the usage counters that count as statistic graphs.
func GraphStatNames(student bool) []string {
	names := []string{GraphMood, GraphSleep, GraphWater, GraphExercise, GraphScreen}
	if student {
		names = append(names, GraphStudy)
	}
	return names
}

// Profile is the progression subset of the user profile: XP, level, coins,
// and the named usage counters badges read.
type Profile struct {
	XP       int64            `json:"xp"`
	Level    int              `json:"level"`
	Coins    int64            `json:"coins"`
	Student  bool             `json:"student"`
	Counters map[string]int64 `json:"counters"`
}

// NewProfile returns a first-run profile at level 1.
func NewProfile() Profile {
	return Profile{Level: 1, Counters: make(map[string]int64)}
}

// StatsSnapshot is the read-only view of user statistics fed to the badge
// evaluation pass.
type StatsSnapshot struct {
	Level         int              `json:"level"`
	CurrentStreak int              `json:"current_streak"`
	Student       bool             `json:"student"`
	Counters      map[string]int64 `json:"counters"`
}
