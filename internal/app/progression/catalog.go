package progression

import "github.com/pocketpaws/paws/internal/domain"

// ─── Quest Catalog ──────────────────────────────────────────────────────────
// Static configuration: the ordered sequence of quest batches. Insertion
// order is definition/display order. Titles repeat across batches on
// purpose — ID and Batch disambiguate. Batches are consumed in ascending
// order and cycle back to 1 after the last.

// DefaultQuestCatalog returns the full quest catalog.
func DefaultQuestCatalog() []domain.QuestDefinition {
	return []domain.QuestDefinition{
		// ── Batch 1: first steps ───────────────────────────────────────
		{ID: "b1.mood", Title: "Update your mood graph", Kind: domain.QuestCount, Target: 1, RewardXP: 50, RewardCoins: 10, Batch: 1},
		{ID: "b1.feed", Title: "Feed your pet", Kind: domain.QuestCount, Target: 2, RewardXP: 40, RewardCoins: 10, Batch: 1},
		{ID: "b1.pet", Title: "Pet your pet", Kind: domain.QuestCount, Target: 1, RewardXP: 30, RewardCoins: 5, Batch: 1},

		// ── Batch 2: building habits ───────────────────────────────────
		{ID: "b2.mood", Title: "Update your mood graph", Kind: domain.QuestCount, Target: 3, RewardXP: 80, RewardCoins: 15, Batch: 2},
		{ID: "b2.sleep", Title: "Update your sleep graph", Kind: domain.QuestCount, Target: 2, RewardXP: 70, RewardCoins: 15, Batch: 2},
		{ID: "b2.streak3", Title: "Maintain a 3-day streak", Kind: domain.QuestStreakGated, Target: 3, RewardXP: 100, RewardCoins: 25, Batch: 2},
		{ID: "b2.hello", Title: "A surprise awaits", Kind: domain.QuestPopup, Target: 1, RewardXP: 20, RewardCoins: 5, Batch: 2},

		// ── Batch 3: daily rhythm ──────────────────────────────────────
		{ID: "b3.water", Title: "Update your water graph", Kind: domain.QuestCount, Target: 3, RewardXP: 90, RewardCoins: 20, Batch: 3},
		{ID: "b3.feed", Title: "Feed your pet", Kind: domain.QuestCount, Target: 5, RewardXP: 80, RewardCoins: 20, Batch: 3},
		{ID: "b3.events", Title: "Complete a calendar event", Kind: domain.QuestCount, Target: 2, RewardXP: 100, RewardCoins: 25, Batch: 3},

		// ── Batch 4: commitment ────────────────────────────────────────
		{ID: "b4.exercise", Title: "Update your exercise graph", Kind: domain.QuestCount, Target: 3, RewardXP: 120, RewardCoins: 30, Batch: 4},
		{ID: "b4.streak7", Title: "Maintain a 7-day streak", Kind: domain.QuestStreakGated, Target: 7, RewardXP: 200, RewardCoins: 50, Batch: 4},
		{ID: "b4.cosmetic", Title: "Buy a cosmetic for your pet", Kind: domain.QuestCount, Target: 1, RewardXP: 80, RewardCoins: 0, Batch: 4},
		{ID: "b4.mood", Title: "Update your mood graph", Kind: domain.QuestCount, Target: 5, RewardXP: 110, RewardCoins: 25, Batch: 4},

		// ── Batch 5: well-rounded ──────────────────────────────────────
		{ID: "b5.screen", Title: "Update your screen-time graph", Kind: domain.QuestCount, Target: 3, RewardXP: 130, RewardCoins: 30, Batch: 5},
		{ID: "b5.sleep", Title: "Update your sleep graph", Kind: domain.QuestCount, Target: 5, RewardXP: 140, RewardCoins: 30, Batch: 5},
		{ID: "b5.events", Title: "Complete a calendar event", Kind: domain.QuestCount, Target: 5, RewardXP: 150, RewardCoins: 35, Batch: 5},
		{ID: "b5.gift", Title: "A surprise awaits", Kind: domain.QuestPopup, Target: 1, RewardXP: 30, RewardCoins: 10, Batch: 5},

		// ── Batch 6: mastery ───────────────────────────────────────────
		{ID: "b6.streak14", Title: "Maintain a 14-day streak", Kind: domain.QuestStreakGated, Target: 14, RewardXP: 400, RewardCoins: 100, Batch: 6},
		{ID: "b6.feed", Title: "Feed your pet", Kind: domain.QuestCount, Target: 10, RewardXP: 180, RewardCoins: 40, Batch: 6},
		{ID: "b6.water", Title: "Update your water graph", Kind: domain.QuestCount, Target: 7, RewardXP: 170, RewardCoins: 40, Batch: 6},
		{ID: "b6.exercise", Title: "Update your exercise graph", Kind: domain.QuestCount, Target: 7, RewardXP: 190, RewardCoins: 45, Batch: 6},
	}
}

// ─── Badge Catalog ──────────────────────────────────────────────────────────
// Rules are tagged structs rather than closures so progress fractions can be
// recomputed and serialized by the evaluation pass.

// DefaultBadges returns the badge catalog grouped by category, in display
// order.
func DefaultBadges() map[domain.BadgeCategory][]domain.Badge {
	return map[domain.BadgeCategory][]domain.Badge{
		domain.CatGraphs: {
			{ID: "graphs.mood_10", Name: "Mood Mapper", Icon: "🌦️", Category: domain.CatGraphs,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: domain.GraphMood, Threshold: 10}},
			{ID: "graphs.sleep_10", Name: "Dream Keeper", Icon: "🌙", Category: domain.CatGraphs,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: domain.GraphSleep, Threshold: 10}},
			{ID: "graphs.water_10", Name: "Hydration Hero", Icon: "💧", Category: domain.CatGraphs,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: domain.GraphWater, Threshold: 10}},
			{ID: "graphs.exercise_10", Name: "Motion Master", Icon: "🏃", Category: domain.CatGraphs,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: domain.GraphExercise, Threshold: 10}},
			{ID: "graphs.all", Name: "Well-Rounded", Icon: "🎯", Category: domain.CatGraphs,
				Rule: domain.BadgeRule{Kind: domain.RuleAggregate}},
		},
		domain.CatStreaks: {
			{ID: "streaks.7", Name: "Week Warrior", Icon: "🔥", Category: domain.CatStreaks,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: statCurrentStreak, Threshold: 7}},
			{ID: "streaks.30", Name: "Monthly Machine", Icon: "💪", Category: domain.CatStreaks,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: statCurrentStreak, Threshold: 30}},
			{ID: "streaks.100", Name: "Centurion", Icon: "🏛️", Category: domain.CatStreaks,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: statCurrentStreak, Threshold: 100}},
		},
		domain.CatLevels: {
			{ID: "levels.5", Name: "5-Day Champion", Icon: "🌅", Category: domain.CatLevels,
				Rule: domain.BadgeRule{Kind: domain.RuleLevel, Threshold: 5}},
			{ID: "levels.10", Name: "10-Day Champion", Icon: "⭐", Category: domain.CatLevels,
				Rule: domain.BadgeRule{Kind: domain.RuleLevel, Threshold: 10}},
			{ID: "levels.25", Name: "25-Day Champion", Icon: "👑", Category: domain.CatLevels,
				Rule: domain.BadgeRule{Kind: domain.RuleLevel, Threshold: 25}},
		},
		domain.CatCare: {
			{ID: "care.feed_25", Name: "Chef de Paws", Icon: "🍽️", Category: domain.CatCare,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: "care.feed", Threshold: 25}},
			{ID: "care.pet_50", Name: "Best Friend", Icon: "🐾", Category: domain.CatCare,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: "care.pet", Threshold: 50}},
			{ID: "care.cosmetic_5", Name: "Stylist", Icon: "🎀", Category: domain.CatCare,
				Rule: domain.BadgeRule{Kind: domain.RuleCounter, Stat: "care.cosmetic", Threshold: 5}},
		},
	}
}
