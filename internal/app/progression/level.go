package progression

// XPTable is the leveling model: explicit per-level XP costs for the low
// levels, then a constant increment for every level past the table. The
// table is configuration, not code — extending past its defined range never
// falls back to zero.
type XPTable struct {
	// Steps[i] is the XP needed to advance from level i+1 to level i+2.
	Steps []int64
	// Increment is the per-level cost for levels beyond the table.
	Increment int64
}

// DefaultXPTable is the stock leveling curve.
func DefaultXPTable() XPTable {
	return XPTable{
		Steps:     []int64{100, 150, 250, 400, 600, 900, 1300, 1800, 2400, 3100},
		Increment: 3500,
	}
}

// step returns the XP cost to advance past the given level.
func (t XPTable) step(level int) int64 {
	idx := level - 1
	if idx >= 0 && idx < len(t.Steps) {
		return t.Steps[idx]
	}
	return t.Increment
}

// XPRequiredForLevel returns the cumulative XP needed to reach the start of
// the given level. Non-decreasing in level; levels ≤1 require 0.
func (t XPTable) XPRequiredForLevel(level int) int64 {
	var total int64
	for l := 1; l < level; l++ {
		total += t.step(l)
	}
	return total
}

// ProgressToNextLevel returns progress from the given level to the next as
// a fraction clamped to [0,1]. When adjacent thresholds are equal there is
// nothing left to earn, so the result is 1.0 — never a division by zero.
func (t XPTable) ProgressToNextLevel(xp int64, level int) float64 {
	lo := t.XPRequiredForLevel(level)
	hi := t.XPRequiredForLevel(level + 1)
	if hi == lo {
		return 1.0
	}
	p := float64(xp-lo) / float64(hi-lo)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// LevelForXP returns the level an XP total lands on.
func (t XPTable) LevelForXP(xp int64) int {
	level := 1
	var total int64
	for {
		s := t.step(level)
		if s <= 0 {
			// Degenerate table (zero increment) — every further level is free,
			// but climbing forever helps nobody.
			return level
		}
		if xp < total+s {
			return level
		}
		total += s
		level++
	}
}
