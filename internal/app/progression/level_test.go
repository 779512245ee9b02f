package progression_test

import (
	"testing"

	"github.com/pocketpaws/paws/internal/app/progression"
)

func TestXPRequiredForLevel(t *testing.T) {
	table := progression.DefaultXPTable()

	tests := []struct {
		level int
		want  int64
	}{
		{0, 0},
		{1, 0},
		{2, 100},
		{3, 250},  // 100+150
		{4, 500},  // +250
		{5, 900},  // +400
		{11, 11000},
	}
	for _, tt := range tests {
		if got := table.XPRequiredForLevel(tt.level); got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestXPRequiredForLevel_NonDecreasing(t *testing.T) {
	table := progression.DefaultXPTable()
	prev := int64(0)
	for lvl := 1; lvl <= 50; lvl++ {
		got := table.XPRequiredForLevel(lvl)
		if got < prev {
			t.Fatalf("XPRequiredForLevel(%d) = %d < XPRequiredForLevel(%d) = %d", lvl, got, lvl-1, prev)
		}
		prev = got
	}
}

func TestXPRequiredForLevel_BeyondTable(t *testing.T) {
	// Past the defined entries every level costs the constant increment —
	// never zero.
	table := progression.DefaultXPTable()
	l20 := table.XPRequiredForLevel(20)
	l21 := table.XPRequiredForLevel(21)
	if l21-l20 != table.Increment {
		t.Errorf("step beyond table = %d, want increment %d", l21-l20, table.Increment)
	}
}

func TestProgressToNextLevel(t *testing.T) {
	table := progression.DefaultXPTable()

	tests := []struct {
		name  string
		xp    int64
		level int
		want  float64
	}{
		{"fresh", 0, 1, 0},
		{"halfway L1", 50, 1, 0.5},
		{"at threshold", 100, 2, 0},
		{"half of L2", 175, 2, 0.5},
		{"below own level clamps low", 0, 3, 0},
		{"above next clamps high", 5000, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.ProgressToNextLevel(tt.xp, tt.level)
			if got != tt.want {
				t.Errorf("ProgressToNextLevel(%d, %d) = %.3f, want %.3f", tt.xp, tt.level, got, tt.want)
			}
		})
	}
}

func TestProgressToNextLevel_Bounds(t *testing.T) {
	table := progression.DefaultXPTable()
	for _, xp := range []int64{-100, 0, 1, 99, 100, 999999} {
		for lvl := 0; lvl <= 30; lvl++ {
			p := table.ProgressToNextLevel(xp, lvl)
			if p < 0 || p > 1 {
				t.Fatalf("ProgressToNextLevel(%d, %d) = %f out of [0,1]", xp, lvl, p)
			}
		}
	}
}

func TestProgressToNextLevel_EqualThresholds(t *testing.T) {
	// A zero increment makes adjacent thresholds equal past the table; the
	// result must be 1.0, never a division by zero.
	table := progression.XPTable{Steps: []int64{100}, Increment: 0}
	if p := table.ProgressToNextLevel(100, 2); p != 1.0 {
		t.Errorf("equal thresholds should report 1.0, got %f", p)
	}
}

func TestLevelForXP(t *testing.T) {
	table := progression.DefaultXPTable()

	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{900, 5},
	}
	for _, tt := range tests {
		if got := table.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelForXP_RoundTrip(t *testing.T) {
	table := progression.DefaultXPTable()
	for lvl := 1; lvl <= 30; lvl++ {
		xp := table.XPRequiredForLevel(lvl)
		if got := table.LevelForXP(xp); got != lvl {
			t.Errorf("LevelForXP(XPRequiredForLevel(%d)) = %d", lvl, got)
		}
	}
}
