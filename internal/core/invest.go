// Investment goal math. Progress percentages are computed with exact
// decimal arithmetic so large holdings don't pick up float drift.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func (g InvestmentGoal) Validate() error {
	if strings.TrimSpace(g.Asset) == "" {
		return ErrInvalidName
	}
	if g.CurrentlyHeld < 0 || g.Target < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Progress returns the goal's completion percentage, rounded to a whole
// number and capped at 100. A goal without a positive target reports 0.
func (g InvestmentGoal) Progress() int64 {
	return GoalProgress(g.CurrentlyHeld, g.Target)
}

// GoalProgress computes min(100, held/target*100) with target <= 0
// reporting 0.
func GoalProgress(currentlyHeld, target int64) int64 {
	if target <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(currentlyHeld).
		Mul(hundred).
		Div(decimal.NewFromInt(target)).
		Round(0)
	if pct.GreaterThan(hundred) {
		return 100
	}
	return pct.IntPart()
}

// TotalProgress averages the clamped progress of all goals, 0 when the
// list is empty.
func TotalProgress(goals []InvestmentGoal) int64 {
	if len(goals) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, g := range goals {
		sum = sum.Add(decimal.NewFromInt(g.Progress()))
	}
	return sum.Div(decimal.NewFromInt(int64(len(goals)))).Round(0).IntPart()
}

// FormatCents renders a cent amount as a decimal string ("12.34").
func FormatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(hundred).StringFixed(2)
}
