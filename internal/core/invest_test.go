package core

import "testing"

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		held, target, pct int64
	}{
		{50, 100, 50},
		{100, 100, 100},
		{150, 100, 100}, // clamped
		{0, 100, 0},
		{10, 0, 0}, // no target reports zero
		{10, -5, 0},
		{1, 3, 33},
		{2, 3, 67},
	}
	for i, tc := range cases {
		if got := GoalProgress(tc.held, tc.target); got != tc.pct {
			t.Fatalf("case %d expected %d, got %d", i, tc.pct, got)
		}
	}
}

func TestTotalProgress(t *testing.T) {
	goals := []InvestmentGoal{
		{Asset: "BTC", CurrentlyHeld: 50, Target: 100},
		{Asset: "ETH", CurrentlyHeld: 100, Target: 100},
	}
	if got := TotalProgress(goals); got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}
	if got := TotalProgress(nil); got != 0 {
		t.Fatalf("expected 0 for no goals, got %d", got)
	}
}

func TestInvestmentGoalValidate(t *testing.T) {
	good := InvestmentGoal{Asset: "BTC", CurrentlyHeld: 1, Target: 10}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []InvestmentGoal{
		{Asset: "", Target: 10},
		{Asset: "BTC", CurrentlyHeld: -1, Target: 10},
		{Asset: "BTC", CurrentlyHeld: 1, Target: -10},
	}
	for i, g := range bads {
		if err := g.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		out   string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{1234, "12.34"},
		{100000, "1000.00"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.cents); got != tc.out {
			t.Fatalf("%d expected %q, got %q", tc.cents, tc.out, got)
		}
	}
}
