// Steady Climb year plan: built-in progressive monthly targets for a
// handful of well-known habits. Plan values are computed on lookup and
// never persisted; a stored MonthlyTarget always wins over the plan.
package core

import "strings"

// PlanTargets holds the Steady Climb targets for one calendar month.
type PlanTargets struct {
	PushUps      int64
	Squats       int64
	PlankSeconds int64
}

// steadyClimbPlan maps calendar month (1-12) to that month's targets.
// Push-ups and squats ramp 20 to 75 in steps of 5; plank ramps from one
// minute to four in 15 second steps (with a 30 second jump into month 12).
var steadyClimbPlan = map[int64]PlanTargets{
	1:  {PushUps: 20, Squats: 20, PlankSeconds: 60},
	2:  {PushUps: 25, Squats: 25, PlankSeconds: 75},
	3:  {PushUps: 30, Squats: 30, PlankSeconds: 90},
	4:  {PushUps: 35, Squats: 35, PlankSeconds: 105},
	5:  {PushUps: 40, Squats: 40, PlankSeconds: 120},
	6:  {PushUps: 45, Squats: 45, PlankSeconds: 135},
	7:  {PushUps: 50, Squats: 50, PlankSeconds: 150},
	8:  {PushUps: 55, Squats: 55, PlankSeconds: 165},
	9:  {PushUps: 60, Squats: 60, PlankSeconds: 180},
	10: {PushUps: 65, Squats: 65, PlankSeconds: 195},
	11: {PushUps: 70, Squats: 70, PlankSeconds: 210},
	12: {PushUps: 75, Squats: 75, PlankSeconds: 240},
}

// nonPlanHabits are habits explicitly outside the plan even though a
// user may track them alongside it.
var nonPlanHabits = []string{"16/8 fasting", "run", "squash"}

// SteadyClimbTargets returns the plan targets for a calendar month.
// Months outside 1-12 clamp to the nearest valid month.
func SteadyClimbTargets(month int64) PlanTargets {
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	return steadyClimbPlan[month]
}

// NormalizeHabitName lowercases, trims and strips non-alphanumerics so
// "Push-ups", "push ups" and "pushups" all match the same plan entry.
func NormalizeHabitName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SteadyClimbTargetForHabit returns the plan target for a habit name and
// month, or false when the habit has no plan target. Push-ups and
// press-ups share one ramp.
func SteadyClimbTargetForHabit(habitName string, month int64) (int64, bool) {
	normalized := NormalizeHabitName(habitName)
	for _, na := range nonPlanHabits {
		if NormalizeHabitName(na) == normalized {
			return 0, false
		}
	}

	targets := SteadyClimbTargets(month)
	switch normalized {
	case "pushups", "pressups":
		return targets.PushUps, true
	case "squats":
		return targets.Squats, true
	case "plank":
		return targets.PlankSeconds, true
	}
	return 0, false
}
