package core

import "testing"

func TestHabitUnitLabels(t *testing.T) {
	cases := []struct {
		unit        HabitUnit
		long, short string
	}{
		{HabitUnit{Kind: UnitReps}, "reps", "reps"},
		{HabitUnit{Kind: UnitTime}, "minutes", "min"},
		{HabitUnit{Kind: UnitCustom, Label: "km"}, "km", "km"},
		{HabitUnit{Kind: UnitNone}, "—", "—"},
	}
	for i, tc := range cases {
		if got := tc.unit.LongLabel(); got != tc.long {
			t.Fatalf("case %d long label: expected %q, got %q", i, tc.long, got)
		}
		if got := tc.unit.ShortLabel(); got != tc.short {
			t.Fatalf("case %d short label: expected %q, got %q", i, tc.short, got)
		}
	}
}

func TestHabitUnitPredicates(t *testing.T) {
	if !(HabitUnit{Kind: UnitNone}).IsNone() || (HabitUnit{Kind: UnitReps}).IsNone() {
		t.Fatalf("IsNone misbehaves")
	}
	if !(HabitUnit{Kind: UnitTime}).IsTime() || (HabitUnit{Kind: UnitCustom}).IsTime() {
		t.Fatalf("IsTime misbehaves")
	}
}

func TestNewHabitUnit(t *testing.T) {
	u, err := NewHabitUnit(UnitCustom, "km")
	if err != nil || u.Label != "km" {
		t.Fatalf("expected custom km, got %+v (err=%v)", u, err)
	}
	u, err = NewHabitUnit(UnitReps, "ignored")
	if err != nil || u.Label != "" {
		t.Fatalf("non-custom kinds should drop the label, got %+v", u)
	}
	if _, err := NewHabitUnit("bogus", ""); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestHabitValidate(t *testing.T) {
	good := Habit{Name: "Push-ups", WeeklyTarget: 5, Unit: HabitUnit{Kind: UnitReps}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Habit{
		{Name: "", WeeklyTarget: 5, Unit: HabitUnit{Kind: UnitReps}},
		{Name: "   ", WeeklyTarget: 5, Unit: HabitUnit{Kind: UnitReps}},
		{Name: "a", WeeklyTarget: 0, Unit: HabitUnit{Kind: UnitReps}},
		{Name: "a", WeeklyTarget: 8, Unit: HabitUnit{Kind: UnitReps}},
		{Name: "a", WeeklyTarget: 5, Unit: HabitUnit{Kind: "bogus"}},
		{Name: "a", WeeklyTarget: 5, Unit: HabitUnit{Kind: UnitReps}, DefaultAmount: ptr(-1)},
	}
	for i, h := range bads {
		if err := h.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateRangeDays(t *testing.T) {
	cases := []struct {
		r    DateRange
		days int64
	}{
		{DateRange{Day{1, 6, 2024}, Day{1, 6, 2024}}, 1},
		{DateRange{Day{1, 6, 2024}, Day{7, 6, 2024}}, 7},
		{DateRange{Day{28, 2, 2024}, Day{1, 3, 2024}}, 3}, // leap year
		{DateRange{Day{1, 1, 2024}, Day{31, 12, 2024}}, 366},
	}
	for i, tc := range cases {
		if got := tc.r.Days(); got != tc.days {
			t.Fatalf("case %d expected %d days, got %d", i, tc.days, got)
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Day{5, 6, 2024}, Day{10, 6, 2024}}
	if !r.Contains(Day{5, 6, 2024}) || !r.Contains(Day{10, 6, 2024}) {
		t.Fatalf("range should include both endpoints")
	}
	if r.Contains(Day{4, 6, 2024}) || r.Contains(Day{11, 6, 2024}) {
		t.Fatalf("range should exclude days outside it")
	}
}

func TestDateRangeEachDayCrossesMonths(t *testing.T) {
	r := DateRange{Day{30, 6, 2024}, Day{2, 7, 2024}}
	var days []Day
	r.EachDay(func(d Day) { days = append(days, d) })
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[1] != (Day{1, 7, 2024}) {
		t.Fatalf("expected july 1st in the middle, got %+v", days[1])
	}
}
