package tracker

import (
	"context"
	"errors"
	"testing"

	"climb/internal/amqp"
	"climb/internal/core"
	"climb/internal/memory"
)

const principal = "alice"

type capturingPublisher struct {
	events []*amqp.RecordEventMessage
}

func (p *capturingPublisher) PublishRecordEvent(_ context.Context, msg *amqp.RecordEventMessage) error {
	p.events = append(p.events, msg)
	return nil
}

func newTestService() (*Service, *capturingPublisher) {
	pub := &capturingPublisher{}
	return New(memory.New(), pub), pub
}

func ptr(v int64) *int64 { return &v }

func mustCreateHabit(t *testing.T, s *Service, name string, weeklyTarget int64, unit core.HabitUnit, defaultAmount *int64) string {
	t.Helper()
	id, err := s.CreateHabit(context.Background(), principal, name, weeklyTarget, unit, defaultAmount)
	if err != nil {
		t.Fatalf("create habit %q: %v", name, err)
	}
	return id
}

func TestCreateHabitValidation(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name         string
		habitName    string
		weeklyTarget int64
	}{
		{"empty name", "", 5},
		{"blank name", "   ", 5},
		{"target too low", "Push-ups", 0},
		{"target too high", "Push-ups", 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.CreateHabit(ctx, principal, tc.habitName, tc.weeklyTarget, core.HabitUnit{Kind: core.UnitReps}, nil); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}

	// Nothing was persisted by the failed attempts.
	habits, err := s.ListHabits(ctx, principal)
	if err != nil || len(habits) != 0 {
		t.Fatalf("expected empty registry, got %d habits (err=%v)", len(habits), err)
	}
}

func TestCreateHabitNoneUnitDropsDefaultAmount(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Stretch", 3, core.HabitUnit{Kind: core.UnitNone}, ptr(10))
	habits, _ := s.ListHabits(ctx, principal)
	if len(habits) != 1 || habits[0].ID != id {
		t.Fatalf("unexpected habits: %+v", habits)
	}
	if habits[0].DefaultAmount != nil {
		t.Fatalf("none-unit habit should have no default amount")
	}
}

func TestSetUnitToNoneClearsDefaultAmount(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, ptr(20))
	if err := s.SetUnit(ctx, principal, id, core.HabitUnit{Kind: core.UnitNone}); err != nil {
		t.Fatalf("set unit: %v", err)
	}

	habits, _ := s.ListHabits(ctx, principal)
	if habits[0].DefaultAmount != nil {
		t.Fatalf("default amount should be cleared after switching to none unit")
	}
}

func TestRegistryUpdatesUnknownHabit(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	if err := s.RenameHabit(ctx, principal, "missing", "New"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.SetWeeklyTarget(ctx, principal, "missing", 3); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.ToggleCompletion(ctx, principal, "missing", 1, 6, 2024, true, nil); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleUsesDefaultAmountAndOverwrites(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, ptr(20))

	// No explicit amount: the default pre-fills.
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, nil); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	records, _ := s.MonthlyRecords(ctx, principal, 6, 2024)
	if len(records) != 1 || records[0].Amount == nil || *records[0].Amount != 20 {
		t.Fatalf("expected one record with amount 20, got %+v", records)
	}

	// Same key with an explicit amount replaces, not adds.
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, ptr(35)); err != nil {
		t.Fatalf("toggle overwrite: %v", err)
	}
	records, _ = s.MonthlyRecords(ctx, principal, 6, 2024)
	if len(records) != 1 || *records[0].Amount != 35 {
		t.Fatalf("expected single record with amount 35, got %+v", records)
	}

	total, err := s.LifetimeTotal(ctx, principal, id)
	if err != nil || total != 35 {
		t.Fatalf("expected lifetime total 35, got %d (err=%v)", total, err)
	}
}

func TestToggleOffIsIdempotent(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Plank", 5, core.HabitUnit{Kind: core.UnitTime}, nil)

	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, ptr(90)); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, false, nil); err != nil {
			t.Fatalf("toggle off %d: %v", i, err)
		}
	}

	records, _ := s.MonthlyRecords(ctx, principal, 6, 2024)
	if len(records) != 0 {
		t.Fatalf("expected no records after clearing, got %+v", records)
	}
}

func TestToggleSnapshotsUnitAndName(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, nil)
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, ptr(20)); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// Rename and change unit after the record was written.
	if err := s.RenameHabit(ctx, principal, id, "Press-ups"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := s.SetUnit(ctx, principal, id, core.HabitUnit{Kind: core.UnitCustom, Label: "sets"}); err != nil {
		t.Fatalf("set unit: %v", err)
	}

	records, _ := s.MonthlyRecords(ctx, principal, 6, 2024)
	if records[0].HabitName != "Push-ups" || records[0].Unit.Kind != core.UnitReps {
		t.Fatalf("record should keep its write-time snapshot, got %+v", records[0])
	}

	// A new write picks up the current definition.
	if err := s.ToggleCompletion(ctx, principal, id, 4, 6, 2024, true, ptr(3)); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	records, _ = s.MonthlyRecords(ctx, principal, 6, 2024)
	for _, rec := range records {
		if rec.Day == 4 && (rec.HabitName != "Press-ups" || rec.Unit.Label != "sets") {
			t.Fatalf("new record should snapshot the current definition, got %+v", rec)
		}
	}
}

func TestToggleRejectsNegativeAmount(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, nil)
	err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, ptr(-1))
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestToggleAcceptsCalendarInvalidDays(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Run", 3, core.HabitUnit{Kind: core.UnitNone}, nil)
	// Day 31 in a 30-day month is stored as-is.
	if err := s.ToggleCompletion(ctx, principal, id, 31, 6, 2024, true, nil); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	records, _ := s.MonthlyRecords(ctx, principal, 6, 2024)
	if len(records) != 1 || records[0].Day != 31 {
		t.Fatalf("expected day-31 record, got %+v", records)
	}
}

func TestLifetimeTotalSpansMonths(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, nil)
	writes := []struct{ day, month, year, amount int64 }{
		{3, 6, 2024, 20},
		{28, 12, 2024, 30},
		{1, 1, 2025, 25},
	}
	for _, w := range writes {
		if err := s.ToggleCompletion(ctx, principal, id, w.day, w.month, w.year, true, ptr(w.amount)); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	total, err := s.LifetimeTotal(ctx, principal, id)
	if err != nil || total != 75 {
		t.Fatalf("expected 75 across months, got %d (err=%v)", total, err)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, nil)
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, ptr(20)); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.SetMonthlyTarget(ctx, principal, id, 100, 6, 2024); err != nil {
		t.Fatalf("set target: %v", err)
	}

	if err := s.DeleteHabit(ctx, principal, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	habits, _ := s.ListHabits(ctx, principal)
	if len(habits) != 0 {
		t.Fatalf("habit should be gone, got %+v", habits)
	}
	records, _ := s.MonthlyRecords(ctx, principal, 6, 2024)
	if len(records) != 0 {
		t.Fatalf("records should cascade, got %+v", records)
	}

	// Deleting again is a satisfied no-op.
	if err := s.DeleteHabit(ctx, principal, id); err != nil {
		t.Fatalf("repeat delete should be silent, got %v", err)
	}
}

func TestMonthlyTargetOverrideAndPlanFallback(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	plank := mustCreateHabit(t, s, "Plank", 5, core.HabitUnit{Kind: core.UnitTime}, nil)
	run := mustCreateHabit(t, s, "Run", 3, core.HabitUnit{Kind: core.UnitNone}, nil)

	// No override: the Steady Climb plan answers for plank.
	target, err := s.EffectiveMonthlyTarget(ctx, principal, plank, 3, 2024)
	if err != nil || target == nil || *target != 90 {
		t.Fatalf("expected plan fallback 90, got %v (err=%v)", target, err)
	}
	// But the stored override is still reported absent.
	if override, _ := s.MonthlyTarget(ctx, principal, plank, 3, 2024); override != nil {
		t.Fatalf("plan fallback must not be persisted, got %+v", override)
	}

	// A manual override wins over the plan.
	if err := s.SetMonthlyTarget(ctx, principal, plank, 120, 3, 2024); err != nil {
		t.Fatalf("set target: %v", err)
	}
	target, _ = s.EffectiveMonthlyTarget(ctx, principal, plank, 3, 2024)
	if target == nil || *target != 120 {
		t.Fatalf("expected override 120, got %v", target)
	}

	// Habits outside the plan have no target at all.
	target, err = s.EffectiveMonthlyTarget(ctx, principal, run, 3, 2024)
	if err != nil || target != nil {
		t.Fatalf("expected no target for run, got %v (err=%v)", target, err)
	}
}

func TestSetMonthlyTargetValidation(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Plank", 5, core.HabitUnit{Kind: core.UnitTime}, nil)
	if err := s.SetMonthlyTarget(ctx, principal, id, -1, 6, 2024); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := s.SetMonthlyTarget(ctx, principal, "missing", 10, 6, 2024); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleEmitsRecordEvents(t *testing.T) {
	s, pub := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, nil)
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, ptr(20)); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, false, nil); err != nil {
		t.Fatalf("toggle off: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(pub.events))
	}
	if pub.events[0].Action != amqp.ActionSync || pub.events[1].Action != amqp.ActionClear {
		t.Fatalf("unexpected actions: %+v", pub.events)
	}
}

func TestPrincipalIsolation(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, nil)

	// Another caller cannot see or touch the habit.
	if habits, _ := s.ListHabits(ctx, "mallory"); len(habits) != 0 {
		t.Fatalf("foreign principal should see nothing, got %+v", habits)
	}
	if err := s.RenameHabit(ctx, "mallory", id, "Mine"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("foreign rename should be not-found, got %v", err)
	}
}

func TestReportStatsFiltersByHabit(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	pushUps := mustCreateHabit(t, s, "Push-ups", 7, core.HabitUnit{Kind: core.UnitReps}, nil)
	plank := mustCreateHabit(t, s, "Plank", 7, core.HabitUnit{Kind: core.UnitTime}, nil)

	if err := s.ToggleCompletion(ctx, principal, pushUps, 1, 6, 2024, true, ptr(20)); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ToggleCompletion(ctx, principal, plank, 1, 6, 2024, true, ptr(60)); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	r := core.DateRange{Start: core.Day{Day: 1, Month: 6, Year: 2024}, End: core.Day{Day: 7, Month: 6, Year: 2024}}

	all, err := s.ReportStats(ctx, principal, nil, r)
	if err != nil || len(all.HabitStats) != 2 {
		t.Fatalf("expected stats for both habits, got %+v (err=%v)", all.HabitStats, err)
	}

	only, err := s.ReportStats(ctx, principal, []string{pushUps}, r)
	if err != nil || len(only.HabitStats) != 1 || only.HabitStats[0].HabitID != pushUps {
		t.Fatalf("expected stats for push-ups only, got %+v (err=%v)", only.HabitStats, err)
	}
	if only.TotalCompleted != 1 {
		t.Fatalf("filtered stats should ignore the other habit's records, got %d", only.TotalCompleted)
	}
}

func TestExportRange(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, ptr(20))
	if err := s.ToggleCompletion(ctx, principal, id, 3, 6, 2024, true, nil); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ToggleCompletion(ctx, principal, id, 3, 7, 2024, true, nil); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.SetMonthlyTarget(ctx, principal, id, 600, 6, 2024); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := s.SetMonthlyTarget(ctx, principal, id, 650, 8, 2024); err != nil {
		t.Fatalf("set target: %v", err)
	}
	if err := s.SaveDiaryEntry(ctx, principal, "2024-06-03", "Energy: 4", "Win: done"); err != nil {
		t.Fatalf("save diary: %v", err)
	}
	if err := s.SaveProfile(ctx, principal, "Alice"); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	r := core.DateRange{Start: core.Day{Day: 1, Month: 6, Year: 2024}, End: core.Day{Day: 30, Month: 6, Year: 2024}}
	data, err := s.ExportRange(ctx, principal, nil, r)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if data.Profile == nil || data.Profile.Name != "Alice" {
		t.Fatalf("expected profile in snapshot, got %+v", data.Profile)
	}
	if len(data.Habits) != 1 {
		t.Fatalf("expected one habit, got %+v", data.Habits)
	}
	if len(data.HabitRecords) != 1 || data.HabitRecords[0].Month != 6 {
		t.Fatalf("july record should be outside the range, got %+v", data.HabitRecords)
	}
	if len(data.MonthlyTargets) != 1 || data.MonthlyTargets[0].Month != 6 {
		t.Fatalf("only june's override is touched by the range, got %+v", data.MonthlyTargets)
	}
	if len(data.DiaryEntries) != 1 {
		t.Fatalf("expected diary entry in snapshot, got %+v", data.DiaryEntries)
	}
}

func TestInvestmentGoals(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	goalID, err := s.CreateInvestmentGoal(ctx, principal, "BTC", 50, 100)
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	progress, err := s.GoalProgress(ctx, principal, goalID)
	if err != nil || progress != 50 {
		t.Fatalf("expected 50%%, got %d (err=%v)", progress, err)
	}

	if err := s.UpdateInvestmentGoal(ctx, principal, goalID, 150, 100); err != nil {
		t.Fatalf("update goal: %v", err)
	}
	progress, _ = s.GoalProgress(ctx, principal, goalID)
	if progress != 100 {
		t.Fatalf("over-held goal should clamp to 100, got %d", progress)
	}

	total, err := s.TotalGoalsProgress(ctx, principal)
	if err != nil || total != 100 {
		t.Fatalf("expected total 100, got %d (err=%v)", total, err)
	}

	if err := s.DeleteInvestmentGoal(ctx, principal, goalID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if _, err := s.GoalProgress(ctx, principal, goalID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Total over no goals reports zero, not an error.
	if total, err := s.TotalGoalsProgress(ctx, principal); err != nil || total != 0 {
		t.Fatalf("expected 0, got %d (err=%v)", total, err)
	}
}

func TestDiaryEntries(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	if err := s.SaveDiaryEntry(ctx, principal, "not-a-date", "t", "c"); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	if err := s.SaveDiaryEntry(ctx, principal, "2024-06-03", "Energy: 4", "Win: ran"); err != nil {
		t.Fatalf("save: %v", err)
	}
	entry, err := s.DiaryEntry(ctx, principal, "2024-06-03")
	if err != nil || entry == nil || entry.Title != "Energy: 4" {
		t.Fatalf("unexpected entry: %+v (err=%v)", entry, err)
	}

	// Absence is a nil entry, not an error.
	entry, err = s.DiaryEntry(ctx, principal, "2024-06-04")
	if err != nil || entry != nil {
		t.Fatalf("expected nil for missing entry, got %+v (err=%v)", entry, err)
	}
}

func TestUpdateHabitPatchIsAtomic(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, ptr(20))

	name := "Chin-ups"
	bad := int64(9)
	err := s.UpdateHabit(ctx, principal, id, HabitPatch{Name: &name, WeeklyTarget: &bad})
	if !errors.Is(err, core.ErrInvalidWeeklyTarget) {
		t.Fatalf("expected weekly target error, got %v", err)
	}

	habits, err := s.ListHabits(ctx, principal)
	if err != nil || len(habits) != 1 {
		t.Fatalf("list habits: %v", err)
	}
	if habits[0].Name != "Push-ups" || habits[0].WeeklyTarget != 5 {
		t.Fatalf("rejected patch must not change any field, got %+v", habits[0])
	}

	target := int64(3)
	none := core.HabitUnit{Kind: core.UnitNone}
	if err := s.UpdateHabit(ctx, principal, id, HabitPatch{Name: &name, WeeklyTarget: &target, Unit: &none}); err != nil {
		t.Fatalf("update habit: %v", err)
	}
	habits, err = s.ListHabits(ctx, principal)
	if err != nil || len(habits) != 1 {
		t.Fatalf("list habits: %v", err)
	}
	if habits[0].Name != "Chin-ups" || habits[0].WeeklyTarget != 3 {
		t.Fatalf("unexpected habit after patch: %+v", habits[0])
	}
	if habits[0].DefaultAmount != nil {
		t.Fatalf("switching to the none unit must clear the default amount")
	}
}

func TestUpdateHabitClearsDefaultAmount(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	id := mustCreateHabit(t, s, "Push-ups", 5, core.HabitUnit{Kind: core.UnitReps}, ptr(20))

	patch := HabitPatch{DefaultAmount: OptionalAmount{Set: true, Value: nil}}
	if err := s.UpdateHabit(ctx, principal, id, patch); err != nil {
		t.Fatalf("clear default amount: %v", err)
	}
	habits, _ := s.ListHabits(ctx, principal)
	if habits[0].DefaultAmount != nil {
		t.Fatalf("expected cleared default amount, got %+v", habits[0].DefaultAmount)
	}

	if err := s.UpdateHabit(ctx, principal, id, HabitPatch{DefaultAmount: OptionalAmount{Set: true, Value: ptr(-1)}}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
