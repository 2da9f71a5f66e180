package tracker

import (
	"context"
	"fmt"

	"climb/internal/core"
)

// ExportRange assembles the report snapshot for an inclusive date
// range: profile, habit definitions, records in range, monthly target
// overrides for months the range touches, and the full diary and
// investment data. habitIDs restricts habits and records; empty means
// all. Read-only; callers normalize the bounds before calling.
func (s *Service) ExportRange(ctx context.Context, principal string, habitIDs []string, r core.DateRange) (core.ExportData, error) {
	var data core.ExportData

	profile, err := s.store.GetProfile(ctx, principal)
	if err != nil {
		return data, fmt.Errorf("get profile: %w", err)
	}
	data.Profile = profile

	habits, err := s.store.ListHabits(ctx, principal)
	if err != nil {
		return data, fmt.Errorf("list habits: %w", err)
	}
	data.Habits = filterHabits(habits, habitIDs)

	records, err := s.store.ListRecordsInRange(ctx, principal, r)
	if err != nil {
		return data, fmt.Errorf("list records: %w", err)
	}
	data.HabitRecords = filterRecords(records, data.Habits)

	targets, err := s.store.ListTargets(ctx, principal)
	if err != nil {
		return data, fmt.Errorf("list targets: %w", err)
	}
	data.MonthlyTargets = filterTargets(targets, data.Habits, r)

	data.DiaryEntries, err = s.store.ListDiaryEntries(ctx, principal)
	if err != nil {
		return data, fmt.Errorf("list diary entries: %w", err)
	}

	data.InvestmentGoals, err = s.store.ListGoals(ctx, principal)
	if err != nil {
		return data, fmt.Errorf("list investment goals: %w", err)
	}

	data.InvestmentDiaryEntries, err = s.store.ListInvestmentDiaryEntries(ctx, principal)
	if err != nil {
		return data, fmt.Errorf("list investment diary entries: %w", err)
	}

	return data, nil
}

// filterTargets keeps overrides for the given habits in months the
// range touches, comparing by month ordinal so partial edge months
// still count.
func filterTargets(targets []core.MonthlyTarget, habits []core.Habit, r core.DateRange) []core.MonthlyTarget {
	ids := make(map[string]bool, len(habits))
	for _, h := range habits {
		ids[h.ID] = true
	}
	startOrd := r.Start.Year*12 + r.Start.Month - 1
	endOrd := r.End.Year*12 + r.End.Month - 1

	filtered := targets[:0:0]
	for _, t := range targets {
		ord := t.Year*12 + t.Month - 1
		if ids[t.HabitID] && ord >= startOrd && ord <= endOrd {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
