package tracker

import (
	"context"
	"fmt"

	"climb/internal/core"
)

// ReportStats derives completion and volume statistics over an
// inclusive date range. habitIDs restricts the report to those habits;
// empty means all. Everything is recomputed from live store reads.
func (s *Service) ReportStats(ctx context.Context, principal string, habitIDs []string, r core.DateRange) (core.ReportStats, error) {
	habits, err := s.store.ListHabits(ctx, principal)
	if err != nil {
		return core.ReportStats{}, fmt.Errorf("list habits: %w", err)
	}
	habits = filterHabits(habits, habitIDs)

	records, err := s.store.ListRecordsInRange(ctx, principal, r)
	if err != nil {
		return core.ReportStats{}, fmt.Errorf("list records: %w", err)
	}
	records = filterRecords(records, habits)

	return core.CalculateReportStats(habits, records, r), nil
}

// DailyConsistency maps each completed date in a month to its
// consistency percentage for the diary correlation chart.
func (s *Service) DailyConsistency(ctx context.Context, principal string, month, year int64) (map[string]int64, error) {
	habits, err := s.store.ListHabits(ctx, principal)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	records, err := s.store.ListRecordsForMonth(ctx, principal, month, year)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return core.CalculateDailyConsistency(habits, records), nil
}

func filterHabits(habits []core.Habit, habitIDs []string) []core.Habit {
	if len(habitIDs) == 0 {
		return habits
	}
	wanted := make(map[string]bool, len(habitIDs))
	for _, id := range habitIDs {
		wanted[id] = true
	}
	filtered := habits[:0:0]
	for _, h := range habits {
		if wanted[h.ID] {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

func filterRecords(records []core.CompletionRecord, habits []core.Habit) []core.CompletionRecord {
	ids := make(map[string]bool, len(habits))
	for _, h := range habits {
		ids[h.ID] = true
	}
	filtered := records[:0:0]
	for _, rec := range records {
		if ids[rec.HabitID] {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
