// Statistics derived from habits and completion records. Everything in
// this file is recomputed on demand from the inputs; there is no cached
// derived state to invalidate.
package core

import (
	"fmt"
	"math"
)

type (
	// HabitStats is one habit's completion rate over a report range.
	HabitStats struct {
		HabitID      string
		Name         string
		Percentage   int64
		Completed    int64
		Expected     int64
		WeeklyTarget int64
	}

	// DailyStats is one day's completion rate, indexed from the start of
	// the range.
	DailyStats struct {
		Day        int64 // 1-based offset within the range
		Percentage int64
		Completed  int64
	}

	// VolumeStats sums amounts per day-of-month for one habit. Days is
	// always 31 slots so chart rendering never has to guess the month
	// length; absent days hold zero.
	VolumeStats struct {
		HabitID      string
		HabitName    string
		Unit         string
		DailyVolumes [31]int64
		TotalVolume  int64
	}

	// ReportStats bundles every derived figure for a report range.
	ReportStats struct {
		OverallPercentage int64
		HabitStats        []HabitStats
		DailyStats        []DailyStats
		VolumeStats       []VolumeStats
		TotalCompleted    int64
		TotalExpected     int64
		Range             DateRange
	}
)

// CalculateReportStats derives completion and volume statistics for the
// given habits and records over an inclusive date range. Callers pass
// records already filtered to the range and to the given habits.
func CalculateReportStats(habits []Habit, records []CompletionRecord, r DateRange) ReportStats {
	weeksInRange := float64(r.Days()) / 7

	var totalExpected, totalCompleted int64
	habitStats := make([]HabitStats, 0, len(habits))
	for _, habit := range habits {
		var completed int64
		for _, rec := range records {
			if rec.HabitID == habit.ID && rec.Completed() {
				completed++
			}
		}
		expected := int64(math.Ceil(float64(habit.WeeklyTarget) * weeksInRange))

		totalExpected += expected
		totalCompleted += completed

		habitStats = append(habitStats, HabitStats{
			HabitID:      habit.ID,
			Name:         habit.Name,
			Percentage:   clampedPercentage(float64(completed), float64(expected)),
			Completed:    completed,
			Expected:     expected,
			WeeklyTarget: habit.WeeklyTarget,
		})
	}

	// Expected completions per day are fractional on purpose: a habit
	// with weeklyTarget 5 contributes 5/7 to every day.
	var expectedPerDay float64
	for _, habit := range habits {
		expectedPerDay += float64(habit.WeeklyTarget) / 7
	}

	completedByDay := make(map[Day]int64)
	for _, rec := range records {
		if rec.Completed() {
			completedByDay[rec.RecordDay()]++
		}
	}

	var dailyStats []DailyStats
	r.EachDay(func(d Day) {
		completed := completedByDay[d]
		dailyStats = append(dailyStats, DailyStats{
			Day:        int64(len(dailyStats)) + 1,
			Percentage: clampedPercentage(float64(completed), expectedPerDay),
			Completed:  completed,
		})
	})

	volumeStats := make([]VolumeStats, 0, len(habits))
	for _, habit := range habits {
		vs := VolumeStats{
			HabitID:   habit.ID,
			HabitName: habit.Name,
			Unit:      habit.Unit.LongLabel(),
		}
		for _, rec := range records {
			if rec.HabitID != habit.ID || !rec.Completed() {
				continue
			}
			var amount int64
			if rec.Amount != nil {
				amount = *rec.Amount
			}
			if rec.Day >= 1 && rec.Day <= 31 {
				vs.DailyVolumes[rec.Day-1] += amount
			}
			vs.TotalVolume += amount
		}
		volumeStats = append(volumeStats, vs)
	}

	return ReportStats{
		OverallPercentage: clampedPercentage(float64(totalCompleted), float64(totalExpected)),
		HabitStats:        habitStats,
		DailyStats:        dailyStats,
		VolumeStats:       volumeStats,
		TotalCompleted:    totalCompleted,
		TotalExpected:     totalExpected,
		Range:             r,
	}
}

// CalculateDailyConsistency maps each date with at least one completion
// to a consistency percentage, keyed "YYYY-MM-DD". Dates without
// completions are absent rather than zero.
func CalculateDailyConsistency(habits []Habit, records []CompletionRecord) map[string]int64 {
	consistency := make(map[string]int64)
	if len(habits) == 0 {
		return consistency
	}

	var expectedPerDay float64
	for _, habit := range habits {
		expectedPerDay += float64(habit.WeeklyTarget) / 7
	}

	completionsByDate := make(map[string]int64)
	for _, rec := range records {
		if rec.Completed() {
			key := fmt.Sprintf("%04d-%02d-%02d", rec.Year, rec.Month, rec.Day)
			completionsByDate[key]++
		}
	}

	for date, completions := range completionsByDate {
		consistency[date] = clampedPercentage(float64(completions), expectedPerDay)
	}
	return consistency
}

// clampedPercentage rounds completed/expected to a whole percentage,
// capped at 100. Habits can be over-completed but reported progress
// never exceeds 100.
func clampedPercentage(completed, expected float64) int64 {
	if expected <= 0 {
		return 0
	}
	pct := completed / expected * 100
	if pct > 100 {
		pct = 100
	}
	return int64(math.Round(pct))
}
