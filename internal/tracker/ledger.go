package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"climb/internal/amqp"
	"climb/internal/core"
)

// ToggleCompletion writes the completion state for one habit on one
// calendar day. completed=false clears the record (a no-op when absent);
// completed=true replaces the full record: the amount is the explicit
// value if given, else the habit's default amount, else none, and the
// habit's current unit and name are snapshotted into the record. Last
// write wins at the record key.
//
// Day/month/year are not checked against the calendar; the grid is the
// display layer's concern and historical data already contains such keys.
func (s *Service) ToggleCompletion(ctx context.Context, principal, habitID string, day, month, year int64, completed bool, amount *int64) error {
	habit, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return err
	}

	d := core.Day{Day: day, Month: month, Year: year}

	if !completed {
		if err := s.store.DeleteRecord(ctx, principal, habitID, d); err != nil {
			return fmt.Errorf("clear completion: %w", err)
		}
		s.publishRecordEvent(ctx, amqp.ActionClear, principal, habitID, d)
		return nil
	}

	var recAmount *int64
	switch {
	case habit.Unit.IsNone():
		// No amount is stored for done/not-done habits.
	case amount != nil:
		if *amount < 0 {
			return core.ErrInvalidAmount
		}
		v := *amount
		recAmount = &v
	case habit.DefaultAmount != nil:
		v := *habit.DefaultAmount
		recAmount = &v
	}

	now := time.Now().UnixNano()
	rec := core.CompletionRecord{
		HabitID:     habitID,
		Day:         day,
		Month:       month,
		Year:        year,
		CompletedAt: &now,
		Amount:      recAmount,
		Unit:        habit.Unit,
		HabitName:   habit.Name,
	}
	if err := s.store.UpsertRecord(ctx, principal, rec); err != nil {
		return fmt.Errorf("save completion: %w", err)
	}

	s.publishRecordEvent(ctx, amqp.ActionSync, principal, habitID, d)
	return nil
}

// MonthlyRecords returns all of the caller's records in a month across
// all habits.
func (s *Service) MonthlyRecords(ctx context.Context, principal string, month, year int64) ([]core.CompletionRecord, error) {
	return s.store.ListRecordsForMonth(ctx, principal, month, year)
}

// LifetimeTotal sums the recorded amounts for a habit over all time,
// counting records without an amount as zero.
func (s *Service) LifetimeTotal(ctx context.Context, principal, habitID string) (int64, error) {
	if _, err := s.store.GetHabit(ctx, principal, habitID); err != nil {
		return 0, err
	}
	records, err := s.store.ListRecordsForHabit(ctx, principal, habitID)
	if err != nil {
		return 0, fmt.Errorf("list habit records: %w", err)
	}
	var total int64
	for _, rec := range records {
		if rec.Amount != nil {
			total += *rec.Amount
		}
	}
	return total, nil
}

// publishRecordEvent notifies the sync worker. The local write already
// succeeded, so publish failures only get logged.
func (s *Service) publishRecordEvent(ctx context.Context, action, principal, habitID string, d core.Day) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewRecordEventMessage(action, principal, habitID, d.Day, d.Month, d.Year)
	if err := s.publisher.PublishRecordEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"action", action,
			"habit_id", habitID,
			"error", err)
	}
}
