// Package store defines the persistence ports for the tracker. Every
// method is scoped to the calling principal; implementations must never
// return another principal's data. Expected absence (no record for a
// day, no target override, no profile yet) is a nil result, not an
// error; ErrNotFound is reserved for dangling references.
package store

import (
	"context"

	"climb/internal/core"
)

type (
	HabitStore interface {
		CreateHabit(ctx context.Context, principal string, h core.Habit) error
		// GetHabit returns core.ErrNotFound when the id does not resolve
		// to a habit owned by the principal.
		GetHabit(ctx context.Context, principal, habitID string) (core.Habit, error)
		UpdateHabit(ctx context.Context, principal string, h core.Habit) error
		// DeleteHabit cascades to the habit's completion records and
		// monthly targets. Deleting an absent habit is a no-op.
		DeleteHabit(ctx context.Context, principal, habitID string) error
		ListHabits(ctx context.Context, principal string) ([]core.Habit, error)
	}

	RecordStore interface {
		// UpsertRecord replaces the full record at its
		// (habit, day, month, year) key. Last write wins.
		UpsertRecord(ctx context.Context, principal string, rec core.CompletionRecord) error
		// DeleteRecord clears the record at the key; absent keys are a no-op.
		DeleteRecord(ctx context.Context, principal, habitID string, d core.Day) error
		GetRecord(ctx context.Context, principal, habitID string, d core.Day) (*core.CompletionRecord, error)
		ListRecordsForMonth(ctx context.Context, principal string, month, year int64) ([]core.CompletionRecord, error)
		ListRecordsForHabit(ctx context.Context, principal, habitID string) ([]core.CompletionRecord, error)
		ListRecordsInRange(ctx context.Context, principal string, r core.DateRange) ([]core.CompletionRecord, error)
	}

	TargetStore interface {
		UpsertTarget(ctx context.Context, principal string, t core.MonthlyTarget) error
		// GetTarget returns nil when no manual override is stored; the
		// Steady Climb fallback is the service's concern.
		GetTarget(ctx context.Context, principal, habitID string, month, year int64) (*core.MonthlyTarget, error)
		ListTargets(ctx context.Context, principal string) ([]core.MonthlyTarget, error)
	}

	DiaryStore interface {
		SaveDiaryEntry(ctx context.Context, principal, date string, entry core.DiaryEntry) error
		GetDiaryEntry(ctx context.Context, principal, date string) (*core.DiaryEntry, error)
		ListDiaryEntries(ctx context.Context, principal string) ([]core.DatedDiaryEntry, error)
	}

	InvestmentStore interface {
		CreateGoal(ctx context.Context, principal string, g core.InvestmentGoal) (int64, error)
		GetGoal(ctx context.Context, principal string, goalID int64) (core.InvestmentGoal, error)
		UpdateGoal(ctx context.Context, principal string, g core.InvestmentGoal) error
		DeleteGoal(ctx context.Context, principal string, goalID int64) error
		ListGoals(ctx context.Context, principal string) ([]core.InvestmentGoal, error)

		AddInvestmentDiaryEntry(ctx context.Context, principal string, e core.InvestmentDiaryEntry) (int64, error)
		ListInvestmentDiaryEntries(ctx context.Context, principal string) ([]core.InvestmentDiaryEntry, error)
	}

	ProfileStore interface {
		SaveProfile(ctx context.Context, principal string, p core.UserProfile) error
		GetProfile(ctx context.Context, principal string) (*core.UserProfile, error)
	}

	// Store aggregates all persistence ports behind one backend.
	Store interface {
		HabitStore
		RecordStore
		TargetStore
		DiaryStore
		InvestmentStore
		ProfileStore
	}
)
