package tracker

import (
	"context"
	"fmt"

	"climb/internal/core"
)

// MonthlyTarget returns the persisted manual override for a habit and
// month, or nil when none is stored. The Steady Climb fallback is not
// applied here; use EffectiveMonthlyTarget for the displayed value.
func (s *Service) MonthlyTarget(ctx context.Context, principal, habitID string, month, year int64) (*core.MonthlyTarget, error) {
	if _, err := s.store.GetHabit(ctx, principal, habitID); err != nil {
		return nil, err
	}
	return s.store.GetTarget(ctx, principal, habitID, month, year)
}

// SetMonthlyTarget upserts a manual override for the habit and month.
func (s *Service) SetMonthlyTarget(ctx context.Context, principal, habitID string, amount, month, year int64) error {
	if _, err := s.store.GetHabit(ctx, principal, habitID); err != nil {
		return err
	}
	if amount < 0 {
		return core.ErrInvalidAmount
	}
	t := core.MonthlyTarget{HabitID: habitID, Month: month, Year: year, Amount: amount}
	if err := s.store.UpsertTarget(ctx, principal, t); err != nil {
		return fmt.Errorf("set monthly target: %w", err)
	}
	return nil
}

// EffectiveMonthlyTarget resolves the target shown for a habit and
// month: the persisted override when present, else the Steady Climb
// plan value for the habit's name, else nil. Plan
// values are computed on the fly and never written back.
func (s *Service) EffectiveMonthlyTarget(ctx context.Context, principal, habitID string, month, year int64) (*int64, error) {
	habit, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return nil, err
	}
	override, err := s.store.GetTarget(ctx, principal, habitID, month, year)
	if err != nil {
		return nil, fmt.Errorf("get monthly target: %w", err)
	}
	if override != nil {
		v := override.Amount
		return &v, nil
	}
	if target, ok := core.SteadyClimbTargetForHabit(habit.Name, month); ok {
		return &target, nil
	}
	return nil, nil
}
