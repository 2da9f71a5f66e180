package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"climb/internal/core"
)

// CreateHabit registers a new habit and returns its id.
func (s *Service) CreateHabit(ctx context.Context, principal, name string, weeklyTarget int64, unit core.HabitUnit, defaultAmount *int64) (string, error) {
	if unit.IsNone() {
		// A done/not-done habit has no amount to pre-fill.
		defaultAmount = nil
	}
	h := core.Habit{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(name),
		CreatedAt:     time.Now().UnixNano(),
		Unit:          unit,
		WeeklyTarget:  weeklyTarget,
		DefaultAmount: defaultAmount,
	}
	if err := h.Validate(); err != nil {
		return "", err
	}
	if err := s.store.CreateHabit(ctx, principal, h); err != nil {
		return "", fmt.Errorf("create habit: %w", err)
	}

	slog.InfoContext(ctx, "Habit created",
		"habit_id", h.ID,
		"name", h.Name,
		"unit", string(h.Unit.Kind),
		"weekly_target", h.WeeklyTarget)

	return h.ID, nil
}

// RenameHabit changes the display name. Existing completion records
// keep their snapshotted name.
func (s *Service) RenameHabit(ctx context.Context, principal, habitID, newName string) error {
	h, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return err
	}
	h.Name = strings.TrimSpace(newName)
	if err := h.Validate(); err != nil {
		return err
	}
	return s.store.UpdateHabit(ctx, principal, h)
}

func (s *Service) SetWeeklyTarget(ctx context.Context, principal, habitID string, weeklyTarget int64) error {
	h, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return err
	}
	h.WeeklyTarget = weeklyTarget
	if err := h.Validate(); err != nil {
		return err
	}
	return s.store.UpdateHabit(ctx, principal, h)
}

// SetUnit changes the measurement unit. Switching to the none unit
// clears the default amount; historical records keep their snapshots.
func (s *Service) SetUnit(ctx context.Context, principal, habitID string, unit core.HabitUnit) error {
	h, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return err
	}
	h.Unit = unit
	if unit.IsNone() {
		h.DefaultAmount = nil
	}
	if err := h.Validate(); err != nil {
		return err
	}
	return s.store.UpdateHabit(ctx, principal, h)
}

// SetDefaultAmount sets the pre-fill amount used when a completion is
// toggled on without an explicit amount. Ignored for none-unit habits.
func (s *Service) SetDefaultAmount(ctx context.Context, principal, habitID string, amount *int64) error {
	h, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return err
	}
	if amount != nil && *amount < 0 {
		return core.ErrInvalidAmount
	}
	if h.Unit.IsNone() {
		amount = nil
	}
	h.DefaultAmount = amount
	return s.store.UpdateHabit(ctx, principal, h)
}

// HabitPatch lists the habit fields an update may change. Nil fields
// keep their current value.
type HabitPatch struct {
	Name          *string
	WeeklyTarget  *int64
	Unit          *core.HabitUnit
	DefaultAmount OptionalAmount
}

// OptionalAmount distinguishes leaving the default amount unchanged
// (Set false) from assigning Value, where a nil Value clears it.
type OptionalAmount struct {
	Set   bool
	Value *int64
}

// UpdateHabit applies the patch as one unit: the merged habit is
// validated before anything is written, so a bad field leaves every
// other field untouched.
func (s *Service) UpdateHabit(ctx context.Context, principal, habitID string, patch HabitPatch) error {
	h, err := s.store.GetHabit(ctx, principal, habitID)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		h.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.WeeklyTarget != nil {
		h.WeeklyTarget = *patch.WeeklyTarget
	}
	if patch.Unit != nil {
		h.Unit = *patch.Unit
	}
	if patch.DefaultAmount.Set {
		if v := patch.DefaultAmount.Value; v != nil && *v < 0 {
			return core.ErrInvalidAmount
		}
		h.DefaultAmount = patch.DefaultAmount.Value
	}
	if h.Unit.IsNone() {
		h.DefaultAmount = nil
	}
	if err := h.Validate(); err != nil {
		return err
	}
	return s.store.UpdateHabit(ctx, principal, h)
}

// DeleteHabit removes the habit and all of its completion records and
// monthly targets. Deleting an absent habit is a no-op: the outcome the
// caller asked for already holds.
func (s *Service) DeleteHabit(ctx context.Context, principal, habitID string) error {
	if err := s.store.DeleteHabit(ctx, principal, habitID); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	slog.InfoContext(ctx, "Habit deleted", "habit_id", habitID)
	return nil
}

func (s *Service) ListHabits(ctx context.Context, principal string) ([]core.Habit, error) {
	return s.store.ListHabits(ctx, principal)
}
