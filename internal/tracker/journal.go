package tracker

import (
	"context"
	"fmt"
	"strings"

	"climb/internal/core"
)

// SaveDiaryEntry upserts the diary entry for a YYYY-MM-DD date. Title
// and content are stored as-is; the Energy/Win/Friction encoding is the
// client's convention (core has the codec).
func (s *Service) SaveDiaryEntry(ctx context.Context, principal, date, title, content string) error {
	if err := core.ValidateDiaryDate(date); err != nil {
		return err
	}
	entry := core.DiaryEntry{Title: title, Content: content}
	if err := s.store.SaveDiaryEntry(ctx, principal, date, entry); err != nil {
		return fmt.Errorf("save diary entry: %w", err)
	}
	return nil
}

// DiaryEntry returns the entry for a date, nil when none exists.
func (s *Service) DiaryEntry(ctx context.Context, principal, date string) (*core.DiaryEntry, error) {
	if err := core.ValidateDiaryDate(date); err != nil {
		return nil, err
	}
	return s.store.GetDiaryEntry(ctx, principal, date)
}

func (s *Service) AllDiaryEntries(ctx context.Context, principal string) ([]core.DatedDiaryEntry, error) {
	return s.store.ListDiaryEntries(ctx, principal)
}

// CreateInvestmentGoal registers a new accumulation goal.
func (s *Service) CreateInvestmentGoal(ctx context.Context, principal, asset string, currentlyHeld, target int64) (int64, error) {
	g := core.InvestmentGoal{
		Asset:         strings.TrimSpace(asset),
		CurrentlyHeld: currentlyHeld,
		Target:        target,
	}
	if err := g.Validate(); err != nil {
		return 0, err
	}
	id, err := s.store.CreateGoal(ctx, principal, g)
	if err != nil {
		return 0, fmt.Errorf("create investment goal: %w", err)
	}
	return id, nil
}

// UpdateInvestmentGoal replaces the held and target quantities.
func (s *Service) UpdateInvestmentGoal(ctx context.Context, principal string, goalID, currentlyHeld, target int64) error {
	g, err := s.store.GetGoal(ctx, principal, goalID)
	if err != nil {
		return err
	}
	g.CurrentlyHeld = currentlyHeld
	g.Target = target
	if err := g.Validate(); err != nil {
		return err
	}
	return s.store.UpdateGoal(ctx, principal, g)
}

// DeleteInvestmentGoal removes a goal; absent goals are a no-op.
func (s *Service) DeleteInvestmentGoal(ctx context.Context, principal string, goalID int64) error {
	return s.store.DeleteGoal(ctx, principal, goalID)
}

func (s *Service) ListInvestmentGoals(ctx context.Context, principal string) ([]core.InvestmentGoal, error) {
	return s.store.ListGoals(ctx, principal)
}

// GoalProgress returns the clamped completion percentage for one goal.
func (s *Service) GoalProgress(ctx context.Context, principal string, goalID int64) (int64, error) {
	g, err := s.store.GetGoal(ctx, principal, goalID)
	if err != nil {
		return 0, err
	}
	return g.Progress(), nil
}

// TotalGoalsProgress averages the progress of all goals, 0 with none.
func (s *Service) TotalGoalsProgress(ctx context.Context, principal string) (int64, error) {
	goals, err := s.store.ListGoals(ctx, principal)
	if err != nil {
		return 0, fmt.Errorf("list investment goals: %w", err)
	}
	return core.TotalProgress(goals), nil
}

// AddInvestmentDiaryEntry appends a dated buy/sell note. Amount is in
// cents and must be non-negative.
func (s *Service) AddInvestmentDiaryEntry(ctx context.Context, principal string, date int64, asset string, amount int64, notes string) (int64, error) {
	if strings.TrimSpace(asset) == "" {
		return 0, core.ErrInvalidName
	}
	if amount < 0 {
		return 0, core.ErrInvalidAmount
	}
	e := core.InvestmentDiaryEntry{
		Asset:  strings.TrimSpace(asset),
		Date:   date,
		Amount: amount,
		Notes:  notes,
	}
	id, err := s.store.AddInvestmentDiaryEntry(ctx, principal, e)
	if err != nil {
		return 0, fmt.Errorf("add investment diary entry: %w", err)
	}
	return id, nil
}

func (s *Service) ListInvestmentDiaryEntries(ctx context.Context, principal string) ([]core.InvestmentDiaryEntry, error) {
	return s.store.ListInvestmentDiaryEntries(ctx, principal)
}

// SaveProfile stores the caller's display profile.
func (s *Service) SaveProfile(ctx context.Context, principal, name string) error {
	if strings.TrimSpace(name) == "" {
		return core.ErrInvalidName
	}
	return s.store.SaveProfile(ctx, principal, core.UserProfile{Name: strings.TrimSpace(name)})
}

// Profile returns the caller's profile, nil when never saved.
func (s *Service) Profile(ctx context.Context, principal string) (*core.UserProfile, error) {
	return s.store.GetProfile(ctx, principal)
}
