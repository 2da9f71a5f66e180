// Package memory is an in-memory implementation of the store ports.
// It backs the "memory" data backend for local development and serves
// as the test double for the service layer.
package memory

import (
	"context"
	"sync"

	"climb/internal/core"
)

type recordKey struct {
	habitID string
	day     int64
	month   int64
	year    int64
}

type targetKey struct {
	habitID string
	month   int64
	year    int64
}

type Store struct {
	mu sync.Mutex

	habits      map[string]map[string]core.Habit
	records     map[string]map[recordKey]core.CompletionRecord
	targets     map[string]map[targetKey]core.MonthlyTarget
	diary       map[string]map[string]core.DiaryEntry
	goals       map[string]map[int64]core.InvestmentGoal
	investDiary map[string][]core.InvestmentDiaryEntry
	profiles    map[string]core.UserProfile

	nextGoalID        int64
	nextInvestDiaryID int64
}

func New() *Store {
	return &Store{
		habits:      make(map[string]map[string]core.Habit),
		records:     make(map[string]map[recordKey]core.CompletionRecord),
		targets:     make(map[string]map[targetKey]core.MonthlyTarget),
		diary:       make(map[string]map[string]core.DiaryEntry),
		goals:       make(map[string]map[int64]core.InvestmentGoal),
		investDiary: make(map[string][]core.InvestmentDiaryEntry),
		profiles:    make(map[string]core.UserProfile),
	}
}

func (s *Store) CreateHabit(_ context.Context, principal string, h core.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.habits[principal] == nil {
		s.habits[principal] = make(map[string]core.Habit)
	}
	s.habits[principal][h.ID] = h
	return nil
}

func (s *Store) GetHabit(_ context.Context, principal, habitID string) (core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[principal][habitID]
	if !ok {
		return core.Habit{}, core.ErrNotFound
	}
	return h, nil
}

func (s *Store) UpdateHabit(_ context.Context, principal string, h core.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.habits[principal][h.ID]; !ok {
		return core.ErrNotFound
	}
	s.habits[principal][h.ID] = h
	return nil
}

func (s *Store) DeleteHabit(_ context.Context, principal, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.habits[principal], habitID)
	for key := range s.records[principal] {
		if key.habitID == habitID {
			delete(s.records[principal], key)
		}
	}
	for key := range s.targets[principal] {
		if key.habitID == habitID {
			delete(s.targets[principal], key)
		}
	}
	return nil
}

func (s *Store) ListHabits(_ context.Context, principal string) ([]core.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	habits := make([]core.Habit, 0, len(s.habits[principal]))
	for _, h := range s.habits[principal] {
		habits = append(habits, h)
	}
	return habits, nil
}

func (s *Store) UpsertRecord(_ context.Context, principal string, rec core.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[principal] == nil {
		s.records[principal] = make(map[recordKey]core.CompletionRecord)
	}
	s.records[principal][recordKey{rec.HabitID, rec.Day, rec.Month, rec.Year}] = rec
	return nil
}

func (s *Store) DeleteRecord(_ context.Context, principal, habitID string, d core.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[principal], recordKey{habitID, d.Day, d.Month, d.Year})
	return nil
}

func (s *Store) GetRecord(_ context.Context, principal, habitID string, d core.Day) (*core.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[principal][recordKey{habitID, d.Day, d.Month, d.Year}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) ListRecordsForMonth(_ context.Context, principal string, month, year int64) ([]core.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []core.CompletionRecord
	for key, rec := range s.records[principal] {
		if key.month == month && key.year == year {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (s *Store) ListRecordsForHabit(_ context.Context, principal, habitID string) ([]core.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []core.CompletionRecord
	for key, rec := range s.records[principal] {
		if key.habitID == habitID {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (s *Store) ListRecordsInRange(_ context.Context, principal string, r core.DateRange) ([]core.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recs []core.CompletionRecord
	for _, rec := range s.records[principal] {
		if r.Contains(rec.RecordDay()) {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (s *Store) UpsertTarget(_ context.Context, principal string, t core.MonthlyTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.targets[principal] == nil {
		s.targets[principal] = make(map[targetKey]core.MonthlyTarget)
	}
	s.targets[principal][targetKey{t.HabitID, t.Month, t.Year}] = t
	return nil
}

func (s *Store) GetTarget(_ context.Context, principal, habitID string, month, year int64) (*core.MonthlyTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.targets[principal][targetKey{habitID, month, year}]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *Store) ListTargets(_ context.Context, principal string) ([]core.MonthlyTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	targets := make([]core.MonthlyTarget, 0, len(s.targets[principal]))
	for _, t := range s.targets[principal] {
		targets = append(targets, t)
	}
	return targets, nil
}

func (s *Store) SaveDiaryEntry(_ context.Context, principal, date string, entry core.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.diary[principal] == nil {
		s.diary[principal] = make(map[string]core.DiaryEntry)
	}
	s.diary[principal][date] = entry
	return nil
}

func (s *Store) GetDiaryEntry(_ context.Context, principal, date string) (*core.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.diary[principal][date]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (s *Store) ListDiaryEntries(_ context.Context, principal string) ([]core.DatedDiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]core.DatedDiaryEntry, 0, len(s.diary[principal]))
	for date, entry := range s.diary[principal] {
		entries = append(entries, core.DatedDiaryEntry{Date: date, Entry: entry})
	}
	return entries, nil
}

func (s *Store) CreateGoal(_ context.Context, principal string, g core.InvestmentGoal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goals[principal] == nil {
		s.goals[principal] = make(map[int64]core.InvestmentGoal)
	}
	s.nextGoalID++
	g.ID = s.nextGoalID
	s.goals[principal][g.ID] = g
	return g.ID, nil
}

func (s *Store) GetGoal(_ context.Context, principal string, goalID int64) (core.InvestmentGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[principal][goalID]
	if !ok {
		return core.InvestmentGoal{}, core.ErrNotFound
	}
	return g, nil
}

func (s *Store) UpdateGoal(_ context.Context, principal string, g core.InvestmentGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[principal][g.ID]; !ok {
		return core.ErrNotFound
	}
	s.goals[principal][g.ID] = g
	return nil
}

func (s *Store) DeleteGoal(_ context.Context, principal string, goalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.goals[principal], goalID)
	return nil
}

func (s *Store) ListGoals(_ context.Context, principal string) ([]core.InvestmentGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	goals := make([]core.InvestmentGoal, 0, len(s.goals[principal]))
	for _, g := range s.goals[principal] {
		goals = append(goals, g)
	}
	return goals, nil
}

func (s *Store) AddInvestmentDiaryEntry(_ context.Context, principal string, e core.InvestmentDiaryEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextInvestDiaryID++
	e.ID = s.nextInvestDiaryID
	s.investDiary[principal] = append(s.investDiary[principal], e)
	return e.ID, nil
}

func (s *Store) ListInvestmentDiaryEntries(_ context.Context, principal string) ([]core.InvestmentDiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append([]core.InvestmentDiaryEntry(nil), s.investDiary[principal]...)
	return entries, nil
}

func (s *Store) SaveProfile(_ context.Context, principal string, p core.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[principal] = p
	return nil
}

func (s *Store) GetProfile(_ context.Context, principal string) (*core.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[principal]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
