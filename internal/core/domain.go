package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// UnitNone marks boolean done/not-done habits with no measured amount.
	UnitNone UnitKind = "none"
	// UnitReps counts repetitions.
	UnitReps UnitKind = "reps"
	// UnitTime counts seconds.
	UnitTime UnitKind = "time"
	// UnitCustom counts a user-labelled quantity (e.g. "km").
	UnitCustom UnitKind = "custom"
)

type (
	UnitKind string

	// HabitUnit is a closed tagged variant. Label is meaningful only for
	// UnitCustom and is carried verbatim.
	HabitUnit struct {
		Kind  UnitKind
		Label string
	}

	// Habit is a recurring user-defined activity.
	Habit struct {
		ID            string
		Name          string
		CreatedAt     int64 // unix nanoseconds, immutable
		Unit          HabitUnit
		WeeklyTarget  int64  // times per week, 1..7
		DefaultAmount *int64 // pre-fill amount, nil when unset; irrelevant for UnitNone
	}

	// CompletionRecord is the record of one habit on one calendar day.
	// Unit and HabitName are snapshots of the habit at write time so a
	// later unit change or rename does not rewrite history.
	CompletionRecord struct {
		HabitID     string
		Day         int64
		Month       int64
		Year        int64
		CompletedAt *int64 // unix nanoseconds; nil means not completed
		Amount      *int64
		Unit        HabitUnit
		HabitName   string
	}

	// MonthlyTarget is a manual per-habit per-month volume override.
	MonthlyTarget struct {
		HabitID string
		Month   int64
		Year    int64
		Amount  int64
	}

	// DiaryEntry is a free-text daily entry keyed by YYYY-MM-DD date.
	DiaryEntry struct {
		Title   string
		Content string
	}

	// InvestmentGoal tracks accumulation toward a target quantity of an asset.
	InvestmentGoal struct {
		ID            int64
		Asset         string
		CurrentlyHeld int64
		Target        int64
	}

	// InvestmentDiaryEntry records a single buy/sell note. Amount is in cents.
	InvestmentDiaryEntry struct {
		ID     int64
		Asset  string
		Date   int64 // unix nanoseconds
		Amount int64
		Notes  string
	}

	UserProfile struct {
		Name string
	}

	// DatedDiaryEntry pairs a diary entry with its date key for listings.
	DatedDiaryEntry struct {
		Date  string
		Entry DiaryEntry
	}

	// ExportData is the read-only snapshot assembled for a report range.
	ExportData struct {
		Profile                *UserProfile
		Habits                 []Habit
		HabitRecords           []CompletionRecord
		MonthlyTargets         []MonthlyTarget
		DiaryEntries           []DatedDiaryEntry
		InvestmentGoals        []InvestmentGoal
		InvestmentDiaryEntries []InvestmentDiaryEntry
	}
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidWeeklyTarget = errors.New("weekly target must be between 1 and 7")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrInvalidUnit         = errors.New("invalid unit")
	ErrInvalidDate         = errors.New("invalid date")
)

// NewHabitUnit builds a unit from its kind selection. Custom units keep
// the given label; the other kinds ignore it.
func NewHabitUnit(kind UnitKind, label string) (HabitUnit, error) {
	switch kind {
	case UnitNone, UnitReps, UnitTime:
		return HabitUnit{Kind: kind}, nil
	case UnitCustom:
		return HabitUnit{Kind: UnitCustom, Label: label}, nil
	default:
		return HabitUnit{}, ErrInvalidUnit
	}
}

// IsNone reports whether the habit has no measured amount.
func (u HabitUnit) IsNone() bool { return u.Kind == UnitNone }

// IsTime reports whether amounts are durations in seconds.
func (u HabitUnit) IsTime() bool { return u.Kind == UnitTime }

// LongLabel returns the verbose display label for the unit.
func (u HabitUnit) LongLabel() string {
	switch u.Kind {
	case UnitReps:
		return "reps"
	case UnitTime:
		return "minutes"
	case UnitCustom:
		return u.Label
	default:
		return "—"
	}
}

// ShortLabel returns the compact display label for the unit.
func (u HabitUnit) ShortLabel() string {
	switch u.Kind {
	case UnitReps:
		return "reps"
	case UnitTime:
		return "min"
	case UnitCustom:
		return u.Label
	default:
		return "—"
	}
}

func (u HabitUnit) Validate() error {
	switch u.Kind {
	case UnitNone, UnitReps, UnitTime, UnitCustom:
		return nil
	default:
		return ErrInvalidUnit
	}
}

func (h Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrInvalidName
	}
	if h.WeeklyTarget < 1 || h.WeeklyTarget > 7 {
		return ErrInvalidWeeklyTarget
	}
	if err := h.Unit.Validate(); err != nil {
		return err
	}
	if h.DefaultAmount != nil && *h.DefaultAmount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Day is a calendar day as stored on records: plain day/month/year
// components. Deliberately not cross-validated against the calendar
// (day 31 in a 30-day month is accepted).
type Day struct {
	Day   int64
	Month int64
	Year  int64
}

// Time returns the day as a UTC time at midnight. Out-of-calendar
// components normalize the way time.Date does.
func (d Day) Time() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day), 0, 0, 0, 0, time.UTC)
}

// Before reports whether d falls strictly before other.
func (d Day) Before(other Day) bool { return d.Time().Before(other.Time()) }

// After reports whether d falls strictly after other.
func (d Day) After(other Day) bool { return d.Time().After(other.Time()) }

// DateRange is an inclusive day range. Callers normalize the bounds;
// the range does not swap them.
type DateRange struct {
	Start Day
	End   Day
}

// Days returns the number of calendar days in the range, inclusive of
// both endpoints.
func (r DateRange) Days() int64 {
	diff := r.End.Time().Sub(r.Start.Time())
	return int64(diff.Hours()/24) + 1
}

// Contains reports whether the given day falls inside the range.
func (r DateRange) Contains(d Day) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// EachDay calls fn for every day in the range in order.
func (r DateRange) EachDay(fn func(Day)) {
	for t := r.Start.Time(); !t.After(r.End.Time()); t = t.AddDate(0, 0, 1) {
		fn(Day{Day: int64(t.Day()), Month: int64(t.Month()), Year: int64(t.Year())})
	}
}

// RecordDay returns the record's calendar day key.
func (rec CompletionRecord) RecordDay() Day {
	return Day{Day: rec.Day, Month: rec.Month, Year: rec.Year}
}

// Completed reports whether the record marks the day as done.
func (rec CompletionRecord) Completed() bool { return rec.CompletedAt != nil }
