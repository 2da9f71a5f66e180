package http

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"climb/internal/core"
)

// amountValue accepts a JSON number or a free-text duration string
// ("45", "1:30", "2 min"). Time-unit habits submit durations as text;
// everything else sends plain numbers.
type amountValue struct {
	set   bool
	value int64
}

func (a *amountValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		seconds, err := core.ParseDuration(s)
		if err != nil {
			return err
		}
		a.set = true
		a.value = seconds
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or duration string: %w", core.ErrInvalidAmount)
	}
	a.set = true
	a.value = n
	return nil
}

func (a *amountValue) ptr() *int64 {
	if !a.set {
		return nil
	}
	v := a.value
	return &v
}

type unitDTO struct {
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

type habitDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CreatedAt     int64   `json:"createdAt"`
	Unit          unitDTO `json:"unit"`
	WeeklyTarget  int64   `json:"weeklyTarget"`
	DefaultAmount *int64  `json:"defaultAmount,omitempty"`
}

type recordDTO struct {
	HabitID     string  `json:"habitId"`
	Day         int64   `json:"day"`
	Month       int64   `json:"month"`
	Year        int64   `json:"year"`
	CompletedAt *int64  `json:"completedAt,omitempty"`
	Amount      *int64  `json:"amount,omitempty"`
	AmountText  string  `json:"amountText,omitempty"`
	Unit        unitDTO `json:"unit"`
	HabitName   string  `json:"habitName"`
}

type targetDTO struct {
	HabitID string `json:"habitId"`
	Month   int64  `json:"month"`
	Year    int64  `json:"year"`
	Amount  int64  `json:"amount"`
}

type diaryEntryDTO struct {
	Date    string `json:"date,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type goalDTO struct {
	ID            int64  `json:"id"`
	Asset         string `json:"asset"`
	CurrentlyHeld int64  `json:"currentlyHeld"`
	Target        int64  `json:"target"`
	Progress      int64  `json:"progress"`
}

type investmentDiaryDTO struct {
	ID     int64  `json:"id"`
	Asset  string `json:"asset"`
	Date   int64  `json:"date"`
	Amount int64  `json:"amount"`
	Notes  string `json:"notes,omitempty"`
}

func toUnitDTO(u core.HabitUnit) unitDTO {
	return unitDTO{Kind: string(u.Kind), Label: u.Label}
}

func toHabitDTO(h core.Habit) habitDTO {
	return habitDTO{
		ID:            h.ID,
		Name:          h.Name,
		CreatedAt:     h.CreatedAt,
		Unit:          toUnitDTO(h.Unit),
		WeeklyTarget:  h.WeeklyTarget,
		DefaultAmount: h.DefaultAmount,
	}
}

func toRecordDTO(rec core.CompletionRecord) recordDTO {
	dto := recordDTO{
		HabitID:     rec.HabitID,
		Day:         rec.Day,
		Month:       rec.Month,
		Year:        rec.Year,
		CompletedAt: rec.CompletedAt,
		Amount:      rec.Amount,
		Unit:        toUnitDTO(rec.Unit),
		HabitName:   rec.HabitName,
	}
	if rec.Amount != nil && rec.Unit.IsTime() {
		dto.AmountText = core.FormatDuration(*rec.Amount)
	}
	return dto
}

func toGoalDTO(g core.InvestmentGoal) goalDTO {
	return goalDTO{
		ID:            g.ID,
		Asset:         g.Asset,
		CurrentlyHeld: g.CurrentlyHeld,
		Target:        g.Target,
		Progress:      g.Progress(),
	}
}

func toInvestmentDiaryDTO(e core.InvestmentDiaryEntry) investmentDiaryDTO {
	return investmentDiaryDTO{
		ID:     e.ID,
		Asset:  e.Asset,
		Date:   e.Date,
		Amount: e.Amount,
		Notes:  e.Notes,
	}
}

// parseMonthParams extracts month and year query parameters, defaulting
// to the current month.
func parseMonthParams(query url.Values) (month, year int64) {
	now := time.Now()
	month = int64(now.Month())
	year = int64(now.Year())

	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.ParseInt(v, 10, 64); err == nil {
			month = m
		}
	}
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.ParseInt(v, 10, 64); err == nil {
			year = y
		}
	}
	return month, year
}

// parseRangeParams extracts an inclusive start/end date range from
// YYYY-MM-DD query parameters. Both are required.
func parseRangeParams(query url.Values) (core.DateRange, error) {
	start, err := parseDay(query.Get("start"))
	if err != nil {
		return core.DateRange{}, fmt.Errorf("start: %w", core.ErrInvalidDate)
	}
	end, err := parseDay(query.Get("end"))
	if err != nil {
		return core.DateRange{}, fmt.Errorf("end: %w", core.ErrInvalidDate)
	}
	if end.Before(start) {
		start, end = end, start
	}
	return core.DateRange{Start: start, End: end}, nil
}

func parseDay(s string) (core.Day, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return core.Day{}, err
	}
	return core.Day{Day: int64(t.Day()), Month: int64(t.Month()), Year: int64(t.Year())}, nil
}
