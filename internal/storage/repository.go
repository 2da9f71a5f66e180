// Package storage is the SQLite implementation of the store ports.
// Every row carries the owning principal and every query filters on it;
// record writes are single-row UPSERTs so last write wins at the
// (habit, day, month, year) key with no cross-entity transactions.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"climb/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateHabit(ctx context.Context, principal string, h core.Habit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (principal, id, name, created_at, unit_kind, unit_label, weekly_target, default_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		principal, h.ID, h.Name, h.CreatedAt, string(h.Unit.Kind), h.Unit.Label, h.WeeklyTarget, nullableInt(h.DefaultAmount))
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}

	slog.InfoContext(ctx, "Habit saved to SQLite",
		"habit_id", h.ID,
		"name", h.Name,
		"weekly_target", h.WeeklyTarget)

	return nil
}

func (r *SQLiteRepository) GetHabit(ctx context.Context, principal, habitID string) (core.Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, unit_kind, unit_label, weekly_target, default_amount
		FROM habits WHERE principal = ? AND id = ?`, principal, habitID)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Habit{}, core.ErrNotFound
	}
	if err != nil {
		return core.Habit{}, fmt.Errorf("get habit: %w", err)
	}
	return h, nil
}

func (r *SQLiteRepository) UpdateHabit(ctx context.Context, principal string, h core.Habit) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE habits SET name = ?, unit_kind = ?, unit_label = ?, weekly_target = ?, default_amount = ?
		WHERE principal = ? AND id = ?`,
		h.Name, string(h.Unit.Kind), h.Unit.Label, h.WeeklyTarget, nullableInt(h.DefaultAmount), principal, h.ID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

// DeleteHabit removes the habit with its records and targets. Each
// delete is its own statement; partial failure leaves orphan rows that
// no query can reach, so a transaction is not worth the lock.
func (r *SQLiteRepository) DeleteHabit(ctx context.Context, principal, habitID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM habit_records WHERE principal = ? AND habit_id = ?`, principal, habitID); err != nil {
		return fmt.Errorf("delete habit records: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM monthly_targets WHERE principal = ? AND habit_id = ?`, principal, habitID); err != nil {
		return fmt.Errorf("delete monthly targets: %w", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM habits WHERE principal = ? AND id = ?`, principal, habitID); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}

	slog.InfoContext(ctx, "Habit deleted from SQLite", "habit_id", habitID)
	return nil
}

func (r *SQLiteRepository) ListHabits(ctx context.Context, principal string) ([]core.Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, unit_kind, unit_label, weekly_target, default_amount
		FROM habits WHERE principal = ? ORDER BY created_at`, principal)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []core.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r *SQLiteRepository) UpsertRecord(ctx context.Context, principal string, rec core.CompletionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_records (principal, habit_id, day, month, year, completed_at, amount, unit_kind, unit_label, habit_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (principal, habit_id, year, month, day) DO UPDATE SET
			completed_at = excluded.completed_at,
			amount       = excluded.amount,
			unit_kind    = excluded.unit_kind,
			unit_label   = excluded.unit_label,
			habit_name   = excluded.habit_name`,
		principal, rec.HabitID, rec.Day, rec.Month, rec.Year,
		nullableInt(rec.CompletedAt), nullableInt(rec.Amount),
		string(rec.Unit.Kind), rec.Unit.Label, rec.HabitName)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, principal, habitID string, d core.Day) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM habit_records
		WHERE principal = ? AND habit_id = ? AND year = ? AND month = ? AND day = ?`,
		principal, habitID, d.Year, d.Month, d.Day)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetRecord(ctx context.Context, principal, habitID string, d core.Day) (*core.CompletionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT habit_id, day, month, year, completed_at, amount, unit_kind, unit_label, habit_name
		FROM habit_records
		WHERE principal = ? AND habit_id = ? AND year = ? AND month = ? AND day = ?`,
		principal, habitID, d.Year, d.Month, d.Day)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return &rec, nil
}

func (r *SQLiteRepository) ListRecordsForMonth(ctx context.Context, principal string, month, year int64) ([]core.CompletionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, month, year, completed_at, amount, unit_kind, unit_label, habit_name
		FROM habit_records
		WHERE principal = ? AND year = ? AND month = ?
		ORDER BY day`, principal, year, month)
	if err != nil {
		return nil, fmt.Errorf("list records for month: %w", err)
	}
	return collectRecords(rows)
}

func (r *SQLiteRepository) ListRecordsForHabit(ctx context.Context, principal, habitID string) ([]core.CompletionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, month, year, completed_at, amount, unit_kind, unit_label, habit_name
		FROM habit_records
		WHERE principal = ? AND habit_id = ?
		ORDER BY year, month, day`, principal, habitID)
	if err != nil {
		return nil, fmt.Errorf("list records for habit: %w", err)
	}
	return collectRecords(rows)
}

func (r *SQLiteRepository) ListRecordsInRange(ctx context.Context, principal string, dr core.DateRange) ([]core.CompletionRecord, error) {
	// Day keys compare as year*10000 + month*100 + day ordinals; the
	// record side uses the stored components so calendar-invalid keys
	// still land in the right slot.
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, month, year, completed_at, amount, unit_kind, unit_label, habit_name
		FROM habit_records
		WHERE principal = ? AND (year * 10000 + month * 100 + day) BETWEEN ? AND ?
		ORDER BY year, month, day`,
		principal, dayOrdinal(dr.Start), dayOrdinal(dr.End))
	if err != nil {
		return nil, fmt.Errorf("list records in range: %w", err)
	}
	return collectRecords(rows)
}

func (r *SQLiteRepository) UpsertTarget(ctx context.Context, principal string, t core.MonthlyTarget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO monthly_targets (principal, habit_id, month, year, amount)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (principal, habit_id, year, month) DO UPDATE SET amount = excluded.amount`,
		principal, t.HabitID, t.Month, t.Year, t.Amount)
	if err != nil {
		return fmt.Errorf("upsert monthly target: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetTarget(ctx context.Context, principal, habitID string, month, year int64) (*core.MonthlyTarget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT habit_id, month, year, amount FROM monthly_targets
		WHERE principal = ? AND habit_id = ? AND year = ? AND month = ?`,
		principal, habitID, year, month)

	var t core.MonthlyTarget
	err := row.Scan(&t.HabitID, &t.Month, &t.Year, &t.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get monthly target: %w", err)
	}
	return &t, nil
}

func (r *SQLiteRepository) ListTargets(ctx context.Context, principal string) ([]core.MonthlyTarget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, month, year, amount FROM monthly_targets
		WHERE principal = ? ORDER BY year, month`, principal)
	if err != nil {
		return nil, fmt.Errorf("list monthly targets: %w", err)
	}
	defer rows.Close()

	var targets []core.MonthlyTarget
	for rows.Next() {
		var t core.MonthlyTarget
		if err := rows.Scan(&t.HabitID, &t.Month, &t.Year, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly target: %w", err)
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

func (r *SQLiteRepository) SaveDiaryEntry(ctx context.Context, principal, date string, entry core.DiaryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO diary_entries (principal, date, title, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (principal, date) DO UPDATE SET title = excluded.title, content = excluded.content`,
		principal, date, entry.Title, entry.Content)
	if err != nil {
		return fmt.Errorf("save diary entry: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetDiaryEntry(ctx context.Context, principal, date string) (*core.DiaryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT title, content FROM diary_entries WHERE principal = ? AND date = ?`, principal, date)

	var entry core.DiaryEntry
	err := row.Scan(&entry.Title, &entry.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get diary entry: %w", err)
	}
	return &entry, nil
}

func (r *SQLiteRepository) ListDiaryEntries(ctx context.Context, principal string) ([]core.DatedDiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, title, content FROM diary_entries WHERE principal = ? ORDER BY date`, principal)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	defer rows.Close()

	var entries []core.DatedDiaryEntry
	for rows.Next() {
		var e core.DatedDiaryEntry
		if err := rows.Scan(&e.Date, &e.Entry.Title, &e.Entry.Content); err != nil {
			return nil, fmt.Errorf("scan diary entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, principal string, g core.InvestmentGoal) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO investment_goals (principal, asset, currently_held, target)
		VALUES (?, ?, ?, ?)`,
		principal, g.Asset, g.CurrentlyHeld, g.Target)
	if err != nil {
		return 0, fmt.Errorf("insert investment goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, principal string, goalID int64) (core.InvestmentGoal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, asset, currently_held, target FROM investment_goals
		WHERE principal = ? AND id = ?`, principal, goalID)

	var g core.InvestmentGoal
	err := row.Scan(&g.ID, &g.Asset, &g.CurrentlyHeld, &g.Target)
	if errors.Is(err, sql.ErrNoRows) {
		return core.InvestmentGoal{}, core.ErrNotFound
	}
	if err != nil {
		return core.InvestmentGoal{}, fmt.Errorf("get investment goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, principal string, g core.InvestmentGoal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE investment_goals SET asset = ?, currently_held = ?, target = ?
		WHERE principal = ? AND id = ?`,
		g.Asset, g.CurrentlyHeld, g.Target, principal, g.ID)
	if err != nil {
		return fmt.Errorf("update investment goal: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, principal string, goalID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM investment_goals WHERE principal = ? AND id = ?`, principal, goalID)
	if err != nil {
		return fmt.Errorf("delete investment goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, principal string) ([]core.InvestmentGoal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, asset, currently_held, target FROM investment_goals
		WHERE principal = ? ORDER BY id`, principal)
	if err != nil {
		return nil, fmt.Errorf("list investment goals: %w", err)
	}
	defer rows.Close()

	var goals []core.InvestmentGoal
	for rows.Next() {
		var g core.InvestmentGoal
		if err := rows.Scan(&g.ID, &g.Asset, &g.CurrentlyHeld, &g.Target); err != nil {
			return nil, fmt.Errorf("scan investment goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *SQLiteRepository) AddInvestmentDiaryEntry(ctx context.Context, principal string, e core.InvestmentDiaryEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO investment_diary_entries (principal, asset, date, amount, notes)
		VALUES (?, ?, ?, ?, ?)`,
		principal, e.Asset, e.Date, e.Amount, e.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert investment diary entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListInvestmentDiaryEntries(ctx context.Context, principal string) ([]core.InvestmentDiaryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, asset, date, amount, notes FROM investment_diary_entries
		WHERE principal = ? ORDER BY date`, principal)
	if err != nil {
		return nil, fmt.Errorf("list investment diary entries: %w", err)
	}
	defer rows.Close()

	var entries []core.InvestmentDiaryEntry
	for rows.Next() {
		var e core.InvestmentDiaryEntry
		if err := rows.Scan(&e.ID, &e.Asset, &e.Date, &e.Amount, &e.Notes); err != nil {
			return nil, fmt.Errorf("scan investment diary entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteRepository) SaveProfile(ctx context.Context, principal string, p core.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (principal, name) VALUES (?, ?)
		ON CONFLICT (principal) DO UPDATE SET name = excluded.name`,
		principal, p.Name)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetProfile(ctx context.Context, principal string) (*core.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name FROM user_profiles WHERE principal = ?`, principal)

	var p core.UserProfile
	err := row.Scan(&p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (core.Habit, error) {
	var (
		h             core.Habit
		unitKind      string
		defaultAmount sql.NullInt64
	)
	if err := row.Scan(&h.ID, &h.Name, &h.CreatedAt, &unitKind, &h.Unit.Label, &h.WeeklyTarget, &defaultAmount); err != nil {
		return core.Habit{}, err
	}
	h.Unit.Kind = core.UnitKind(unitKind)
	if defaultAmount.Valid {
		v := defaultAmount.Int64
		h.DefaultAmount = &v
	}
	return h, nil
}

func scanRecord(row rowScanner) (core.CompletionRecord, error) {
	var (
		rec         core.CompletionRecord
		unitKind    string
		completedAt sql.NullInt64
		amount      sql.NullInt64
	)
	if err := row.Scan(&rec.HabitID, &rec.Day, &rec.Month, &rec.Year,
		&completedAt, &amount, &unitKind, &rec.Unit.Label, &rec.HabitName); err != nil {
		return core.CompletionRecord{}, err
	}
	rec.Unit.Kind = core.UnitKind(unitKind)
	if completedAt.Valid {
		v := completedAt.Int64
		rec.CompletedAt = &v
	}
	if amount.Valid {
		v := amount.Int64
		rec.Amount = &v
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]core.CompletionRecord, error) {
	defer rows.Close()
	var recs []core.CompletionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func dayOrdinal(d core.Day) int64 {
	return d.Year*10000 + d.Month*100 + d.Day
}
