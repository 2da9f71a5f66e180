// Package worker consumes record events and mirrors completed records
// onto the spreadsheet report. The local store is canonical; messages
// carry only the record key and the worker re-reads the current state,
// so stale or reordered deliveries cannot write stale data.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"climb/internal/amqp"
	"climb/internal/core"
	"climb/internal/sheets"
	"climb/internal/store"
)

// SyncWorker mirrors habit completions to the report sink.
type SyncWorker struct {
	store  store.Store
	report sheets.ReportWriter
}

func NewSyncWorker(st store.Store, report sheets.ReportWriter) *SyncWorker {
	return &SyncWorker{
		store:  st,
		report: report,
	}
}

// HandleRecordEvent processes a single record event. A returned error
// makes the consumer requeue the delivery.
func (w *SyncWorker) HandleRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error {
	slog.InfoContext(ctx, "Processing record event",
		"action", msg.Action,
		"habit_id", msg.HabitID,
		"day", msg.Day,
		"month", msg.Month,
		"year", msg.Year)

	if msg.Action == amqp.ActionClear {
		// Rows are append-only; a clear is only noted.
		slog.InfoContext(ctx, "Record cleared",
			"habit_id", msg.HabitID,
			"day", msg.Day,
			"month", msg.Month,
			"year", msg.Year)
		return nil
	}

	d := core.Day{Day: msg.Day, Month: msg.Month, Year: msg.Year}
	rec, err := w.store.GetRecord(ctx, msg.Principal, msg.HabitID, d)
	if err != nil {
		return fmt.Errorf("get record from store: %w", err)
	}
	if rec == nil {
		// Cleared again between publish and delivery; nothing to mirror.
		slog.InfoContext(ctx, "Record gone before sync, skipping",
			"habit_id", msg.HabitID,
			"day", msg.Day,
			"month", msg.Month,
			"year", msg.Year)
		return nil
	}

	row := sheets.ReportRow{
		Date:      fmt.Sprintf("%04d-%02d-%02d", rec.Year, rec.Month, rec.Day),
		Principal: msg.Principal,
		HabitName: rec.HabitName,
		Amount:    formatAmount(*rec),
	}

	ref, err := w.report.Append(ctx, row)
	if err != nil {
		return fmt.Errorf("append report row: %w", err)
	}

	slog.InfoContext(ctx, "Record synced to report",
		"habit_id", msg.HabitID,
		"habit_name", rec.HabitName,
		"sheets_ref", ref)

	return nil
}

// formatAmount renders the record's amount per its snapshotted unit.
func formatAmount(rec core.CompletionRecord) string {
	if rec.Amount == nil {
		return ""
	}
	if rec.Unit.IsTime() {
		return core.FormatDurationCompact(*rec.Amount)
	}
	return fmt.Sprintf("%d %s", *rec.Amount, rec.Unit.ShortLabel())
}
