// Package sheets defines the report sink port the sync worker writes
// to. The canonical store stays local; the spreadsheet is a mirrored
// report, so rows are append-only and clears are not propagated.
package sheets

import "context"

// ReportRow is one completed habit record as it appears on the report.
type ReportRow struct {
	Date      string // YYYY-MM-DD
	Principal string
	HabitName string
	Amount    string // formatted per the habit's unit, empty for done/not-done habits
}

// ReportWriter appends completion rows to the report sink. Append
// returns an opaque reference to the written row.
type ReportWriter interface {
	Append(ctx context.Context, row ReportRow) (string, error)
}
