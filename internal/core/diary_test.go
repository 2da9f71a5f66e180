package core

import "testing"

func TestDiaryEntryRoundTrip(t *testing.T) {
	note := DayNote{Energy: 4, Win: "shipped the report", Friction: "late start", Mindset: "steady buying"}
	got := DecodeDiaryEntry(EncodeDiaryEntry(note))
	if got != note {
		t.Fatalf("round trip changed the note: %+v -> %+v", note, got)
	}
}

func TestDecodeDiaryEntry(t *testing.T) {
	entry := DiaryEntry{
		Title:   "Energy: 3",
		Content: "Win: early run\nFriction:\nInvestment Mindset: hold",
	}
	note := DecodeDiaryEntry(entry)
	if note.Energy != 3 || note.Win != "early run" || note.Friction != "" || note.Mindset != "hold" {
		t.Fatalf("unexpected decode: %+v", note)
	}

	// Entries predating the convention decode to zero values.
	note = DecodeDiaryEntry(DiaryEntry{Title: "a good day", Content: "free text"})
	if note.Energy != 0 || note.Win != "" {
		t.Fatalf("unstructured entry should decode empty, got %+v", note)
	}
}

func TestValidateDiaryDate(t *testing.T) {
	if err := ValidateDiaryDate("2024-06-03"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	for _, bad := range []string{"", "03-06-2024", "2024-13-01", "2024-06-31", "yesterday"} {
		if err := ValidateDiaryDate(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func TestFormatDiaryDate(t *testing.T) {
	if got := FormatDiaryDate(Day{3, 6, 2024}); got != "2024-06-03" {
		t.Fatalf("expected 2024-06-03, got %q", got)
	}
}
