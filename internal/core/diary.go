// Diary entries store a structured day note inside two free-text
// fields: the title carries "Energy: <n>" and the content carries
// "Win:", "Friction:" and "Investment Mindset:" prefixed sections. The
// encoding predates this service and is preserved so existing entries
// keep round-tripping.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	diaryDateLayout = "2006-01-02"

	winPrefix      = "Win:"
	frictionPrefix = "Friction:"
	mindsetPrefix  = "Investment Mindset:"
)

var energyPattern = regexp.MustCompile(`Energy:\s*(\d+)`)

// DayNote is the decoded form of a DiaryEntry.
type DayNote struct {
	Energy   int64 // 1-5
	Win      string
	Friction string
	Mindset  string
}

// EncodeDiaryEntry packs a day note into the title/content convention.
func EncodeDiaryEntry(note DayNote) DiaryEntry {
	return DiaryEntry{
		Title: fmt.Sprintf("Energy: %d", note.Energy),
		Content: fmt.Sprintf("%s %s\n%s %s\n%s %s",
			winPrefix, note.Win,
			frictionPrefix, note.Friction,
			mindsetPrefix, note.Mindset),
	}
}

// DecodeDiaryEntry unpacks the title/content convention. Missing
// sections decode to empty strings; a missing energy marker decodes to
// zero.
func DecodeDiaryEntry(entry DiaryEntry) DayNote {
	var note DayNote
	if m := energyPattern.FindStringSubmatch(entry.Title); m != nil {
		if energy, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			note.Energy = energy
		}
	}
	for _, line := range strings.Split(entry.Content, "\n") {
		switch {
		case strings.HasPrefix(line, winPrefix):
			note.Win = strings.TrimSpace(strings.TrimPrefix(line, winPrefix))
		case strings.HasPrefix(line, frictionPrefix):
			note.Friction = strings.TrimSpace(strings.TrimPrefix(line, frictionPrefix))
		case strings.HasPrefix(line, mindsetPrefix):
			note.Mindset = strings.TrimSpace(strings.TrimPrefix(line, mindsetPrefix))
		}
	}
	return note
}

// ValidateDiaryDate checks that a diary key is a YYYY-MM-DD date.
func ValidateDiaryDate(date string) error {
	if _, err := time.Parse(diaryDateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// FormatDiaryDate renders a day as a YYYY-MM-DD diary key.
func FormatDiaryDate(d Day) string {
	return d.Time().Format(diaryDateLayout)
}
