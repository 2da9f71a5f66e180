// Package core holds the habit tracking domain model: habit and record
// types, the duration codec, the Steady Climb plan, and the statistics
// derived from completion records.
//
// This file parses free-text durations into whole seconds and formats
// seconds back into display strings. Durations are the amount unit for
// Time habits.
package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	colonPattern   = regexp.MustCompile(`^(\d+):(\d+)$`)
	hoursPattern   = regexp.MustCompile(`^(\d+):(\d+):(\d+)$`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*(min|minute|minutes|m)(\s|$)`)
	secondsPattern = regexp.MustCompile(`(\d+)\s*(sec|second|seconds|s)(\s|$)`)
)

// ParseDuration converts a free-text duration to whole seconds.
//
// Accepted forms:
//
//	"1:15"            minutes:seconds, seconds must be < 60
//	"1:01:05"         hours:minutes:seconds, both trailing parts < 60
//	"1 min 15 sec"    any subset of min/sec tokens, any order, summed
//	"2m 30s"          abbreviated tokens
//	"90"              bare integer, interpreted as seconds
//
// Returns ErrInvalidDuration for empty or unparseable input.
func ParseDuration(input string) (int64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, ErrInvalidDuration
	}

	if m := hoursPattern.FindStringSubmatch(trimmed); m != nil {
		hours, errH := strconv.ParseInt(m[1], 10, 64)
		minutes, errM := strconv.ParseInt(m[2], 10, 64)
		seconds, errS := strconv.ParseInt(m[3], 10, 64)
		if errH == nil && errM == nil && errS == nil && minutes < 60 && seconds < 60 {
			return hours*3600 + minutes*60 + seconds, nil
		}
		return 0, ErrInvalidDuration
	}

	if m := colonPattern.FindStringSubmatch(trimmed); m != nil {
		minutes, errM := strconv.ParseInt(m[1], 10, 64)
		seconds, errS := strconv.ParseInt(m[2], 10, 64)
		if errM == nil && errS == nil && seconds < 60 {
			return minutes*60 + seconds, nil
		}
		return 0, ErrInvalidDuration
	}

	var total int64
	matched := false
	if m := minutesPattern.FindStringSubmatch(trimmed); m != nil {
		minutes, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, ErrInvalidDuration
		}
		total += minutes * 60
		matched = true
	}
	if m := secondsPattern.FindStringSubmatch(trimmed); m != nil {
		seconds, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, ErrInvalidDuration
		}
		total += seconds
		matched = true
	}
	if matched {
		return total, nil
	}

	plain, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || plain < 0 {
		return 0, ErrInvalidDuration
	}
	return plain, nil
}

// FormatDuration renders seconds as "H:MM:SS" when at least an hour,
// otherwise "M:SS". Negative input clamps to "0:00" rather than failing.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		return "0:00"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatDurationCompact renders seconds as "45s", "2m" or "1m 15s" for
// report rows.
func FormatDurationCompact(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	rem := seconds % 60
	if rem == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, rem)
}

// IsValidDuration reports whether input parses as a duration.
func IsValidDuration(input string) bool {
	_, err := ParseDuration(input)
	return err == nil
}
