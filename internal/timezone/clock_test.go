package timezone

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := map[string]time.Duration{
		"09:00":    9 * time.Hour,
		"14:30":    14*time.Hour + 30*time.Minute,
		"14:30:15": 14*time.Hour + 30*time.Minute + 15*time.Second,
		"24:00":    24 * time.Hour,
		"24:00:00": 24 * time.Hour,
		" 07:05 ":  7*time.Hour + 5*time.Minute,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClock(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{
		"", "9:00", "25:00", "24:30", "12:60", "ab:cd", "12-00",
		"12:3x", "1x:30", "12:30:5x", "12:30:60", "24:00:01", "+1:30",
	} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("ParseClock(%q) should fail", bad)
		}
	}
}

func TestFormatClock(t *testing.T) {
	d := 9*time.Hour + 5*time.Minute + 7*time.Second
	if got := FormatClock(d); got != "09:05" {
		t.Fatalf("FormatClock = %s", got)
	}
	if got := FormatClockSeconds(d); got != "09:05:07" {
		t.Fatalf("FormatClockSeconds = %s", got)
	}
}

func TestWeekdayKeyAndBounds(t *testing.T) {
	loc := time.FixedZone("AST", -4*3600)
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, loc)
	if WeekdayKey(now) != "monday" {
		t.Fatalf("expected monday, got %s", WeekdayKey(now))
	}

	start, end := MonthBounds(now)
	if start.Day() != 1 || end.Month() != time.November {
		t.Fatalf("unexpected month bounds %s - %s", start, end)
	}

	d, err := ParseDate("2026-10-19")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if got := At(d, 10*time.Hour, loc); got.Hour() != 10 || got.Location() != loc {
		t.Fatalf("unexpected At result %s", got)
	}
}
