package timezone

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout         = "2006-01-02"
	clockLayout        = "15:04"
	clockSecondsLayout = "15:04:05"
)

// ParseClock parses "HH:MM" or "HH:MM:SS" into an offset from midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var layout string
	switch len(s) {
	case len(clockLayout):
		layout = clockLayout
	case len(clockSecondsLayout):
		layout = clockSecondsLayout
	default:
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if s == "24:00" || s == "24:00:00" {
		return 24 * time.Hour, nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

func IsClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// FormatClock renders an offset from midnight as "HH:MM".
func FormatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// FormatClockSeconds renders an offset from midnight as "HH:MM:SS".
func FormatClockSeconds(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

// ParseDate parses a "YYYY-MM-DD" calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// CalendarDate drops the time of day and location of t, keeping its calendar date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// At combines a calendar date with a clock offset in loc.
func At(date time.Time, clock time.Duration, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(clock)
}

// WeekdayKey returns the lowercase english weekday name used in operating hours.
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}
