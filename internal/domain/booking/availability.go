package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// Interval is a half-open [Start, End) range of clock offsets within a day.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

func NewInterval(start, end time.Duration) (Interval, error) {
	if start < 0 || end > 24*time.Hour {
		return Interval{}, httperr.Validation("invalid_time_range", "times must fall within the day")
	}
	if start >= end {
		return Interval{}, httperr.Validation("invalid_time_range", "start time must be before end time")
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps treats touching endpoints as free.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) Hours() float64 {
	return (i.End - i.Start).Hours()
}

func IntervalOf(b models.Booking) Interval {
	return Interval{Start: time.Duration(b.StartTime), End: time.Duration(b.EndTime)}
}

func IntervalsOf(bookings []models.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, IntervalOf(b))
	}
	return out
}

// Fits reports whether requested overlaps none of existing.
func Fits(existing []Interval, requested Interval) bool {
	for _, e := range existing {
		if e.Overlaps(requested) {
			return false
		}
	}
	return true
}

// IsSlotFree loads the non-cancelled bookings of date (minus exclude) and
// checks requested against them.
func IsSlotFree(
	ctx context.Context,
	repo Repository,
	date time.Time,
	requested Interval,
	exclude *uuid.UUID,
) (bool, error) {
	bookings, err := repo.FindBookingsByDateExcludingCancelled(ctx, date, exclude)
	if err != nil {
		return false, err
	}
	return Fits(IntervalsOf(bookings), requested), nil
}
