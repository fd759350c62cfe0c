package booking

import (
	"time"

	"github.com/BruksfildServices01/studio-booking/internal/domain/settings"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

const slotStep = time.Hour

type Slot struct {
	Time      string `json:"time"`
	Label     string `json:"label,omitempty"`
	Available bool   `json:"available"`
}

// GenerateAvailableSlots lists hourly start candidates from open while before
// close. A candidate is occupied iff [t, t+1h) overlaps an existing booking.
// bufferMinutes is accepted for configuration parity and does not widen the check.
func GenerateAvailableSlots(hours settings.Hours, existing []Interval, bufferMinutes int) []Slot {
	slots := []Slot{}
	for t := hours.Open; t < hours.Close; t += slotStep {
		candidate := Interval{Start: t, End: t + slotStep}
		slots = append(slots, Slot{
			Time:      timezone.FormatClock(t),
			Available: Fits(existing, candidate),
		})
	}
	return slots
}

// BlockAvailable reports whether every hourly sub-slot of
// [start, start+durationHours) is free.
func BlockAvailable(start time.Duration, durationHours int, existing []Interval) bool {
	if durationHours < 1 {
		durationHours = 1
	}
	end := start + time.Duration(durationHours)*time.Hour
	if end > 24*time.Hour {
		return false
	}
	for t := start; t < end; t += slotStep {
		if !Fits(existing, Interval{Start: t, End: t + slotStep}) {
			return false
		}
	}
	return true
}

// TimeBlockSlots evaluates the configured blocks in their configured order.
// A block whose session would start before opening or run past closing is
// listed as unavailable.
func TimeBlockSlots(blocks []models.TimeBlock, hours settings.Hours, durationHours int, existing []Interval) []Slot {
	if durationHours < 1 {
		durationHours = 1
	}
	slots := make([]Slot, 0, len(blocks))
	for _, b := range blocks {
		start, err := timezone.ParseClock(b.Time)
		if err != nil {
			continue
		}
		end := start + time.Duration(durationHours)*time.Hour
		open := start >= hours.Open && end <= hours.Close
		slots = append(slots, Slot{
			Time:      timezone.FormatClock(start),
			Label:     b.Label,
			Available: open && BlockAvailable(start, durationHours, existing),
		})
	}
	return slots
}

// IsTimeBlockStart reports whether start matches one of the configured blocks.
func IsTimeBlockStart(blocks []models.TimeBlock, start time.Duration) bool {
	for _, b := range blocks {
		if t, err := timezone.ParseClock(b.Time); err == nil && t == start {
			return true
		}
	}
	return false
}
