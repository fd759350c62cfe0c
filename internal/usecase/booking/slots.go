package booking

import (
	"context"

	"github.com/google/uuid"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/domain/settings"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

type SlotsResult struct {
	Date          string               `json:"date"`
	Closed        bool                 `json:"closed"`
	UseTimeBlocks bool                 `json:"useTimeBlocks"`
	Open          string               `json:"open,omitempty"`
	Close         string               `json:"close,omitempty"`
	DurationHours int                  `json:"durationHours"`
	BufferTime    int                  `json:"bufferTime"`
	Slots         []bookingdomain.Slot `json:"slots"`
}

type ListSlots struct {
	repo   bookingdomain.Repository
	studio Studio
}

func NewListSlots(repo bookingdomain.Repository, studio Studio) *ListSlots {
	return &ListSlots{repo: repo, studio: studio}
}

// Execute lists bookable start times for date. Starts already in the past
// are reported as unavailable.
func (uc *ListSlots) Execute(
	ctx context.Context,
	sessionDate string,
	serviceTypeID *uuid.UUID,
) (*SlotsResult, error) {

	date, err := parseDate(sessionDate)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.repo.FindBusinessConfig(ctx)
	if err != nil {
		return nil, err
	}
	svc, err := resolveService(ctx, uc.repo, serviceTypeID)
	if err != nil {
		return nil, err
	}

	duration := cfg.MinSessionDuration
	if svc != nil {
		duration = svc.Duration
	}

	res := &SlotsResult{
		Date:          date.Format(timezone.DateLayout),
		UseTimeBlocks: cfg.UseTimeBlocks,
		DurationHours: duration,
		BufferTime:    cfg.BufferTime,
		Slots:         []bookingdomain.Slot{},
	}

	hours, open := settings.HoursFor(cfg, date)
	if !open {
		res.Closed = true
		return res, nil
	}
	res.Open = timezone.FormatClock(hours.Open)
	res.Close = timezone.FormatClock(hours.Close)

	bookings, err := uc.repo.FindBookingsByDateExcludingCancelled(ctx, date, nil)
	if err != nil {
		return nil, err
	}
	existing := bookingdomain.IntervalsOf(bookings)

	if cfg.UseTimeBlocks {
		res.Slots = bookingdomain.TimeBlockSlots(cfg.TimeBlocks.Data(), hours, duration, existing)
	} else {
		res.Slots = bookingdomain.GenerateAvailableSlots(hours, existing, cfg.BufferTime)
	}

	now := uc.studio.now()
	for i := range res.Slots {
		start, err := timezone.ParseClock(res.Slots[i].Time)
		if err != nil || !timezone.At(date, start, now.Location()).After(now) {
			res.Slots[i].Available = false
		}
	}
	return res, nil
}
