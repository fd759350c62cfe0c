package booking

import (
	"context"

	"github.com/google/uuid"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
)

type CheckAvailabilityInput struct {
	SessionDate      string
	StartTime        string
	EndTime          string
	ServiceTypeID    *uuid.UUID
	ExcludeBookingID *uuid.UUID
}

type CheckAvailability struct {
	repo bookingdomain.Repository
}

func NewCheckAvailability(repo bookingdomain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

// Execute is a dry run of the creation-time availability check.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (bool, error) {

	date, err := parseDate(in.SessionDate)
	if err != nil {
		return false, err
	}
	start, err := parseClock("startTime", in.StartTime)
	if err != nil {
		return false, err
	}

	cfg, err := uc.repo.FindBusinessConfig(ctx)
	if err != nil {
		return false, err
	}
	svc, err := resolveService(ctx, uc.repo, in.ServiceTypeID)
	if err != nil {
		return false, err
	}

	end, err := resolveEnd(start, in.EndTime, nil, svc, cfg)
	if err != nil {
		return false, err
	}
	interval, err := bookingdomain.NewInterval(start, end)
	if err != nil {
		return false, err
	}

	return bookingdomain.IsSlotFree(ctx, uc.repo, date, interval, in.ExcludeBookingID)
}
