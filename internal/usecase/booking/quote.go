package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
)

type QuoteInput struct {
	ServiceTypeID *uuid.UUID
	Duration      *decimal.Decimal
	StartTime     string
	EndTime       string
	Equipment     []bookingdomain.EquipmentSelection
}

type QuotePrice struct {
	repo bookingdomain.Repository
}

func NewQuotePrice(repo bookingdomain.Repository) *QuotePrice {
	return &QuotePrice{repo: repo}
}

// Execute prices a prospective booking with the same rules as creation.
func (uc *QuotePrice) Execute(ctx context.Context, in QuoteInput) (bookingdomain.Quote, error) {
	cfg, err := uc.repo.FindBusinessConfig(ctx)
	if err != nil {
		return bookingdomain.Quote{}, err
	}
	svc, err := resolveService(ctx, uc.repo, in.ServiceTypeID)
	if err != nil {
		return bookingdomain.Quote{}, err
	}

	hours := decimal.NewFromInt(int64(cfg.MinSessionDuration))
	switch {
	case svc != nil:
	case in.Duration != nil:
		if !in.Duration.IsPositive() {
			return bookingdomain.Quote{}, httperr.Validation("invalid_duration", "duration must be positive")
		}
		hours = *in.Duration
	case in.StartTime != "" && in.EndTime != "":
		start, err := parseClock("startTime", in.StartTime)
		if err != nil {
			return bookingdomain.Quote{}, err
		}
		end, err := parseClock("endTime", in.EndTime)
		if err != nil {
			return bookingdomain.Quote{}, err
		}
		interval, err := bookingdomain.NewInterval(start, end)
		if err != nil {
			return bookingdomain.Quote{}, err
		}
		hours = schedule{Interval: interval}.hours()
	}

	items, err := resolveEquipment(ctx, uc.repo, in.Equipment)
	if err != nil {
		return bookingdomain.Quote{}, err
	}

	return bookingdomain.CalculatePrice(bookingdomain.PriceInput{
		DurationHours: hours,
		Service:       svc,
		Equipment:     items,
		Selections:    in.Equipment,
		Config:        bookingdomain.PricingConfigFrom(cfg),
	}), nil
}
