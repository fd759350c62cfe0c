package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/domain/settings"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string

	SessionDate string
	StartTime   string
	EndTime     string
	Duration    *decimal.Decimal

	ServiceTypeID      *uuid.UUID
	ContentType        string
	ProjectDescription string
	ClientNotes        string
	PaymentMethod      string

	Equipment []bookingdomain.EquipmentSelection

	// Public enables the reservation-flow rules: operating hours, time
	// blocks, session limits and no past sessions.
	Public  bool
	ActorID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   bookingdomain.Repository
	audit  *audit.Dispatcher
	studio Studio
}

func NewCreateBooking(
	repo bookingdomain.Repository,
	audit *audit.Dispatcher,
	studio Studio,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		studio: studio,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	date, err := parseDate(in.SessionDate)
	if err != nil {
		return nil, err
	}
	start, err := parseClock("startTime", in.StartTime)
	if err != nil {
		return nil, err
	}

	now := uc.studio.now()
	var created *models.Booking

	err = uc.repo.Transaction(ctx, func(tx bookingdomain.Repository) error {

		// --------------------------------------------------
		// 1. Serialize booking writes
		// --------------------------------------------------
		cfg, err := tx.LockBookingWrites(ctx)
		if err != nil {
			return err
		}

		// --------------------------------------------------
		// 2. Service and session window
		// --------------------------------------------------
		svc, err := resolveService(ctx, tx, in.ServiceTypeID)
		if err != nil {
			return err
		}

		end, err := resolveEnd(start, in.EndTime, in.Duration, svc, cfg)
		if err != nil {
			return err
		}
		interval, err := bookingdomain.NewInterval(start, end)
		if err != nil {
			return err
		}
		sched := schedule{Date: date, Interval: interval}

		if in.Public {
			if err := checkPublicRules(cfg, sched, svc, now, uc.studio.Location); err != nil {
				return err
			}
		}

		// --------------------------------------------------
		// 3. Availability
		// --------------------------------------------------
		free, err := bookingdomain.IsSlotFree(ctx, tx, date, interval, nil)
		if err != nil {
			return err
		}
		if !free {
			return httperr.SlotUnavailable()
		}

		// --------------------------------------------------
		// 4. Pricing
		// --------------------------------------------------
		items, err := resolveEquipment(ctx, tx, in.Equipment)
		if err != nil {
			return err
		}
		quote := bookingdomain.CalculatePrice(bookingdomain.PriceInput{
			DurationHours: sched.hours(),
			Service:       svc,
			Equipment:     items,
			Selections:    in.Equipment,
			Config:        bookingdomain.PricingConfigFrom(cfg),
		})

		// --------------------------------------------------
		// 5. Number + insert
		// --------------------------------------------------
		number, err := bookingdomain.NextBookingNumber(ctx, tx, uc.studio.prefix(), now)
		if err != nil {
			return err
		}

		contentType := in.ContentType
		if contentType == "" {
			contentType = "other"
		}

		b := &models.Booking{
			ID:                 uuid.New(),
			BookingNumber:      number,
			ClientName:         strings.TrimSpace(in.ClientName),
			ClientEmail:        strings.ToLower(strings.TrimSpace(in.ClientEmail)),
			ClientPhone:        strings.TrimSpace(in.ClientPhone),
			SessionDate:        datatypes.Date(date),
			StartTime:          toClock(interval.Start),
			EndTime:            toClock(interval.End),
			Duration:           quote.DurationHours,
			ContentType:        contentType,
			ProjectDescription: in.ProjectDescription,
			Status:             string(bookingdomain.InitialStatus()),
			PaymentStatus:      string(paymentdomain.InitialStatus()),
			BasePrice:          quote.BasePrice,
			EquipmentCost:      quote.EquipmentCost,
			TotalPrice:         quote.TotalPrice,
			DepositAmount:      quote.DepositAmount,
			PaidAmount:         decimal.Zero,
			RemainingAmount:    quote.RemainingAmount,
			PaymentMethod:      in.PaymentMethod,
			ClientNotes:        in.ClientNotes,
			CreatedAt:          now.UTC(),
		}
		if svc != nil {
			b.ServiceTypeID = &svc.ID
		}
		b.Equipment = quote.BookingLines(b.ID)

		if err := tx.InsertBooking(ctx, b); err != nil {
			return err
		}

		created, err = tx.GetBooking(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &created.ID,
		Metadata: map[string]any{
			"bookingNumber": created.BookingNumber,
			"public":        in.Public,
		},
	})

	return created, nil
}

// checkPublicRules applies the reservation-flow rules on top of availability.
func checkPublicRules(
	cfg *models.BusinessConfig,
	sched schedule,
	svc *models.ServiceType,
	now time.Time,
	loc *time.Location,
) error {

	if loc == nil {
		loc = now.Location()
	}
	if !timezone.At(sched.Date, sched.Interval.Start, loc).After(now) {
		return httperr.Validation("session_in_past", "the session must start in the future")
	}

	if svc == nil {
		hours := sched.Interval.Hours()
		if hours < float64(cfg.MinSessionDuration) || hours > float64(cfg.MaxSessionDuration) {
			return httperr.Validation(
				"invalid_duration",
				"session must last between %d and %d hours",
				cfg.MinSessionDuration, cfg.MaxSessionDuration,
			)
		}
	}

	if !settings.IsWithinOperatingHours(cfg, sched.Date, sched.Interval.Start, sched.Interval.End) {
		return httperr.Validation("outside_operating_hours", "the studio is closed at the requested time")
	}

	if cfg.UseTimeBlocks && !bookingdomain.IsTimeBlockStart(cfg.TimeBlocks.Data(), sched.Interval.Start) {
		return httperr.Validation("invalid_time_block", "start time must match a configured time block")
	}
	return nil
}

func toClock(d time.Duration) datatypes.Time {
	return datatypes.NewTime(int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60, 0)
}
