package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/domain"
	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateBookingInput is a partial update; nil fields are left untouched.
type UpdateBookingInput struct {
	BookingID uuid.UUID

	SessionDate *string
	StartTime   *string
	EndTime     *string

	Status             *string
	CancellationReason string

	ClientName         *string
	ClientEmail        *string
	ClientPhone        *string
	ContentType        *string
	ProjectDescription *string
	PaymentMethod      *string
	AdminNotes         *string

	Equipment *[]bookingdomain.EquipmentSelection

	ActorID *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo   bookingdomain.Repository
	audit  *audit.Dispatcher
	studio Studio
}

func NewUpdateBooking(
	repo bookingdomain.Repository,
	audit *audit.Dispatcher,
	studio Studio,
) *UpdateBooking {
	return &UpdateBooking{
		repo:   repo,
		audit:  audit,
		studio: studio,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	now := uc.studio.now()
	var (
		updated *models.Booking
		changes []string
	)

	err := uc.repo.Transaction(ctx, func(tx bookingdomain.Repository) error {
		cfg, err := tx.LockBookingWrites(ctx)
		if err != nil {
			return err
		}

		b, err := tx.GetBookingForUpdate(ctx, in.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("booking_not_found")
			}
			return err
		}

		// --------------------------------------------------
		// 1. Reschedule
		// --------------------------------------------------
		rescheduled, err := uc.reschedule(ctx, tx, b, in)
		if err != nil {
			return err
		}
		if rescheduled {
			changes = append(changes, "schedule")
		}

		// --------------------------------------------------
		// 2. Reprice
		// --------------------------------------------------
		pricing := bookingdomain.PricingConfigFrom(cfg)
		repriceBase := rescheduled && b.ServiceTypeID == nil
		if repriceBase {
			b.BasePrice = pricing.HourlyRate.Mul(b.Duration)
		}

		if in.Equipment != nil {
			items, err := resolveEquipment(ctx, tx, *in.Equipment)
			if err != nil {
				return err
			}
			base := b.BasePrice
			quote := bookingdomain.CalculatePrice(bookingdomain.PriceInput{
				DurationHours:  b.Duration,
				FixedBasePrice: &base,
				Equipment:      items,
				Selections:     *in.Equipment,
				Config:         pricing,
			})
			lines := quote.BookingLines(b.ID)
			if err := tx.ReplaceBookingEquipment(ctx, b.ID, lines); err != nil {
				return err
			}
			b.EquipmentCost = quote.EquipmentCost
			changes = append(changes, "equipment")
		}

		if repriceBase || in.Equipment != nil {
			b.TotalPrice = b.BasePrice.Add(b.EquipmentCost)
			b.DepositAmount = bookingdomain.Deposit(b.TotalPrice, pricing)

			payments, err := tx.ListPaymentsForBooking(ctx, b.ID)
			if err != nil {
				return err
			}
			paymentdomain.Apply(b, paymentdomain.Settle(b.TotalPrice, payments))
		}

		// --------------------------------------------------
		// 3. Status
		// --------------------------------------------------
		if in.Status != nil && *in.Status != b.Status {
			target, ok := bookingdomain.ParseStatus(*in.Status)
			if !ok {
				return httperr.Validation("invalid_status", "unknown status %q", *in.Status)
			}
			if err := bookingdomain.Transition(b, target, now, in.CancellationReason, bookingdomain.CancelledByAdmin); err != nil {
				return err
			}
			changes = append(changes, "status")
		}

		// --------------------------------------------------
		// 4. Plain fields
		// --------------------------------------------------
		applyString(&b.ClientName, in.ClientName, strings.TrimSpace)
		applyString(&b.ClientEmail, in.ClientEmail, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
		applyString(&b.ClientPhone, in.ClientPhone, strings.TrimSpace)
		applyString(&b.ContentType, in.ContentType, nil)
		applyString(&b.ProjectDescription, in.ProjectDescription, nil)
		applyString(&b.PaymentMethod, in.PaymentMethod, nil)
		applyString(&b.AdminNotes, in.AdminNotes, nil)

		if err := tx.SaveBooking(ctx, b); err != nil {
			return err
		}

		updated, err = tx.GetBooking(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &updated.ID,
		Metadata: map[string]any{"changes": changes},
	})

	return updated, nil
}

// reschedule applies date and time changes after checking the new window is
// free. It reports whether the window actually moved.
func (uc *UpdateBooking) reschedule(
	ctx context.Context,
	tx bookingdomain.Repository,
	b *models.Booking,
	in UpdateBookingInput,
) (bool, error) {

	if in.SessionDate == nil && in.StartTime == nil && in.EndTime == nil {
		return false, nil
	}

	current := bookingdomain.IntervalOf(*b)
	date := time.Time(b.SessionDate)
	start, end := current.Start, current.End

	if in.SessionDate != nil {
		d, err := parseDate(*in.SessionDate)
		if err != nil {
			return false, err
		}
		date = d
	}
	if in.StartTime != nil {
		s, err := parseClock("startTime", *in.StartTime)
		if err != nil {
			return false, err
		}
		start = s
		end = start + (current.End - current.Start)
	}
	if in.EndTime != nil {
		e, err := parseClock("endTime", *in.EndTime)
		if err != nil {
			return false, err
		}
		end = e
	}

	interval, err := bookingdomain.NewInterval(start, end)
	if err != nil {
		return false, err
	}
	if sameDay(date, time.Time(b.SessionDate)) && interval == current {
		return false, nil
	}

	if bookingdomain.Status(b.Status).IsTerminal() {
		return false, httperr.InvalidState("booking_closed", "cannot reschedule a %s booking", b.Status)
	}

	free, err := bookingdomain.IsSlotFree(ctx, tx, date, interval, &b.ID)
	if err != nil {
		return false, err
	}
	if !free {
		return false, httperr.SlotUnavailable()
	}

	b.SessionDate = datatypes.Date(date)
	b.StartTime = toClock(interval.Start)
	b.EndTime = toClock(interval.End)
	b.Duration = schedule{Interval: interval}.hours()
	return true, nil
}

func applyString(dst *string, src *string, normalize func(string) string) {
	if src == nil {
		return
	}
	v := *src
	if normalize != nil {
		v = normalize(v)
	}
	*dst = v
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
