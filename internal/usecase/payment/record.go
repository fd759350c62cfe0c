package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/domain"
	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RecordPaymentInput struct {
	BookingID     uuid.UUID
	Amount        decimal.Decimal
	PaymentMethod string
	PaymentType   string
	Status        string
	TransactionID string
	Reference     string
	Notes         string
	PaymentDate   *time.Time
	ProcessedBy   *uuid.UUID
}

type UpdatePaymentInput struct {
	PaymentID     uuid.UUID
	Amount        *decimal.Decimal
	PaymentMethod *string
	PaymentType   *string
	Status        *string
	TransactionID *string
	Reference     *string
	Notes         *string
	PaymentDate   *time.Time
	ActorID       *uuid.UUID
}

// ======================================================
// USE CASE
// ======================================================

// Ledger records, edits and removes payments. Every mutation re-settles the
// booking's paid and remaining amounts in the same transaction.
type Ledger struct {
	repo  paymentdomain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewLedger(repo paymentdomain.Repository, audit *audit.Dispatcher) *Ledger {
	return &Ledger{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Ledger) Record(ctx context.Context, in RecordPaymentInput) (*models.Payment, *models.Booking, error) {
	if err := paymentdomain.ValidateAmount(in.Amount); err != nil {
		return nil, nil, err
	}
	if err := paymentdomain.ValidateMethod(in.PaymentMethod); err != nil {
		return nil, nil, err
	}
	if in.PaymentType == "" {
		in.PaymentType = string(paymentdomain.TypePartial)
	}
	if err := paymentdomain.ValidateType(in.PaymentType); err != nil {
		return nil, nil, err
	}
	if in.Status == "" {
		in.Status = string(paymentdomain.RecordCompleted)
	}
	if err := paymentdomain.ValidateRecordStatus(in.Status); err != nil {
		return nil, nil, err
	}

	p := &models.Payment{
		BookingID:     in.BookingID,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		PaymentType:   in.PaymentType,
		Status:        in.Status,
		TransactionID: in.TransactionID,
		Reference:     in.Reference,
		Notes:         in.Notes,
		ProcessedBy:   in.ProcessedBy,
		PaymentDate:   uc.now().UTC(),
	}
	if in.PaymentDate != nil {
		p.PaymentDate = in.PaymentDate.UTC()
	}

	var booking *models.Booking
	err := uc.repo.Transaction(ctx, func(tx paymentdomain.Repository) error {
		b, err := lockBooking(ctx, tx, in.BookingID)
		if err != nil {
			return err
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return err
		}
		b.PaymentMethod = p.PaymentMethod
		booking, err = settle(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ProcessedBy,
		Action:   "payment_recorded",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"bookingId": in.BookingID,
			"amount":    p.Amount.StringFixed(2),
			"type":      p.PaymentType,
		},
	})
	return p, booking, nil
}

func (uc *Ledger) Update(ctx context.Context, in UpdatePaymentInput) (*models.Payment, *models.Booking, error) {
	var (
		p       *models.Payment
		booking *models.Booking
	)

	err := uc.repo.Transaction(ctx, func(tx paymentdomain.Repository) error {
		var err error
		p, err = tx.GetPayment(ctx, in.PaymentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("payment_not_found")
			}
			return err
		}
		b, err := lockBooking(ctx, tx, p.BookingID)
		if err != nil {
			return err
		}

		if in.Amount != nil {
			if err := paymentdomain.ValidateAmount(*in.Amount); err != nil {
				return err
			}
			p.Amount = *in.Amount
		}
		if in.PaymentMethod != nil {
			if err := paymentdomain.ValidateMethod(*in.PaymentMethod); err != nil {
				return err
			}
			p.PaymentMethod = *in.PaymentMethod
		}
		if in.PaymentType != nil {
			if err := paymentdomain.ValidateType(*in.PaymentType); err != nil {
				return err
			}
			p.PaymentType = *in.PaymentType
		}
		if in.Status != nil {
			if err := paymentdomain.ValidateRecordStatus(*in.Status); err != nil {
				return err
			}
			p.Status = *in.Status
		}
		if in.TransactionID != nil {
			p.TransactionID = *in.TransactionID
		}
		if in.Reference != nil {
			p.Reference = *in.Reference
		}
		if in.Notes != nil {
			p.Notes = *in.Notes
		}
		if in.PaymentDate != nil {
			p.PaymentDate = in.PaymentDate.UTC()
		}

		if err := tx.SavePayment(ctx, p); err != nil {
			return err
		}
		booking, err = settle(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "payment_updated",
		Entity:   "payment",
		EntityID: &p.ID,
	})
	return p, booking, nil
}

func (uc *Ledger) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (*models.Booking, error) {
	var booking *models.Booking

	err := uc.repo.Transaction(ctx, func(tx paymentdomain.Repository) error {
		p, err := tx.GetPayment(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("payment_not_found")
			}
			return err
		}
		b, err := lockBooking(ctx, tx, p.BookingID)
		if err != nil {
			return err
		}
		if err := tx.DeletePayment(ctx, id); err != nil {
			return err
		}
		booking, err = settle(ctx, tx, b)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "payment_deleted",
		Entity:   "payment",
		EntityID: &id,
		Metadata: map[string]any{"bookingId": booking.ID},
	})
	return booking, nil
}

func lockBooking(ctx context.Context, tx paymentdomain.Repository, id uuid.UUID) (*models.Booking, error) {
	b, err := tx.GetBookingForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}
	return b, nil
}

func settle(ctx context.Context, tx paymentdomain.Repository, b *models.Booking) (*models.Booking, error) {
	records, err := tx.ListPaymentsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	paymentdomain.Apply(b, paymentdomain.Settle(b.TotalPrice, records))
	if err := tx.SaveSettlement(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
