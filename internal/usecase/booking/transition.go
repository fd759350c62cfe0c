package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/domain"
	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type ChangeStatusInput struct {
	BookingID   uuid.UUID
	Target      bookingdomain.Status
	Reason      string
	CancelledBy bookingdomain.CancelledBy
	ActorID     *uuid.UUID
}

type ChangeStatus struct {
	repo   bookingdomain.Repository
	audit  *audit.Dispatcher
	studio Studio
}

func NewChangeStatus(
	repo bookingdomain.Repository,
	audit *audit.Dispatcher,
	studio Studio,
) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  audit,
		studio: studio,
	}
}

// Execute drives confirm, cancel, complete and no-show through the state machine.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Booking, error) {

	var b *models.Booking
	err := uc.repo.Transaction(ctx, func(tx bookingdomain.Repository) error {
		var err error
		b, err = tx.GetBookingForUpdate(ctx, in.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return httperr.ErrNotFound("booking_not_found")
			}
			return err
		}

		now := uc.studio.now()
		by := in.CancelledBy
		if by == "" {
			by = bookingdomain.CancelledByAdmin
		}

		switch in.Target {
		case bookingdomain.StatusConfirmed:
			err = bookingdomain.Confirm(b, now)
		case bookingdomain.StatusCancelled:
			err = bookingdomain.Cancel(b, now, in.Reason, by)
		case bookingdomain.StatusCompleted:
			err = bookingdomain.Complete(b, now)
		case bookingdomain.StatusNoShow:
			err = bookingdomain.MarkNoShow(b)
		default:
			err = httperr.Validation("invalid_status", "unsupported transition to %q", in.Target)
		}
		if err != nil {
			return err
		}
		return tx.SaveBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "booking_" + string(in.Target),
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"reason": in.Reason},
	})

	return b, nil
}
