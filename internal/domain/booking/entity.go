package booking

import (
	"time"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time, reason string, by CancelledBy) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancellationReason = reason
	b.CancelledBy = string(by)
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func MarkNoShow(b *models.Booking) error {
	if err := CanMarkNoShow(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusNoShow)
	return nil
}

// Transition moves the booking to target through the matching action.
func Transition(b *models.Booking, target Status, now time.Time, reason string, by CancelledBy) error {
	if Status(b.Status) == target {
		return nil
	}
	switch target {
	case StatusConfirmed:
		return Confirm(b, now)
	case StatusCompleted:
		return Complete(b, now)
	case StatusCancelled:
		return Cancel(b, now, reason, by)
	case StatusNoShow:
		return MarkNoShow(b)
	}
	return httperr.InvalidState("invalid_state", "cannot move a booking back to %s", target)
}
