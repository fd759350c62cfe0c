package booking

import "github.com/BruksfildServices01/studio-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

type CancelledBy string

const (
	CancelledByClient CancelledBy = "client"
	CancelledByAdmin  CancelledBy = "admin"
)

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.InvalidState("invalid_state", "cannot confirm a %s booking", current)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.InvalidState("invalid_state", "cannot complete a %s booking", current)
	}
	return nil
}

func CanCancel(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed:
		return nil
	case StatusCancelled:
		return httperr.InvalidState("already_cancelled", "booking is already cancelled")
	}
	return httperr.InvalidState("invalid_state", "cannot cancel a %s booking", current)
}

func CanMarkNoShow(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.InvalidState("invalid_state", "cannot mark a %s booking as no-show", current)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
