package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
)

func str(s string) *string { return &s }

func TestUpdateBookingReschedule(t *testing.T) {
	f := newFixture(t)
	uc := NewUpdateBooking(f.repo, nil, f.studio)
	ctx := context.Background()

	a := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	f.create(t, slot("2026-10-20", "14:00", "15:00"))

	_, err := uc.Execute(ctx, UpdateBookingInput{BookingID: a.ID, StartTime: str("13:30")})
	expectKind(t, err, httperr.KindSlotUnavailable)

	moved, err := uc.Execute(ctx, UpdateBookingInput{BookingID: a.ID, StartTime: str("15:00")})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if time.Duration(moved.EndTime) != 17*time.Hour {
		t.Fatalf("moving the start keeps the length, got end %s", moved.EndTime)
	}
	if !moved.TotalPrice.Equal(dec("100")) {
		t.Fatalf("same length keeps the price, got %s", moved.TotalPrice)
	}

	longer, err := uc.Execute(ctx, UpdateBookingInput{BookingID: a.ID, EndTime: str("18:00")})
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	if !longer.Duration.Equal(dec("3")) || !longer.BasePrice.Equal(dec("150")) || !longer.RemainingAmount.Equal(dec("150")) {
		t.Fatalf("extension should reprice: duration=%s base=%s remaining=%s",
			longer.Duration, longer.BasePrice, longer.RemainingAmount)
	}

	// excluding itself lets a booking shrink inside its own window
	if _, err := uc.Execute(ctx, UpdateBookingInput{BookingID: a.ID, StartTime: str("16:00"), EndTime: str("18:00")}); err != nil {
		t.Fatalf("shrink: %v", err)
	}
}

func TestUpdateBookingServiceKeepsAgreedBase(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, "120", 3, true)

	in := slot("2026-10-20", "10:00", "")
	in.ServiceTypeID = &svc.ID
	b := f.create(t, in)

	updated, err := NewUpdateBooking(f.repo, nil, f.studio).Execute(context.Background(), UpdateBookingInput{
		BookingID:   b.ID,
		SessionDate: str("2026-10-22"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.BasePrice.Equal(dec("120")) {
		t.Fatalf("service base should not change, got %s", updated.BasePrice)
	}
}

func TestUpdateBookingEquipmentReprices(t *testing.T) {
	f := newFixture(t)
	light := f.light(t, true)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))

	sel := selection(light.ID, 3, "")
	updated, err := NewUpdateBooking(f.repo, nil, f.studio).Execute(context.Background(), UpdateBookingInput{
		BookingID: b.ID,
		Equipment: &sel,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.EquipmentCost.Equal(dec("45")) || !updated.TotalPrice.Equal(dec("145")) {
		t.Fatalf("unexpected equipment=%s total=%s", updated.EquipmentCost, updated.TotalPrice)
	}
	if len(updated.Equipment) != 1 || updated.Equipment[0].Quantity != 3 {
		t.Fatalf("lines should be replaced, got %+v", updated.Equipment)
	}

	none := []bookingdomain.EquipmentSelection{}
	cleared, err := NewUpdateBooking(f.repo, nil, f.studio).Execute(context.Background(), UpdateBookingInput{
		BookingID: b.ID,
		Equipment: &none,
	})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(cleared.Equipment) != 0 || !cleared.TotalPrice.Equal(dec("100")) {
		t.Fatalf("equipment should be cleared, total=%s lines=%d", cleared.TotalPrice, len(cleared.Equipment))
	}
}

func TestUpdateBookingStatusAndFields(t *testing.T) {
	f := newFixture(t)
	uc := NewUpdateBooking(f.repo, nil, f.studio)
	ctx := context.Background()
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))

	confirmed, err := uc.Execute(ctx, UpdateBookingInput{
		BookingID:  b.ID,
		Status:     str("confirmed"),
		AdminNotes: str("bring extra cables"),
		ClientName: str("  Ana P.  "),
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != "confirmed" || confirmed.ConfirmedAt == nil {
		t.Fatalf("expected confirmation, got %+v", confirmed)
	}
	if confirmed.AdminNotes != "bring extra cables" || confirmed.ClientName != "Ana P." {
		t.Fatalf("fields not applied: %+v", confirmed)
	}

	_, err = uc.Execute(ctx, UpdateBookingInput{BookingID: b.ID, Status: str("pending")})
	expectKind(t, err, httperr.KindInvalidState)

	_, err = uc.Execute(ctx, UpdateBookingInput{BookingID: b.ID, Status: str("archived")})
	expectCode(t, err, "invalid_status")

	_, err = uc.Execute(ctx, UpdateBookingInput{BookingID: uuid.New(), AdminNotes: str("x")})
	expectKind(t, err, httperr.KindNotFound)
}

func TestUpdateClosedBookingCannotMove(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))

	if _, err := NewChangeStatus(f.repo, nil, f.studio).Execute(context.Background(), ChangeStatusInput{
		BookingID: b.ID,
		Target:    bookingdomain.StatusCancelled,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := NewUpdateBooking(f.repo, nil, f.studio).Execute(context.Background(), UpdateBookingInput{
		BookingID:   b.ID,
		SessionDate: str("2026-10-21"),
	})
	expectCode(t, err, "booking_closed")
}

func TestChangeStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	uc := NewChangeStatus(f.repo, nil, f.studio)
	ctx := context.Background()
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))

	confirmed, err := uc.Execute(ctx, ChangeStatusInput{BookingID: b.ID, Target: bookingdomain.StatusConfirmed})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.ConfirmedAt == nil {
		t.Fatalf("confirmedAt should be set")
	}

	cancelled, err := uc.Execute(ctx, ChangeStatusInput{
		BookingID:   b.ID,
		Target:      bookingdomain.StatusCancelled,
		Reason:      "client request",
		CancelledBy: bookingdomain.CancelledByClient,
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.CancelledAt == nil || cancelled.CancellationReason != "client request" || cancelled.CancelledBy != "client" {
		t.Fatalf("unexpected cancellation %+v", cancelled)
	}

	_, err = uc.Execute(ctx, ChangeStatusInput{BookingID: b.ID, Target: bookingdomain.StatusCancelled})
	expectCode(t, err, "already_cancelled")

	_, err = uc.Execute(ctx, ChangeStatusInput{BookingID: b.ID, Target: bookingdomain.StatusCompleted})
	expectKind(t, err, httperr.KindInvalidState)

	reloaded, err := NewGetBooking(f.repo).Execute(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.Status != "cancelled" {
		t.Fatalf("status should persist, got %s", reloaded.Status)
	}
}
