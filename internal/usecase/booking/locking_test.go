package booking

import (
	"context"
	"testing"

	"github.com/google/uuid"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// readLog records how bookings are read so tests can check that writes start
// from a locked row inside a transaction.
type readLog struct {
	bookingdomain.Repository
	inTx  bool
	reads *[]string
}

func newReadLog(repo bookingdomain.Repository) *readLog {
	return &readLog{Repository: repo, reads: &[]string{}}
}

func (r *readLog) record(kind string) {
	if r.inTx {
		kind = "tx:" + kind
	}
	*r.reads = append(*r.reads, kind)
}

func (r *readLog) Transaction(ctx context.Context, fn func(tx bookingdomain.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx bookingdomain.Repository) error {
		return fn(&readLog{Repository: tx, inTx: true, reads: r.reads})
	})
}

func (r *readLog) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.record("read")
	return r.Repository.GetBooking(ctx, id)
}

func (r *readLog) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	r.record("locked")
	return r.Repository.GetBookingForUpdate(ctx, id)
}

func (r *readLog) first(t *testing.T) string {
	t.Helper()
	if len(*r.reads) == 0 {
		t.Fatalf("booking was never read")
	}
	return (*r.reads)[0]
}

func TestChangeStatusReadsLockedRow(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	repo := newReadLog(f.repo)

	_, err := NewChangeStatus(repo, nil, f.studio).Execute(context.Background(), ChangeStatusInput{
		BookingID: b.ID,
		Target:    bookingdomain.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got := repo.first(t); got != "tx:locked" {
		t.Fatalf("status change should start from a locked read, reads=%v", *repo.reads)
	}
}

func TestUpdateBookingReadsLockedRow(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	repo := newReadLog(f.repo)

	_, err := NewUpdateBooking(repo, nil, f.studio).Execute(context.Background(), UpdateBookingInput{
		BookingID:  b.ID,
		AdminNotes: str("tripod"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := repo.first(t); got != "tx:locked" {
		t.Fatalf("update should start from a locked read, reads=%v", *repo.reads)
	}
}

func TestChangeStatusKeepsSettlementColumns(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))

	// A payment settled after the booking was created must survive a later
	// status change.
	if err := f.db.Model(&models.Booking{}).Where("id = ?", b.ID).Updates(map[string]any{
		"paid_amount":      dec("40"),
		"remaining_amount": dec("60"),
		"payment_status":   "partial",
	}).Error; err != nil {
		t.Fatalf("settle: %v", err)
	}

	confirmed, err := NewChangeStatus(f.repo, nil, f.studio).Execute(context.Background(), ChangeStatusInput{
		BookingID: b.ID,
		Target:    bookingdomain.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !confirmed.PaidAmount.Equal(dec("40")) || confirmed.PaymentStatus != "partial" {
		t.Fatalf("settlement overwritten: paid=%s status=%s", confirmed.PaidAmount, confirmed.PaymentStatus)
	}
}
