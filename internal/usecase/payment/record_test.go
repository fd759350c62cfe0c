package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/db"
	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/infra/repository"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setup(t *testing.T) (*Ledger, *repository.PaymentGormRepository, *models.Booking) {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	b := &models.Booking{
		ID:              uuid.New(),
		BookingNumber:   "CS-20261019-001",
		ClientName:      "Ana Perez",
		ClientEmail:     "ana@example.com",
		ClientPhone:     "809-555-0101",
		SessionDate:     datatypes.Date(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)),
		StartTime:       datatypes.NewTime(10, 0, 0, 0),
		EndTime:         datatypes.NewTime(14, 0, 0, 0),
		Duration:        dec("4"),
		ContentType:     "podcast",
		Status:          "confirmed",
		PaymentStatus:   "pending",
		BasePrice:       dec("200"),
		TotalPrice:      dec("200"),
		RemainingAmount: dec("200"),
		CreatedAt:       time.Now().UTC(),
	}
	if err := repository.NewBookingGormRepository(gdb).InsertBooking(context.Background(), b); err != nil {
		t.Fatalf("insert booking: %v", err)
	}

	repo := repository.NewPaymentGormRepository(gdb)
	return NewLedger(repo, nil), repo, b
}

func expectSettled(t *testing.T, b *models.Booking, paid, remaining string, status paymentdomain.Status) {
	t.Helper()
	if !b.PaidAmount.Equal(dec(paid)) || !b.RemainingAmount.Equal(dec(remaining)) || b.PaymentStatus != string(status) {
		t.Fatalf("expected paid=%s remaining=%s status=%s, got paid=%s remaining=%s status=%s",
			paid, remaining, status, b.PaidAmount, b.RemainingAmount, b.PaymentStatus)
	}
}

func TestLedgerSettlesBooking(t *testing.T) {
	ledger, repo, b := setup(t)
	ctx := context.Background()

	deposit, booking, err := ledger.Record(ctx, RecordPaymentInput{
		BookingID:     b.ID,
		Amount:        dec("60"),
		PaymentMethod: "transfer",
		PaymentType:   "deposit",
	})
	if err != nil {
		t.Fatalf("record deposit: %v", err)
	}
	if deposit.Status != "completed" {
		t.Fatalf("payments default to completed, got %s", deposit.Status)
	}
	expectSettled(t, booking, "60", "140", paymentdomain.StatusDepositPaid)
	if booking.PaymentMethod != "transfer" {
		t.Fatalf("booking should remember the last method, got %s", booking.PaymentMethod)
	}

	rest, booking, err := ledger.Record(ctx, RecordPaymentInput{
		BookingID:     b.ID,
		Amount:        dec("140"),
		PaymentMethod: "cash",
		PaymentType:   "full",
	})
	if err != nil {
		t.Fatalf("record rest: %v", err)
	}
	expectSettled(t, booking, "200", "0", paymentdomain.StatusPaid)

	booking, err = ledger.Delete(ctx, rest.ID, nil)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectSettled(t, booking, "60", "140", paymentdomain.StatusDepositPaid)

	_, booking, err = ledger.Record(ctx, RecordPaymentInput{
		BookingID:     b.ID,
		Amount:        dec("60"),
		PaymentMethod: "transfer",
		PaymentType:   "refund",
	})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	expectSettled(t, booking, "0", "200", paymentdomain.StatusRefunded)

	stored, err := repo.GetBookingForUpdate(ctx, b.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	expectSettled(t, stored, "0", "200", paymentdomain.StatusRefunded)
}

func TestLedgerIgnoresIncompletePayments(t *testing.T) {
	ledger, _, b := setup(t)
	ctx := context.Background()

	p, booking, err := ledger.Record(ctx, RecordPaymentInput{
		BookingID:     b.ID,
		Amount:        dec("200"),
		PaymentMethod: "azul",
		Status:        "pending",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	expectSettled(t, booking, "0", "200", paymentdomain.StatusPending)

	completed := "completed"
	_, booking, err = ledger.Update(ctx, UpdatePaymentInput{PaymentID: p.ID, Status: &completed})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	expectSettled(t, booking, "200", "0", paymentdomain.StatusPaid)

	half := dec("100")
	_, booking, err = ledger.Update(ctx, UpdatePaymentInput{PaymentID: p.ID, Amount: &half})
	if err != nil {
		t.Fatalf("update amount: %v", err)
	}
	expectSettled(t, booking, "100", "100", paymentdomain.StatusDepositPaid)
}

func TestLedgerValidation(t *testing.T) {
	ledger, _, b := setup(t)
	ctx := context.Background()

	_, _, err := ledger.Record(ctx, RecordPaymentInput{BookingID: b.ID, Amount: dec("0"), PaymentMethod: "cash"})
	if !httperr.IsBusiness(err, "invalid_amount") {
		t.Fatalf("expected invalid_amount, got %v", err)
	}

	_, _, err = ledger.Record(ctx, RecordPaymentInput{BookingID: b.ID, Amount: dec("10"), PaymentMethod: "barter"})
	if !httperr.IsBusiness(err, "invalid_payment_method") {
		t.Fatalf("expected invalid_payment_method, got %v", err)
	}

	_, _, err = ledger.Record(ctx, RecordPaymentInput{BookingID: uuid.New(), Amount: dec("10"), PaymentMethod: "cash"})
	if !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("expected booking_not_found, got %v", err)
	}

	_, err = ledger.Delete(ctx, uuid.New(), nil)
	if !httperr.IsBusiness(err, "payment_not_found") {
		t.Fatalf("expected payment_not_found, got %v", err)
	}
}

func TestPaymentQueries(t *testing.T) {
	ledger, repo, b := setup(t)
	ctx := context.Background()

	for _, in := range []RecordPaymentInput{
		{BookingID: b.ID, Amount: dec("50"), PaymentMethod: "cash"},
		{BookingID: b.ID, Amount: dec("70"), PaymentMethod: "card"},
		{BookingID: b.ID, Amount: dec("20"), PaymentMethod: "card", PaymentType: "refund"},
		{BookingID: b.ID, Amount: dec("30"), PaymentMethod: "cash", Status: "pending"},
	} {
		if _, _, err := ledger.Record(ctx, in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	list, total, err := NewListPayments(repo).Execute(ctx, paymentdomain.ListFilter{Method: "card"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 card payments, got %d", total)
	}

	forBooking, err := NewListPayments(repo).ForBooking(ctx, b.ID)
	if err != nil || len(forBooking) != 4 {
		t.Fatalf("expected 4 payments for booking, got %d (%v)", len(forBooking), err)
	}

	stats, err := NewPaymentStats(repo, time.UTC).Execute(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !stats.TotalReceived.Equal(dec("120")) || !stats.TotalRefunded.Equal(dec("20")) {
		t.Fatalf("unexpected totals received=%s refunded=%s", stats.TotalReceived, stats.TotalRefunded)
	}
	if stats.PendingCount != 1 {
		t.Fatalf("expected 1 pending payment, got %d", stats.PendingCount)
	}
}
