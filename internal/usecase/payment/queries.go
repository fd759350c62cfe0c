package payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

type ListPayments struct {
	repo paymentdomain.Repository
}

func NewListPayments(repo paymentdomain.Repository) *ListPayments {
	return &ListPayments{repo: repo}
}

func (uc *ListPayments) Execute(ctx context.Context, f paymentdomain.ListFilter) ([]models.Payment, int64, error) {
	return uc.repo.ListPayments(ctx, f)
}

func (uc *ListPayments) ForBooking(ctx context.Context, bookingID uuid.UUID) ([]models.Payment, error) {
	return uc.repo.ListPaymentsForBooking(ctx, bookingID)
}

type PaymentStats struct {
	repo paymentdomain.Repository
	loc  *time.Location
}

func NewPaymentStats(repo paymentdomain.Repository, loc *time.Location) *PaymentStats {
	if loc == nil {
		loc = time.UTC
	}
	return &PaymentStats{repo: repo, loc: loc}
}

// Execute reports ledger totals; the month window follows the studio calendar.
func (uc *PaymentStats) Execute(ctx context.Context) (paymentdomain.Stats, error) {
	start, end := timezone.MonthBounds(time.Now().In(uc.loc))
	return uc.repo.PaymentStats(ctx, start, end)
}
