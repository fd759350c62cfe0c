package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type ListFilter struct {
	BookingID *uuid.UUID
	Method    string
	Status    string
	From      *time.Time
	To        *time.Time
	Page      int
	Limit     int
}

type MethodTotal struct {
	Method string          `json:"method"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

type Stats struct {
	TotalReceived decimal.Decimal
	TotalRefunded decimal.Decimal
	MonthReceived decimal.Decimal
	PendingCount  int64
	ByMethod      []MethodTotal
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Booking --------
	GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	SaveSettlement(ctx context.Context, b *models.Booking) error

	// -------- Ledger --------
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	SavePayment(ctx context.Context, p *models.Payment) error
	DeletePayment(ctx context.Context, id uuid.UUID) error
	ListPaymentsForBooking(ctx context.Context, bookingID uuid.UUID) ([]models.Payment, error)
	ListPayments(ctx context.Context, f ListFilter) ([]models.Payment, int64, error)
	PaymentStats(ctx context.Context, monthStart, monthEnd time.Time) (Stats, error)
}
