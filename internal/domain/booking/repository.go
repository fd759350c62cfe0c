package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type ListFilter struct {
	Status        string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
	ClientEmail   string
	Page          int
	Limit         int
}

type DashboardStats struct {
	TotalBookings     int64
	ThisMonthBookings int64
	PendingBookings   int64
	MonthlyRevenue    decimal.Decimal
	Upcoming          []models.Booking
}

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Configuration --------
	FindBusinessConfig(ctx context.Context) (*models.BusinessConfig, error)

	// LockBookingWrites takes the configuration row lock that serializes
	// booking writes and returns the locked row.
	LockBookingWrites(ctx context.Context) (*models.BusinessConfig, error)

	// -------- Catalog --------
	FindActiveServiceType(ctx context.Context, id uuid.UUID) (*models.ServiceType, error)
	FindServiceType(ctx context.Context, id uuid.UUID) (*models.ServiceType, error)
	FindActiveEquipmentByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Equipment, error)
	FindEquipmentByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Equipment, error)

	// -------- Availability / numbering --------
	FindBookingsByDateExcludingCancelled(ctx context.Context, date time.Time, exclude *uuid.UUID) ([]models.Booking, error)
	CountBookingsCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)

	// -------- Booking --------
	InsertBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	// GetBookingForUpdate reads the booking holding its row lock until the
	// surrounding transaction ends.
	GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetBookingByNumber(ctx context.Context, number string) (*models.Booking, error)
	SaveBooking(ctx context.Context, b *models.Booking) error
	ReplaceBookingEquipment(ctx context.Context, bookingID uuid.UUID, lines []models.BookingEquipment) error
	ListPaymentsForBooking(ctx context.Context, bookingID uuid.UUID) ([]models.Payment, error)

	// -------- Queries --------
	ListCalendar(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, int64, error)
	DashboardStats(ctx context.Context, today, monthStart, monthEnd time.Time, upcomingLimit int) (DashboardStats, error)
}
