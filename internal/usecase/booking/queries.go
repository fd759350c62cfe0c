package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-booking/internal/domain"
	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

const (
	maxCalendarDays = 92
	upcomingLimit   = 10
)

// ======================================================
// Get / lookup
// ======================================================

type GetBooking struct {
	repo bookingdomain.Repository
}

func NewGetBooking(repo bookingdomain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

func (uc *GetBooking) Execute(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := uc.repo.GetBooking(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return b, err
}

type LookupBooking struct {
	repo bookingdomain.Repository
}

func NewLookupBooking(repo bookingdomain.Repository) *LookupBooking {
	return &LookupBooking{repo: repo}
}

// Execute finds a booking by number for its client. A wrong email is
// indistinguishable from an unknown number.
func (uc *LookupBooking) Execute(ctx context.Context, number, email string) (*models.Booking, error) {
	b, err := uc.repo.GetBookingByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(email), b.ClientEmail) {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return b, nil
}

// ======================================================
// Lists
// ======================================================

type ListBookingsInput struct {
	Status        string
	PaymentStatus string
	StartDate     string
	EndDate       string
	ClientEmail   string
	Page          int
	Limit         int
}

type ListBookings struct {
	repo bookingdomain.Repository
}

func NewListBookings(repo bookingdomain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(ctx context.Context, in ListBookingsInput) ([]models.Booking, int64, error) {
	f := bookingdomain.ListFilter{
		Status:        in.Status,
		PaymentStatus: in.PaymentStatus,
		ClientEmail:   strings.TrimSpace(in.ClientEmail),
		Page:          in.Page,
		Limit:         in.Limit,
	}
	if in.Status != "" {
		if _, ok := bookingdomain.ParseStatus(in.Status); !ok {
			return nil, 0, httperr.Validation("invalid_status", "unknown status %q", in.Status)
		}
	}
	if in.StartDate != "" {
		d, err := parseDate(in.StartDate)
		if err != nil {
			return nil, 0, err
		}
		f.From = &d
	}
	if in.EndDate != "" {
		d, err := parseDate(in.EndDate)
		if err != nil {
			return nil, 0, err
		}
		f.To = &d
	}
	return uc.repo.ListBookings(ctx, f)
}

type ListCalendar struct {
	repo bookingdomain.Repository
}

func NewListCalendar(repo bookingdomain.Repository) *ListCalendar {
	return &ListCalendar{repo: repo}
}

// Execute returns the non-cancelled bookings between two dates, inclusive.
func (uc *ListCalendar) Execute(ctx context.Context, startDate, endDate string) ([]models.Booking, error) {
	from, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, httperr.Validation("invalid_range", "endDate must not be before startDate")
	}
	if to.Sub(from).Hours() > maxCalendarDays*24 {
		return nil, httperr.Validation("invalid_range", "range cannot exceed %d days", maxCalendarDays)
	}
	return uc.repo.ListCalendar(ctx, from, to)
}

// ======================================================
// Dashboard
// ======================================================

type DashboardStats struct {
	repo   bookingdomain.Repository
	studio Studio
}

func NewDashboardStats(repo bookingdomain.Repository, studio Studio) *DashboardStats {
	return &DashboardStats{repo: repo, studio: studio}
}

func (uc *DashboardStats) Execute(ctx context.Context) (bookingdomain.DashboardStats, error) {
	now := uc.studio.now()
	today := timezone.CalendarDate(now)
	monthStart, monthEnd := timezone.MonthBounds(today)
	return uc.repo.DashboardStats(ctx, today, monthStart, monthEnd, upcomingLimit)
}
