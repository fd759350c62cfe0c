package dto

import (
	"time"

	"github.com/google/uuid"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type BookingEquipmentDTO struct {
	ID             uuid.UUID `json:"id"`
	EquipmentID    uuid.UUID `json:"equipmentId"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Quantity       int       `json:"quantity"`
	SelectedOption string    `json:"selectedOption"`
	UnitCost       string    `json:"unitCost"`
	Cost           string    `json:"cost"`
}

type BookingDTO struct {
	ID            uuid.UUID `json:"id"`
	BookingNumber string    `json:"bookingNumber"`

	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`

	SessionDate string `json:"sessionDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Duration    string `json:"duration"`

	ServiceTypeID   *uuid.UUID `json:"serviceTypeId"`
	ServiceTypeName string     `json:"serviceTypeName,omitempty"`

	ContentType        string `json:"contentType"`
	ProjectDescription string `json:"projectDescription"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`

	BasePrice       string `json:"basePrice"`
	EquipmentCost   string `json:"equipmentCost"`
	TotalPrice      string `json:"totalPrice"`
	DepositAmount   string `json:"depositAmount"`
	PaidAmount      string `json:"paidAmount"`
	RemainingAmount string `json:"remainingAmount"`
	PaymentMethod   string `json:"paymentMethod"`

	ClientNotes string `json:"clientNotes"`
	AdminNotes  string `json:"adminNotes,omitempty"`

	CancelledAt        *time.Time `json:"cancelledAt"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
	CancelledBy        string     `json:"cancelledBy,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmedAt"`
	CompletedAt        *time.Time `json:"completedAt"`

	Equipment []BookingEquipmentDTO `json:"equipment"`
	Payments  []PaymentDTO          `json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewBookingDTO(b *models.Booking) BookingDTO {
	out := BookingDTO{
		ID:                 b.ID,
		BookingNumber:      b.BookingNumber,
		ClientName:         b.ClientName,
		ClientEmail:        b.ClientEmail,
		ClientPhone:        b.ClientPhone,
		SessionDate:        Date(b.SessionDate),
		StartTime:          Clock(b.StartTime),
		EndTime:            Clock(b.EndTime),
		Duration:           Money(b.Duration),
		ServiceTypeID:      b.ServiceTypeID,
		ContentType:        b.ContentType,
		ProjectDescription: b.ProjectDescription,
		Status:             b.Status,
		PaymentStatus:      b.PaymentStatus,
		BasePrice:          Money(b.BasePrice),
		EquipmentCost:      Money(b.EquipmentCost),
		TotalPrice:         Money(b.TotalPrice),
		DepositAmount:      Money(b.DepositAmount),
		PaidAmount:         Money(b.PaidAmount),
		RemainingAmount:    Money(b.RemainingAmount),
		PaymentMethod:      b.PaymentMethod,
		ClientNotes:        b.ClientNotes,
		AdminNotes:         b.AdminNotes,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		ConfirmedAt:        b.ConfirmedAt,
		CompletedAt:        b.CompletedAt,
		Equipment:          make([]BookingEquipmentDTO, 0, len(b.Equipment)),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if b.ServiceType != nil {
		out.ServiceTypeName = b.ServiceType.Name
	}
	for _, l := range b.Equipment {
		out.Equipment = append(out.Equipment, BookingEquipmentDTO{
			ID:             l.ID,
			EquipmentID:    l.EquipmentID,
			Name:           l.Equipment.Name,
			Category:       l.Equipment.Category,
			Quantity:       l.Quantity,
			SelectedOption: l.SelectedOption,
			UnitCost:       Money(l.UnitCost),
			Cost:           Money(l.Cost),
		})
	}
	for i := range b.Payments {
		out.Payments = append(out.Payments, NewPaymentDTO(&b.Payments[i]))
	}
	return out
}

// NewPublicBookingDTO hides the fields only staff should see.
func NewPublicBookingDTO(b *models.Booking) BookingDTO {
	out := NewBookingDTO(b)
	out.AdminNotes = ""
	out.Payments = nil
	return out
}

func NewBookingDTOs(bookings []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingDTO(&bookings[i]))
	}
	return out
}

// CalendarEntryDTO is what the public calendar exposes: no client data.
type CalendarEntryDTO struct {
	ID          uuid.UUID `json:"id"`
	SessionDate string    `json:"sessionDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
}

func NewCalendarEntries(bookings []models.Booking) []CalendarEntryDTO {
	out := make([]CalendarEntryDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, CalendarEntryDTO{
			ID:          b.ID,
			SessionDate: Date(b.SessionDate),
			StartTime:   Clock(b.StartTime),
			EndTime:     Clock(b.EndTime),
			Status:      b.Status,
		})
	}
	return out
}

type QuoteLineDTO struct {
	EquipmentID    uuid.UUID `json:"equipmentId"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	SelectedOption string    `json:"selectedOption,omitempty"`
	UnitCost       string    `json:"unitCost"`
	Cost           string    `json:"cost"`
}

type QuoteDTO struct {
	Duration        string         `json:"duration"`
	BasePrice       string         `json:"basePrice"`
	EquipmentCost   string         `json:"equipmentCost"`
	TotalPrice      string         `json:"totalPrice"`
	DepositAmount   string         `json:"depositAmount"`
	RemainingAmount string         `json:"remainingAmount"`
	Equipment       []QuoteLineDTO `json:"equipment"`
}

func NewQuoteDTO(q bookingdomain.Quote) QuoteDTO {
	out := QuoteDTO{
		Duration:        Money(q.DurationHours),
		BasePrice:       Money(q.BasePrice),
		EquipmentCost:   Money(q.EquipmentCost),
		TotalPrice:      Money(q.TotalPrice),
		DepositAmount:   Money(q.DepositAmount),
		RemainingAmount: Money(q.RemainingAmount),
		Equipment:       make([]QuoteLineDTO, 0, len(q.Lines)),
	}
	for _, l := range q.Lines {
		out.Equipment = append(out.Equipment, QuoteLineDTO{
			EquipmentID:    l.EquipmentID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			SelectedOption: l.SelectedOption,
			UnitCost:       Money(l.UnitCost),
			Cost:           Money(l.Cost),
		})
	}
	return out
}

type DashboardDTO struct {
	TotalBookings     int64        `json:"totalBookings"`
	ThisMonthBookings int64        `json:"thisMonthBookings"`
	PendingBookings   int64        `json:"pendingBookings"`
	MonthlyRevenue    string       `json:"monthlyRevenue"`
	UpcomingBookings  []BookingDTO `json:"upcomingBookings"`
}

func NewDashboardDTO(s bookingdomain.DashboardStats) DashboardDTO {
	return DashboardDTO{
		TotalBookings:     s.TotalBookings,
		ThisMonthBookings: s.ThisMonthBookings,
		PendingBookings:   s.PendingBookings,
		MonthlyRevenue:    Money(s.MonthlyRevenue),
		UpcomingBookings:  NewBookingDTOs(s.Upcoming),
	}
}
