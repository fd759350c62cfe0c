package dto

import (
	"time"

	"github.com/google/uuid"

	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type PaymentDTO struct {
	ID            uuid.UUID  `json:"id"`
	BookingID     uuid.UUID  `json:"bookingId"`
	BookingNumber string     `json:"bookingNumber,omitempty"`
	ClientName    string     `json:"clientName,omitempty"`
	Amount        string     `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentType   string     `json:"paymentType"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transactionId"`
	Reference     string     `json:"reference"`
	Notes         string     `json:"notes"`
	ProcessedBy   *uuid.UUID `json:"processedBy"`
	PaymentDate   time.Time  `json:"paymentDate"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func NewPaymentDTO(p *models.Payment) PaymentDTO {
	out := PaymentDTO{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        Money(p.Amount),
		PaymentMethod: p.PaymentMethod,
		PaymentType:   p.PaymentType,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		Reference:     p.Reference,
		Notes:         p.Notes,
		ProcessedBy:   p.ProcessedBy,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
	if p.Booking != nil {
		out.BookingNumber = p.Booking.BookingNumber
		out.ClientName = p.Booking.ClientName
	}
	return out
}

func NewPaymentDTOs(payments []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(payments))
	for i := range payments {
		out = append(out, NewPaymentDTO(&payments[i]))
	}
	return out
}

// SettlementDTO is the booking balance returned after a ledger change.
type SettlementDTO struct {
	BookingID       uuid.UUID `json:"bookingId"`
	TotalPrice      string    `json:"totalPrice"`
	PaidAmount      string    `json:"paidAmount"`
	RemainingAmount string    `json:"remainingAmount"`
	PaymentStatus   string    `json:"paymentStatus"`
}

func NewSettlementDTO(b *models.Booking) SettlementDTO {
	return SettlementDTO{
		BookingID:       b.ID,
		TotalPrice:      Money(b.TotalPrice),
		PaidAmount:      Money(b.PaidAmount),
		RemainingAmount: Money(b.RemainingAmount),
		PaymentStatus:   b.PaymentStatus,
	}
}

type MethodTotalDTO struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
	Total  string `json:"total"`
}

type PaymentStatsDTO struct {
	TotalReceived string           `json:"totalReceived"`
	TotalRefunded string           `json:"totalRefunded"`
	NetReceived   string           `json:"netReceived"`
	MonthReceived string           `json:"monthReceived"`
	PendingCount  int64            `json:"pendingCount"`
	ByMethod      []MethodTotalDTO `json:"byMethod"`
}

func NewPaymentStatsDTO(s paymentdomain.Stats) PaymentStatsDTO {
	out := PaymentStatsDTO{
		TotalReceived: Money(s.TotalReceived),
		TotalRefunded: Money(s.TotalRefunded),
		NetReceived:   Money(s.TotalReceived.Sub(s.TotalRefunded)),
		MonthReceived: Money(s.MonthReceived),
		PendingCount:  s.PendingCount,
		ByMethod:      make([]MethodTotalDTO, 0, len(s.ByMethod)),
	}
	for _, m := range s.ByMethod {
		out.ByMethod = append(out.ByMethod, MethodTotalDTO{Method: m.Method, Count: m.Count, Total: Money(m.Total)})
	}
	return out
}
