package payment

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// ===============================
// Payment record enumerations
// ===============================

type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCard     Method = "card"
	MethodAzul     Method = "azul"
	MethodOther    Method = "other"
)

type Type string

const (
	TypeDeposit Type = "deposit"
	TypePartial Type = "partial"
	TypeFull    Type = "full"
	TypeRefund  Type = "refund"
)

type RecordStatus string

const (
	RecordPending   RecordStatus = "pending"
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
	RecordRefunded  RecordStatus = "refunded"
)

// ===============================
// Booking payment status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusDepositPaid Status = "deposit_paid"
	StatusPaid        Status = "paid"
	StatusRefunded    Status = "refunded"
)

func InitialStatus() Status {
	return StatusPending
}

func ValidateMethod(m string) error {
	switch Method(m) {
	case MethodCash, MethodTransfer, MethodCard, MethodAzul, MethodOther:
		return nil
	}
	return httperr.Validation("invalid_payment_method", "unknown payment method %q", m)
}

func ValidateType(t string) error {
	switch Type(t) {
	case TypeDeposit, TypePartial, TypeFull, TypeRefund:
		return nil
	}
	return httperr.Validation("invalid_payment_type", "unknown payment type %q", t)
}

func ValidateRecordStatus(s string) error {
	switch RecordStatus(s) {
	case RecordPending, RecordCompleted, RecordFailed, RecordRefunded:
		return nil
	}
	return httperr.Validation("invalid_payment_status", "unknown payment status %q", s)
}

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return httperr.Validation("invalid_amount", "amount must be greater than zero")
	}
	return nil
}

// ===============================
// Settlement
// ===============================

type Settlement struct {
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	Status    Status
}

// Settle derives the booking's paid and remaining amounts from its ledger.
// Only completed records count; refund records subtract.
func Settle(total decimal.Decimal, records []models.Payment) Settlement {
	net := decimal.Zero
	refunded := false
	for _, p := range records {
		if RecordStatus(p.Status) != RecordCompleted {
			continue
		}
		if Type(p.PaymentType) == TypeRefund {
			net = net.Sub(p.Amount)
			refunded = true
			continue
		}
		net = net.Add(p.Amount)
	}

	paid := decimal.Max(net, decimal.Zero)
	s := Settlement{
		Paid:      paid,
		Remaining: decimal.Max(total.Sub(paid), decimal.Zero),
	}

	switch {
	case refunded && !paid.IsPositive():
		s.Status = StatusRefunded
	case paid.GreaterThanOrEqual(total) && (paid.IsPositive() || total.IsZero()):
		s.Status = StatusPaid
	case paid.IsPositive():
		s.Status = StatusDepositPaid
	default:
		s.Status = StatusPending
	}
	return s
}

// Apply writes a settlement onto the booking row.
func Apply(b *models.Booking, s Settlement) {
	b.PaidAmount = s.Paid
	b.RemainingAmount = s.Remaining
	b.PaymentStatus = string(s.Status)
}
