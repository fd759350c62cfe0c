package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID uuid.UUID `gorm:"type:uuid;not null;index" json:"bookingId"`
	Booking   *Booking  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"booking,omitempty"`

	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20;not null" json:"paymentMethod"`
	PaymentType   string          `gorm:"size:20;not null" json:"paymentType"`
	Status        string          `gorm:"size:20;not null;index" json:"status"`

	TransactionID string     `gorm:"size:120" json:"transactionId"`
	Reference     string     `gorm:"size:120" json:"reference"`
	Notes         string     `gorm:"type:text" json:"notes"`
	ProcessedBy   *uuid.UUID `gorm:"type:uuid" json:"processedBy"`
	PaymentDate   time.Time  `gorm:"not null;index" json:"paymentDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
