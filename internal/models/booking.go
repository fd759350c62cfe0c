package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookingNumber string    `gorm:"size:30;uniqueIndex;not null" json:"bookingNumber"`

	ClientName  string `gorm:"size:120;not null" json:"clientName"`
	ClientEmail string `gorm:"size:120;not null;index" json:"clientEmail"`
	ClientPhone string `gorm:"size:30;not null" json:"clientPhone"`

	SessionDate datatypes.Date  `gorm:"not null;index" json:"sessionDate"`
	StartTime   datatypes.Time  `gorm:"not null" json:"startTime"`
	EndTime     datatypes.Time  `gorm:"not null" json:"endTime"`
	Duration    decimal.Decimal `gorm:"type:decimal(4,2);not null" json:"duration"`

	ServiceTypeID *uuid.UUID   `gorm:"type:uuid" json:"serviceTypeId"`
	ServiceType   *ServiceType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"serviceType,omitempty"`

	ContentType        string `gorm:"size:30" json:"contentType"`
	ProjectDescription string `gorm:"type:text" json:"projectDescription"`

	Status        string `gorm:"size:20;not null;index" json:"status"`
	PaymentStatus string `gorm:"size:20;not null;index" json:"paymentStatus"`

	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	EquipmentCost   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"equipmentCost"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	DepositAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"depositAmount"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"paidAmount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"remainingAmount"`
	PaymentMethod   string          `gorm:"size:20" json:"paymentMethod"`

	ClientNotes string `gorm:"type:text" json:"clientNotes"`
	AdminNotes  string `gorm:"type:text" json:"adminNotes"`

	ConfirmationSentAt *time.Time `json:"confirmationSentAt"`
	ReminderSentAt     *time.Time `json:"reminderSentAt"`
	CancelledAt        *time.Time `json:"cancelledAt"`
	CancellationReason string     `gorm:"type:text" json:"cancellationReason"`
	CancelledBy        string     `gorm:"size:10" json:"cancelledBy"`
	ConfirmedAt        *time.Time `json:"confirmedAt"`
	CompletedAt        *time.Time `json:"completedAt"`

	Equipment []BookingEquipment `gorm:"foreignKey:BookingID" json:"equipment"`
	Payments  []Payment          `gorm:"foreignKey:BookingID" json:"payments,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}
