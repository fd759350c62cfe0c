package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingEquipment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID   uuid.UUID `gorm:"type:uuid;not null;index" json:"bookingId"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"equipmentId"`
	Equipment   Equipment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"equipment"`

	Quantity       int             `gorm:"not null" json:"quantity"`
	SelectedOption string          `gorm:"size:60" json:"selectedOption"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitCost"`
	Cost           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
}

func (l *BookingEquipment) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
