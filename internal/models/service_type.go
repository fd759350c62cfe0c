package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceType struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string          `gorm:"size:120;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	Duration    int             `gorm:"not null" json:"duration"`
	IsActive    bool            `gorm:"not null;index" json:"isActive"`
	Order       int             `gorm:"column:sort_order;not null" json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *ServiceType) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
