package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EquipmentVariant struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ExtraCost decimal.Decimal `json:"extraCost"`
	Image     string          `json:"image,omitempty"`
}

type EquipmentOptionGroup struct {
	Label string             `json:"label,omitempty"`
	Types []EquipmentVariant `json:"types"`
}

// EquipmentOptions groups selectable variants, e.g. "colors" -> {types: [...]}.
type EquipmentOptions map[string]EquipmentOptionGroup

type Equipment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string          `gorm:"size:120;not null" json:"name"`
	Category    string          `gorm:"size:30;not null;index" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"size:500" json:"image"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	IsIncluded  bool            `gorm:"not null" json:"isIncluded"`
	ExtraCost   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"extraCost"`
	IsActive    bool            `gorm:"not null;index" json:"isActive"`
	Order       int             `gorm:"column:sort_order;not null" json:"order"`

	Specifications         datatypes.JSONType[map[string]string] `json:"specifications"`
	AllowQuantitySelection bool                                  `gorm:"not null" json:"allowQuantitySelection"`
	Options                datatypes.JSONType[EquipmentOptions]  `json:"options"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}
