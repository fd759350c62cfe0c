package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type ServiceTypeDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrice   string    `json:"basePrice"`
	Duration    int       `json:"duration"`
	IsActive    bool      `json:"isActive"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewServiceTypeDTO(s *models.ServiceType) ServiceTypeDTO {
	return ServiceTypeDTO{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		BasePrice:   Money(s.BasePrice),
		Duration:    s.Duration,
		IsActive:    s.IsActive,
		Order:       s.Order,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewServiceTypeDTOs(items []models.ServiceType) []ServiceTypeDTO {
	out := make([]ServiceTypeDTO, 0, len(items))
	for i := range items {
		out = append(out, NewServiceTypeDTO(&items[i]))
	}
	return out
}

type EquipmentVariantDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ExtraCost string `json:"extraCost"`
	Image     string `json:"image,omitempty"`
}

type EquipmentOptionGroupDTO struct {
	Label string                `json:"label,omitempty"`
	Types []EquipmentVariantDTO `json:"types"`
}

type EquipmentDTO struct {
	ID                     uuid.UUID                          `json:"id"`
	Name                   string                             `json:"name"`
	Category               string                             `json:"category"`
	Description            string                             `json:"description"`
	Image                  string                             `json:"image"`
	Quantity               int                                `json:"quantity"`
	IsIncluded             bool                               `json:"isIncluded"`
	ExtraCost              string                             `json:"extraCost"`
	IsActive               bool                               `json:"isActive"`
	Order                  int                                `json:"order"`
	Specifications         map[string]string                  `json:"specifications"`
	AllowQuantitySelection bool                               `json:"allowQuantitySelection"`
	Options                map[string]EquipmentOptionGroupDTO `json:"options"`
	CreatedAt              time.Time                          `json:"createdAt"`
	UpdatedAt              time.Time                          `json:"updatedAt"`
}

func NewEquipmentDTO(e *models.Equipment) EquipmentDTO {
	out := EquipmentDTO{
		ID:                     e.ID,
		Name:                   e.Name,
		Category:               e.Category,
		Description:            e.Description,
		Image:                  e.Image,
		Quantity:               e.Quantity,
		IsIncluded:             e.IsIncluded,
		ExtraCost:              Money(e.ExtraCost),
		IsActive:               e.IsActive,
		Order:                  e.Order,
		Specifications:         e.Specifications.Data(),
		AllowQuantitySelection: e.AllowQuantitySelection,
		Options:                map[string]EquipmentOptionGroupDTO{},
		CreatedAt:              e.CreatedAt,
		UpdatedAt:              e.UpdatedAt,
	}
	if out.Specifications == nil {
		out.Specifications = map[string]string{}
	}
	for key, group := range e.Options.Data() {
		g := EquipmentOptionGroupDTO{Label: group.Label, Types: make([]EquipmentVariantDTO, 0, len(group.Types))}
		for _, v := range group.Types {
			g.Types = append(g.Types, EquipmentVariantDTO{ID: v.ID, Name: v.Name, ExtraCost: Money(v.ExtraCost), Image: v.Image})
		}
		out.Options[key] = g
	}
	return out
}

func NewEquipmentDTOs(items []models.Equipment) []EquipmentDTO {
	out := make([]EquipmentDTO, 0, len(items))
	for i := range items {
		out = append(out, NewEquipmentDTO(&items[i]))
	}
	return out
}

// CategoryStatDTO counts active equipment per category.
type CategoryStatDTO struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
