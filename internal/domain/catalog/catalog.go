package catalog

import (
	"strings"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type Category string

const (
	CategoryCameras     Category = "cameras"
	CategoryMicrophones Category = "microphones"
	CategoryLights      Category = "lights"
	CategoryBackgrounds Category = "backgrounds"
	CategoryAudio       Category = "audio"
	CategoryAccessories Category = "accessories"
	CategoryFurniture   Category = "furniture"
	CategoryOther       Category = "other"
)

var Categories = []Category{
	CategoryCameras,
	CategoryMicrophones,
	CategoryLights,
	CategoryBackgrounds,
	CategoryAudio,
	CategoryAccessories,
	CategoryFurniture,
	CategoryOther,
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// ValidateEquipment checks the catalog invariants of an equipment item,
// including its variant groups.
func ValidateEquipment(e *models.Equipment) error {
	if strings.TrimSpace(e.Name) == "" {
		return httperr.Validation("invalid_equipment", "name is required")
	}
	if !IsCategory(e.Category) {
		return httperr.Validation("invalid_category", "unknown category %q", e.Category)
	}
	if e.Quantity < 0 {
		return httperr.Validation("invalid_equipment", "quantity cannot be negative")
	}
	if e.ExtraCost.IsNegative() {
		return httperr.Validation("invalid_equipment", "extra cost cannot be negative")
	}
	return ValidateOptions(e.Options.Data())
}

func ValidateOptions(options models.EquipmentOptions) error {
	ids := map[string]string{}
	for key, group := range options {
		if strings.TrimSpace(key) == "" {
			return httperr.Validation("invalid_options", "option group key is required")
		}
		for _, v := range group.Types {
			if v.ID == "" {
				return httperr.Validation("invalid_options", "%s: variant id is required", key)
			}
			if other, dup := ids[v.ID]; dup {
				return httperr.Validation("invalid_options", "variant id %q is used in %s and %s", v.ID, other, key)
			}
			ids[v.ID] = key
			if v.ExtraCost.IsNegative() {
				return httperr.Validation("invalid_options", "%s: variant %q has a negative extra cost", key, v.ID)
			}
		}
	}
	return nil
}

func ValidateServiceType(s *models.ServiceType) error {
	if strings.TrimSpace(s.Name) == "" {
		return httperr.Validation("invalid_service", "name is required")
	}
	if s.BasePrice.IsNegative() {
		return httperr.Validation("invalid_service", "base price cannot be negative")
	}
	if s.Duration < 1 || s.Duration > 24 {
		return httperr.Validation("invalid_service", "duration must be between 1 and 24 hours")
	}
	return nil
}
