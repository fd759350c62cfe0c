package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/models"
)

func TestValidateEquipment(t *testing.T) {
	e := &models.Equipment{Name: "Shure SM7B", Category: "microphones", ExtraCost: decimal.NewFromInt(10)}
	if err := ValidateEquipment(e); err != nil {
		t.Fatalf("expected valid equipment: %v", err)
	}

	e.Category = "drones"
	if err := ValidateEquipment(e); err == nil {
		t.Fatalf("expected unknown category to fail")
	}
}

func TestValidateOptionsDuplicateIDs(t *testing.T) {
	opts := models.EquipmentOptions{
		"colors": {Types: []models.EquipmentVariant{{ID: "a", Name: "Red"}}},
		"sizes":  {Types: []models.EquipmentVariant{{ID: "a", Name: "Large"}}},
	}
	if err := ValidateOptions(opts); err == nil {
		t.Fatalf("expected duplicated variant id to fail")
	}

	e := &models.Equipment{
		Name:     "Backdrop",
		Category: "backgrounds",
		Options: datatypes.NewJSONType(models.EquipmentOptions{
			"colors": {Types: []models.EquipmentVariant{{ID: "green", ExtraCost: decimal.NewFromInt(-1)}}},
		}),
	}
	if err := ValidateEquipment(e); err == nil {
		t.Fatalf("expected negative variant cost to fail")
	}
}

func TestValidateServiceType(t *testing.T) {
	s := &models.ServiceType{Name: "Podcast", BasePrice: decimal.NewFromInt(100), Duration: 2}
	if err := ValidateServiceType(s); err != nil {
		t.Fatalf("expected valid service: %v", err)
	}
	s.Duration = 0
	if err := ValidateServiceType(s); err == nil {
		t.Fatalf("expected zero duration to fail")
	}
}
