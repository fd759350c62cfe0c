package validators

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type bookingRequest struct {
	SessionDate string `binding:"required,date"`
	StartTime   string `binding:"required,clock"`
	EndTime     string `binding:"omitempty,clock"`
	Currency    string `binding:"omitempty,currency"`
	Color       string `binding:"hexcolor_or_empty"`
	Category    string `binding:"omitempty,equipment_category"`
}

func TestRegisterBindings(t *testing.T) {
	RegisterBindings()

	valid := bookingRequest{SessionDate: "2026-10-20", StartTime: "10:00", EndTime: "12:30:00", Currency: "DOP", Color: "#fff", Category: "lights"}
	if err := binding.Validator.ValidateStruct(&valid); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	invalid := []bookingRequest{
		{SessionDate: "20/10/2026", StartTime: "10:00"},
		{SessionDate: "2026-10-20", StartTime: "25:00"},
		{SessionDate: "2026-10-20", StartTime: "10:00", Currency: "usd"},
		{SessionDate: "2026-10-20", StartTime: "10:00", Color: "red"},
		{SessionDate: "2026-10-20", StartTime: "10:00", Category: "drones"},
	}
	for i, req := range invalid {
		if err := binding.Validator.ValidateStruct(&req); err == nil {
			t.Fatalf("case %d should fail validation", i)
		}
	}
}

func TestEmailDomainResolvesRejectsMalformed(t *testing.T) {
	for _, email := range []string{"no-at-sign", "trailing@"} {
		if EmailDomainResolves(t.Context(), email) {
			t.Fatalf("%q should not resolve", email)
		}
	}
}
