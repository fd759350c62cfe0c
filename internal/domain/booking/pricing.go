package booking

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/domain/settings"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

const (
	MinEquipmentQuantity = 1
	MaxEquipmentQuantity = 10
)

type EquipmentSelection struct {
	EquipmentID    uuid.UUID `json:"equipmentId" binding:"required"`
	Quantity       int       `json:"quantity"`
	SelectedOption string    `json:"selectedOption,omitempty"`
}

type PricingConfig struct {
	HourlyRate     decimal.Decimal
	RequireDeposit bool
	DepositType    settings.DepositType
	DepositAmount  decimal.Decimal
}

func PricingConfigFrom(cfg *models.BusinessConfig) PricingConfig {
	return PricingConfig{
		HourlyRate:     cfg.HourlyRate,
		RequireDeposit: cfg.RequireDeposit,
		DepositType:    settings.DepositType(cfg.DepositType),
		DepositAmount:  cfg.DepositAmount,
	}
}

type PriceInput struct {
	DurationHours decimal.Decimal
	Service       *models.ServiceType
	// FixedBasePrice keeps an already agreed base price when set.
	FixedBasePrice *decimal.Decimal
	Equipment      []models.Equipment
	Selections     []EquipmentSelection
	Config         PricingConfig
	PaidAmount     decimal.Decimal
}

type QuoteLine struct {
	EquipmentID    uuid.UUID
	Name           string
	Quantity       int
	SelectedOption string
	UnitCost       decimal.Decimal
	Cost           decimal.Decimal
}

type Quote struct {
	DurationHours   decimal.Decimal
	BasePrice       decimal.Decimal
	EquipmentCost   decimal.Decimal
	TotalPrice      decimal.Decimal
	DepositAmount   decimal.Decimal
	RemainingAmount decimal.Decimal
	Lines           []QuoteLine
}

// CalculatePrice prices a session. Selections naming equipment missing from
// in.Equipment are skipped; callers resolve them beforehand.
func CalculatePrice(in PriceInput) Quote {
	q := Quote{DurationHours: in.DurationHours}

	switch {
	case in.FixedBasePrice != nil:
		q.BasePrice = *in.FixedBasePrice
	case in.Service != nil && in.Service.IsActive:
		q.BasePrice = in.Service.BasePrice
		q.DurationHours = decimal.NewFromInt(int64(in.Service.Duration))
	default:
		q.BasePrice = in.Config.HourlyRate.Mul(in.DurationHours)
	}

	byID := make(map[uuid.UUID]models.Equipment, len(in.Equipment))
	for _, e := range in.Equipment {
		byID[e.ID] = e
	}

	q.EquipmentCost = decimal.Zero
	for _, sel := range in.Selections {
		item, ok := byID[sel.EquipmentID]
		if !ok {
			continue
		}
		qty := EffectiveQuantity(item, sel.Quantity)
		unit := UnitCost(item, sel.SelectedOption)
		line := QuoteLine{
			EquipmentID:    item.ID,
			Name:           item.Name,
			Quantity:       qty,
			SelectedOption: sel.SelectedOption,
			UnitCost:       unit,
			Cost:           unit.Mul(decimal.NewFromInt(int64(qty))),
		}
		q.EquipmentCost = q.EquipmentCost.Add(line.Cost)
		q.Lines = append(q.Lines, line)
	}

	q.TotalPrice = q.BasePrice.Add(q.EquipmentCost)
	q.DepositAmount = Deposit(q.TotalPrice, in.Config)
	q.RemainingAmount = decimal.Max(q.TotalPrice.Sub(in.PaidAmount), decimal.Zero)
	return q
}

// EffectiveQuantity clamps the requested quantity to [1,10] when the item allows
// choosing one, and is always 1 otherwise.
func EffectiveQuantity(item models.Equipment, requested int) int {
	if !item.AllowQuantitySelection {
		return 1
	}
	if requested < MinEquipmentQuantity {
		return MinEquipmentQuantity
	}
	if requested > MaxEquipmentQuantity {
		return MaxEquipmentQuantity
	}
	return requested
}

// UnitCost is zero for included items. A resolved variant's extra cost
// replaces the item's own.
func UnitCost(item models.Equipment, selectedOption string) decimal.Decimal {
	if item.IsIncluded {
		return decimal.Zero
	}
	if selectedOption != "" {
		if v, ok := ResolveVariant(item.Options.Data(), selectedOption); ok {
			return v.ExtraCost
		}
	}
	return item.ExtraCost
}

// ResolveVariant finds a variant by id, searching groups in key order.
func ResolveVariant(options models.EquipmentOptions, id string) (models.EquipmentVariant, bool) {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range options[k].Types {
			if v.ID == id {
				return v, true
			}
		}
	}
	return models.EquipmentVariant{}, false
}

func Deposit(total decimal.Decimal, cfg PricingConfig) decimal.Decimal {
	if !cfg.RequireDeposit {
		return decimal.Zero
	}
	if cfg.DepositType == settings.DepositPercentage {
		return total.Mul(cfg.DepositAmount).Div(decimal.NewFromInt(100))
	}
	return cfg.DepositAmount
}

// BookingLines converts the quote's lines into rows for bookingID.
func (q Quote) BookingLines(bookingID uuid.UUID) []models.BookingEquipment {
	out := make([]models.BookingEquipment, 0, len(q.Lines))
	for _, l := range q.Lines {
		out = append(out, models.BookingEquipment{
			BookingID:      bookingID,
			EquipmentID:    l.EquipmentID,
			Quantity:       l.Quantity,
			SelectedOption: l.SelectedOption,
			UnitCost:       l.UnitCost,
			Cost:           l.Cost,
		})
	}
	return out
}
