package settings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

// ===============================
// Enumerations
// ===============================

type DepositType string

const (
	DepositPercentage DepositType = "percentage"
	DepositFixed      DepositType = "fixed"
)

type AzulMode string

const (
	AzulSandbox    AzulMode = "sandbox"
	AzulProduction AzulMode = "production"
)

var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// ===============================
// Operating hours
// ===============================

type Hours struct {
	Open  time.Duration
	Close time.Duration
}

// HoursFor returns the opening window for the weekday of date. ok is false
// when the studio is closed that day.
func HoursFor(cfg *models.BusinessConfig, date time.Time) (Hours, bool) {
	day, found := cfg.OperatingHours.Data()[timezone.WeekdayKey(date)]
	if !found || !day.Enabled {
		return Hours{}, false
	}

	open, err := timezone.ParseClock(day.Open)
	if err != nil {
		return Hours{}, false
	}
	closing, err := timezone.ParseClock(day.Close)
	if err != nil || open >= closing {
		return Hours{}, false
	}
	return Hours{Open: open, Close: closing}, true
}

// IsWithinOperatingHours reports whether [start, end) fits inside the day's window.
func IsWithinOperatingHours(cfg *models.BusinessConfig, date time.Time, start, end time.Duration) bool {
	h, ok := HoursFor(cfg, date)
	if !ok {
		return false
	}
	return start >= h.Open && end <= h.Close
}

// ===============================
// Validations
// ===============================

func ValidateOperatingHours(hours models.OperatingHours) error {
	for key, day := range hours {
		if !isWeekday(key) {
			return httperr.Validation("invalid_operating_hours", "unknown weekday %q", key)
		}
		open, err := timezone.ParseClock(day.Open)
		if err != nil {
			return httperr.Validation("invalid_operating_hours", "%s: invalid open time %q", key, day.Open)
		}
		closing, err := timezone.ParseClock(day.Close)
		if err != nil {
			return httperr.Validation("invalid_operating_hours", "%s: invalid close time %q", key, day.Close)
		}
		if day.Enabled && open >= closing {
			return httperr.Validation("invalid_operating_hours", "%s: open must be before close", key)
		}
	}
	return nil
}

func ValidateSessionLimits(min, max int) error {
	if min < 1 || max > 24 || min > max {
		return httperr.Validation("invalid_session_limits", "session duration limits must satisfy 1 <= min <= max <= 24")
	}
	return nil
}

func ValidateTimeBlocks(blocks []models.TimeBlock) error {
	seen := make(map[time.Duration]bool, len(blocks))
	for _, b := range blocks {
		t, err := timezone.ParseClock(b.Time)
		if err != nil || t >= 24*time.Hour {
			return httperr.Validation("invalid_time_blocks", "invalid time block %q", b.Time)
		}
		if seen[t] {
			return httperr.Validation("invalid_time_blocks", "duplicated time block %q", b.Time)
		}
		seen[t] = true
	}
	return nil
}

func ValidateDeposit(kind string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return httperr.Validation("invalid_deposit", "deposit amount cannot be negative")
	}
	switch DepositType(kind) {
	case DepositPercentage:
		if amount.GreaterThan(decimal.NewFromInt(100)) {
			return httperr.Validation("invalid_deposit", "percentage deposit must be between 0 and 100")
		}
	case DepositFixed:
	default:
		return httperr.Validation("invalid_deposit", "unknown deposit type %q", kind)
	}
	return nil
}

func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return httperr.Validation("invalid_currency", "currency must be a 3 letter code")
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return httperr.Validation("invalid_currency", "currency must be a 3 letter code")
		}
	}
	return nil
}

func ValidateAzulMode(mode string) error {
	switch AzulMode(mode) {
	case AzulSandbox, AzulProduction:
		return nil
	}
	return httperr.Validation("invalid_azul_mode", "azul mode must be sandbox or production")
}

// Validate checks every invariant of the configuration row.
func Validate(cfg *models.BusinessConfig) error {
	if cfg.BusinessName == "" {
		return httperr.Validation("invalid_business_name", "business name is required")
	}
	if err := ValidateOperatingHours(cfg.OperatingHours.Data()); err != nil {
		return err
	}
	if err := ValidateSessionLimits(cfg.MinSessionDuration, cfg.MaxSessionDuration); err != nil {
		return err
	}
	if cfg.BufferTime < 0 {
		return httperr.Validation("invalid_buffer_time", "buffer time cannot be negative")
	}
	if cfg.HourlyRate.IsNegative() {
		return httperr.Validation("invalid_hourly_rate", "hourly rate cannot be negative")
	}
	if err := ValidateCurrency(cfg.Currency); err != nil {
		return err
	}
	if err := ValidateTimeBlocks(cfg.TimeBlocks.Data()); err != nil {
		return err
	}
	if err := ValidateDeposit(cfg.DepositType, cfg.DepositAmount); err != nil {
		return err
	}
	return ValidateAzulMode(cfg.AzulMode)
}

func isWeekday(key string) bool {
	for _, d := range Weekdays {
		if d == key {
			return true
		}
	}
	return false
}
