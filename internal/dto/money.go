package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func Date(d datatypes.Date) string {
	return time.Time(d).Format(timezone.DateLayout)
}

func Clock(t datatypes.Time) string {
	return timezone.FormatClockSeconds(time.Duration(t))
}
