package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

const DefaultNumberPrefix = "CS"

func FormatNumber(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), seq)
}

// NextBookingNumber numbers bookings per calendar day of now, in now's
// location. It must run in the same transaction as the insert.
func NextBookingNumber(ctx context.Context, repo Repository, prefix string, now time.Time) (string, error) {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	start, end := timezone.DayBounds(now)
	count, err := repo.CountBookingsCreatedBetween(ctx, start, end)
	if err != nil {
		return "", err
	}
	return FormatNumber(prefix, now, count+1), nil
}
