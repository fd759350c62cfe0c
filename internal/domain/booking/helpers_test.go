package booking

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

func newClock(h, m int) datatypes.Time {
	return datatypes.NewTime(h, m, 0, 0)
}

// countingRepo satisfies Repository for the numbering tests; any other
// method call panics on the nil embedded interface.
type countingRepo struct {
	Repository
	count      int64
	start, end time.Time
}

func (r *countingRepo) CountBookingsCreatedBetween(_ context.Context, start, end time.Time) (int64, error) {
	r.start, r.end = start, end
	return r.count, nil
}
