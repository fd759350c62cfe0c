package booking

import (
	"time"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
)

// Studio carries the per-deployment settings shared by the booking use cases.
type Studio struct {
	Location     *time.Location
	NumberPrefix string
	Now          func() time.Time
}

func (s Studio) now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	if s.Now != nil {
		return s.Now().In(loc)
	}
	return time.Now().In(loc)
}

func (s Studio) prefix() string {
	if s.NumberPrefix == "" {
		return bookingdomain.DefaultNumberPrefix
	}
	return s.NumberPrefix
}
