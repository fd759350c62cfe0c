package booking

import (
	"context"
	"testing"
	"time"
)

func TestNextBookingNumber(t *testing.T) {
	loc := time.FixedZone("AST", -4*3600)
	now := time.Date(2026, 10, 19, 23, 30, 0, 0, loc)
	repo := &countingRepo{count: 6}

	got, err := NextBookingNumber(context.Background(), repo, "", now)
	if err != nil {
		t.Fatalf("NextBookingNumber error: %v", err)
	}
	if got != "CS-20261019-007" {
		t.Fatalf("unexpected number %s", got)
	}

	wantStart := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	if !repo.start.Equal(wantStart) || !repo.end.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Fatalf("unexpected count window %s - %s", repo.start, repo.end)
	}
}

func TestFormatNumberKeepsWideSequences(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatNumber("CS", day, 1234); got != "CS-20260105-1234" {
		t.Fatalf("unexpected number %s", got)
	}
}
