package booking

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

func TestListSlotsMarksBookedAndPastStarts(t *testing.T) {
	f := newFixture(t)
	f.create(t, slot("2026-10-20", "10:00", "12:00"))
	uc := NewListSlots(f.repo, f.studio)
	ctx := context.Background()

	res, err := uc.Execute(ctx, "2026-10-20", nil)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if res.Closed || res.Open != "09:00" || res.Close != "21:00" {
		t.Fatalf("unexpected hours %+v", res)
	}
	available := map[string]bool{}
	for _, s := range res.Slots {
		available[s.Time] = s.Available
	}
	if !available["09:00"] || available["10:00"] || available["11:00"] || !available["12:00"] {
		t.Fatalf("unexpected availability %v", available)
	}

	today, err := uc.Execute(ctx, "2026-10-19", nil)
	if err != nil {
		t.Fatalf("slots today: %v", err)
	}
	for _, s := range today.Slots {
		past := s.Time <= "12:00"
		if past && s.Available {
			t.Fatalf("slot %s has already started", s.Time)
		}
		if !past && !s.Available {
			t.Fatalf("slot %s should be open", s.Time)
		}
	}

	sunday, err := uc.Execute(ctx, "2026-10-25", nil)
	if err != nil {
		t.Fatalf("slots sunday: %v", err)
	}
	if !sunday.Closed || len(sunday.Slots) != 0 {
		t.Fatalf("sunday should be closed, got %+v", sunday)
	}
}

func TestListSlotsTimeBlocksStopAtClosing(t *testing.T) {
	f := newFixture(t)
	f.updateConfig(t, func(c *models.BusinessConfig) {
		c.UseTimeBlocks = true
		c.TimeBlocks = datatypes.NewJSONType([]models.TimeBlock{
			{Time: "09:00", Label: "Morning"},
			{Time: "20:00", Label: "Late"},
		})
	})
	svc := f.service(t, "100", 2, true)

	res, err := NewListSlots(f.repo, f.studio).Execute(context.Background(), "2026-10-20", &svc.ID)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(res.Slots) != 2 {
		t.Fatalf("expected 2 blocks, got %+v", res.Slots)
	}
	if !res.Slots[0].Available {
		t.Fatalf("morning block should be open: %+v", res.Slots[0])
	}
	if res.Slots[1].Available {
		t.Fatalf("20:00 block runs past 21:00 closing: %+v", res.Slots[1])
	}
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	uc := NewCheckAvailability(f.repo)
	ctx := context.Background()

	free, err := uc.Execute(ctx, CheckAvailabilityInput{SessionDate: "2026-10-20", StartTime: "11:00", EndTime: "12:30"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if free {
		t.Fatalf("overlapping window reported free")
	}

	free, err = uc.Execute(ctx, CheckAvailabilityInput{
		SessionDate:      "2026-10-20",
		StartTime:        "11:00",
		EndTime:          "12:30",
		ExcludeBookingID: &b.ID,
	})
	if err != nil || !free {
		t.Fatalf("excluding the booking should free the window: %v %v", free, err)
	}
}

func TestQuotePrice(t *testing.T) {
	f := newFixture(t)
	light := f.light(t, true)
	uc := NewQuotePrice(f.repo)

	three := decimal.NewFromInt(3)
	q, err := uc.Execute(context.Background(), QuoteInput{
		Duration:  &three,
		Equipment: selection(light.ID, 1, "rgb"),
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !q.BasePrice.Equal(dec("150")) || !q.EquipmentCost.Equal(dec("25")) || !q.TotalPrice.Equal(dec("175")) {
		t.Fatalf("unexpected quote %+v", q)
	}

	q, err = uc.Execute(context.Background(), QuoteInput{StartTime: "10:00", EndTime: "11:30"})
	if err != nil {
		t.Fatalf("quote by times: %v", err)
	}
	if !q.BasePrice.Equal(dec("75")) {
		t.Fatalf("expected 1.5h at 50, got %s", q.BasePrice)
	}
}

func TestLookupBooking(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	uc := NewLookupBooking(f.repo)
	ctx := context.Background()

	found, err := uc.Execute(ctx, b.BookingNumber, "ANA@example.com ")
	if err != nil || found.ID != b.ID {
		t.Fatalf("lookup: %v", err)
	}

	_, err = uc.Execute(ctx, b.BookingNumber, "someone@example.com")
	expectKind(t, err, httperr.KindNotFound)

	_, err = uc.Execute(ctx, "CS-19990101-001", "ana@example.com")
	expectKind(t, err, httperr.KindNotFound)
}

func TestListBookingsAndCalendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	f.create(t, slot("2026-10-22", "10:00", "12:00"))
	other := slot("2026-11-05", "10:00", "12:00")
	other.ClientEmail = "bob@example.com"
	f.create(t, other)

	if _, err := NewChangeStatus(f.repo, nil, f.studio).Execute(ctx, ChangeStatusInput{
		BookingID: a.ID,
		Target:    bookingdomain.StatusCancelled,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	list, total, err := NewListBookings(f.repo).Execute(ctx, ListBookingsInput{ClientEmail: "ana@example.com", Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(list) != 1 {
		t.Fatalf("expected 2 total with a page of 1, got %d/%d", total, len(list))
	}

	list, total, err = NewListBookings(f.repo).Execute(ctx, ListBookingsInput{Status: "cancelled"})
	if err != nil || total != 1 || list[0].ID != a.ID {
		t.Fatalf("status filter: total=%d err=%v", total, err)
	}

	_, _, err = NewListBookings(f.repo).Execute(ctx, ListBookingsInput{Status: "lost"})
	expectCode(t, err, "invalid_status")

	cal, err := NewListCalendar(f.repo).Execute(ctx, "2026-10-01", "2026-10-31")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if len(cal) != 1 {
		t.Fatalf("calendar should skip cancelled and out-of-range bookings, got %d", len(cal))
	}

	_, err = NewListCalendar(f.repo).Execute(ctx, "2026-01-01", "2026-12-31")
	expectCode(t, err, "invalid_range")
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, slot("2026-10-20", "10:00", "12:00"))
	f.create(t, slot("2026-10-21", "10:00", "11:00"))

	stats, err := NewDashboardStats(f.repo, f.studio).Execute(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalBookings != 2 || stats.PendingBookings != 2 || stats.ThisMonthBookings != 2 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if len(stats.Upcoming) != 2 {
		t.Fatalf("expected 2 upcoming, got %d", len(stats.Upcoming))
	}
}
