package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/domain/settings"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

func TestCreateBookingPricesAndNumbers(t *testing.T) {
	f := newFixture(t)
	light := f.light(t, true)

	in := slot("2026-10-20", "10:00", "12:00")
	in.Equipment = selection(light.ID, 2, "rgb")
	b := f.create(t, in)

	if b.BookingNumber != "CS-20261019-001" {
		t.Fatalf("unexpected number %s", b.BookingNumber)
	}
	if b.ClientEmail != "ana@example.com" {
		t.Fatalf("email should be normalized, got %s", b.ClientEmail)
	}
	if !b.BasePrice.Equal(dec("100")) || !b.EquipmentCost.Equal(dec("50")) || !b.TotalPrice.Equal(dec("150")) {
		t.Fatalf("unexpected prices base=%s equipment=%s total=%s", b.BasePrice, b.EquipmentCost, b.TotalPrice)
	}
	if !b.RemainingAmount.Equal(dec("150")) || b.PaymentStatus != "pending" || b.Status != "pending" {
		t.Fatalf("unexpected initial state %+v", b)
	}
	if len(b.Equipment) != 1 || b.Equipment[0].Quantity != 2 || !b.Equipment[0].UnitCost.Equal(dec("25")) {
		t.Fatalf("unexpected equipment lines %+v", b.Equipment)
	}
	if b.Equipment[0].Equipment.Name != "LED panel" {
		t.Fatalf("equipment should be preloaded")
	}

	second := f.create(t, slot("2026-10-20", "13:00", "14:00"))
	if second.BookingNumber != "CS-20261019-002" {
		t.Fatalf("unexpected second number %s", second.BookingNumber)
	}
}

func TestBookingNumberSequenceRestartsEachDay(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, slot("2026-10-21", "10:00", "11:00"))
	if first.BookingNumber != "CS-20261019-001" {
		t.Fatalf("unexpected number %s", first.BookingNumber)
	}

	f.studio.Now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	next := f.create(t, slot("2026-10-21", "12:00", "13:00"))
	if next.BookingNumber != "CS-20261020-001" {
		t.Fatalf("sequence should restart on a new day, got %s", next.BookingNumber)
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	f.create(t, slot("2026-10-20", "10:00", "12:00"))

	_, err := NewCreateBooking(f.repo, nil, f.studio).Execute(context.Background(), slot("2026-10-20", "11:00", "13:00"))
	expectKind(t, err, httperr.KindSlotUnavailable)
	expectCode(t, err, "slot_unavailable")

	// touching intervals do not overlap
	f.create(t, slot("2026-10-20", "12:00", "13:00"))
	f.create(t, slot("2026-10-20", "08:00", "10:00"))

	// other days are unaffected
	f.create(t, slot("2026-10-21", "10:00", "12:00"))

	var count int64
	f.db.Model(&models.Booking{}).Count(&count)
	if count != 4 {
		t.Fatalf("expected 4 bookings, got %d", count)
	}
}

func TestCreateBookingRejectsEmptyRange(t *testing.T) {
	f := newFixture(t)
	_, err := NewCreateBooking(f.repo, nil, f.studio).Execute(context.Background(), slot("2026-10-20", "12:00", "12:00"))
	expectKind(t, err, httperr.KindValidation)
	expectCode(t, err, "invalid_time_range")

	_, err = NewCreateBooking(f.repo, nil, f.studio).Execute(context.Background(), slot("20-10-2026", "10:00", "12:00"))
	expectCode(t, err, "invalid_date")
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))

	_, err := NewChangeStatus(f.repo, nil, f.studio).Execute(context.Background(), ChangeStatusInput{
		BookingID: b.ID,
		Target:    "cancelled",
		Reason:    "rescheduling",
	})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	f.create(t, slot("2026-10-20", "10:00", "12:00"))
}

func TestCreateBookingWithService(t *testing.T) {
	f := newFixture(t)
	svc := f.service(t, "120", 3, true)

	in := slot("2026-10-20", "10:00", "")
	in.ServiceTypeID = &svc.ID
	b := f.create(t, in)

	if time.Duration(b.EndTime) != 13*time.Hour {
		t.Fatalf("end should follow service duration, got %s", b.EndTime)
	}
	if !b.BasePrice.Equal(dec("120")) || !b.Duration.Equal(dec("3")) {
		t.Fatalf("unexpected service pricing base=%s duration=%s", b.BasePrice, b.Duration)
	}
	if b.ServiceType == nil || b.ServiceType.ID != svc.ID {
		t.Fatalf("service should be preloaded")
	}
}

func TestCreateBookingCatalogErrors(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateBooking(f.repo, nil, f.studio)
	ctx := context.Background()

	inactive := f.service(t, "80", 2, false)
	in := slot("2026-10-20", "10:00", "")
	in.ServiceTypeID = &inactive.ID
	_, err := uc.Execute(ctx, in)
	expectKind(t, err, httperr.KindInactiveResource)

	missing := uuid.New()
	in.ServiceTypeID = &missing
	_, err = uc.Execute(ctx, in)
	expectKind(t, err, httperr.KindNotFound)

	retired := f.light(t, false)
	in = slot("2026-10-20", "10:00", "11:00")
	in.Equipment = selection(retired.ID, 1, "")
	_, err = uc.Execute(ctx, in)
	expectKind(t, err, httperr.KindInactiveResource)

	in.Equipment = selection(uuid.New(), 1, "")
	_, err = uc.Execute(ctx, in)
	expectCode(t, err, "equipment_not_found")

	var count int64
	f.db.Model(&models.Booking{}).Count(&count)
	if count != 0 {
		t.Fatalf("failed creations must not persist, found %d bookings", count)
	}
}

func TestCreateBookingDeposit(t *testing.T) {
	f := newFixture(t)
	f.updateConfig(t, func(c *models.BusinessConfig) {
		c.RequireDeposit = true
		c.DepositType = string(settings.DepositPercentage)
		c.DepositAmount = dec("30")
	})

	b := f.create(t, slot("2026-10-20", "10:00", "12:00"))
	if !b.DepositAmount.Equal(dec("30")) {
		t.Fatalf("expected 30%% of 100, got %s", b.DepositAmount)
	}
}

func TestPublicCreationRules(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateBooking(f.repo, nil, f.studio)
	ctx := context.Background()

	public := func(date, start, end string) CreateBookingInput {
		in := slot(date, start, end)
		in.Public = true
		return in
	}

	_, err := uc.Execute(ctx, public("2026-10-18", "10:00", "12:00"))
	expectCode(t, err, "session_in_past")

	_, err = uc.Execute(ctx, public("2026-10-25", "10:00", "12:00"))
	expectCode(t, err, "outside_operating_hours")

	_, err = uc.Execute(ctx, public("2026-10-20", "20:00", "22:00"))
	expectCode(t, err, "outside_operating_hours")

	_, err = uc.Execute(ctx, public("2026-10-20", "09:00", "19:00"))
	expectCode(t, err, "invalid_duration")

	if _, err := uc.Execute(ctx, public("2026-10-20", "09:00", "11:00")); err != nil {
		t.Fatalf("valid public booking failed: %v", err)
	}

	f.updateConfig(t, func(c *models.BusinessConfig) {
		c.UseTimeBlocks = true
		c.TimeBlocks = datatypes.NewJSONType([]models.TimeBlock{{Time: "13:00"}, {Time: "17:00"}})
	})
	_, err = uc.Execute(ctx, public("2026-10-20", "14:00", "16:00"))
	expectCode(t, err, "invalid_time_block")

	if _, err := uc.Execute(ctx, public("2026-10-20", "13:00", "15:00")); err != nil {
		t.Fatalf("block start should be accepted: %v", err)
	}
}
