package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/db"
	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/infra/repository"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// Monday 2026-10-19, noon.
var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	repo   *repository.BookingGormRepository
	studio Studio
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:", false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return &fixture{
		db:   gdb,
		repo: repository.NewBookingGormRepository(gdb),
		studio: Studio{
			Location:     time.UTC,
			NumberPrefix: "CS",
			Now:          func() time.Time { return fixedNow },
		},
	}
}

func (f *fixture) updateConfig(t *testing.T, mutate func(c *models.BusinessConfig)) {
	t.Helper()
	store := repository.NewConfigGormRepository(f.db)
	cfg, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	mutate(cfg)
	if err := store.Save(context.Background(), cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
}

func (f *fixture) service(t *testing.T, price string, hours int, active bool) models.ServiceType {
	t.Helper()
	svc := models.ServiceType{
		Name:      "Podcast session",
		BasePrice: decimal.RequireFromString(price),
		Duration:  hours,
		IsActive:  active,
	}
	if err := f.db.Create(&svc).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func (f *fixture) light(t *testing.T, active bool) models.Equipment {
	t.Helper()
	e := models.Equipment{
		Name:                   "LED panel",
		Category:               "lights",
		ExtraCost:              decimal.NewFromInt(15),
		IsActive:               active,
		AllowQuantitySelection: true,
		Options: datatypes.NewJSONType(models.EquipmentOptions{
			"colors": {Label: "Color", Types: []models.EquipmentVariant{
				{ID: "rgb", Name: "RGB", ExtraCost: decimal.NewFromInt(25)},
			}},
		}),
		Specifications: datatypes.NewJSONType(map[string]string{}),
	}
	if err := f.db.Create(&e).Error; err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	return e
}

func (f *fixture) create(t *testing.T, in CreateBookingInput) *models.Booking {
	t.Helper()
	b, err := NewCreateBooking(f.repo, nil, f.studio).Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func slot(date, start, end string) CreateBookingInput {
	return CreateBookingInput{
		ClientName:  "Ana Perez",
		ClientEmail: "Ana@Example.com",
		ClientPhone: "809-555-0101",
		SessionDate: date,
		StartTime:   start,
		EndTime:     end,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expectKind(t *testing.T, err error, want httperr.Kind) {
	t.Helper()
	kind, ok := httperr.KindOf(err)
	if !ok || kind != want {
		t.Fatalf("expected error kind %d, got %v", want, err)
	}
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func selection(id uuid.UUID, qty int, option string) []bookingdomain.EquipmentSelection {
	return []bookingdomain.EquipmentSelection{{EquipmentID: id, Quantity: qty, SelectedOption: option}}
}
