package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-booking/internal/domain"
	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

// ======================================================
// Catalog resolution
// ======================================================

// resolveService returns nil when id is nil. Missing and inactive services
// are reported separately.
func resolveService(
	ctx context.Context,
	repo bookingdomain.Repository,
	id *uuid.UUID,
) (*models.ServiceType, error) {

	if id == nil || *id == uuid.Nil {
		return nil, nil
	}

	svc, err := repo.FindActiveServiceType(ctx, *id)
	if err == nil {
		return svc, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if _, err := repo.FindServiceType(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}
	return nil, httperr.Inactive("service_inactive")
}

// resolveEquipment loads every selected item and fails unless all are active.
func resolveEquipment(
	ctx context.Context,
	repo bookingdomain.Repository,
	selections []bookingdomain.EquipmentSelection,
) ([]models.Equipment, error) {

	ids := selectionIDs(selections)
	if len(ids) == 0 {
		return nil, nil
	}

	active, err := repo.FindActiveEquipmentByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(active) == len(ids) {
		return active, nil
	}

	all, err := repo.FindEquipmentByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]bool, len(all))
	for _, e := range all {
		found[e.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, httperr.ErrNotFound("equipment_not_found")
		}
	}
	return nil, httperr.Inactive("equipment_inactive")
}

func selectionIDs(selections []bookingdomain.EquipmentSelection) []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	for _, s := range selections {
		if s.EquipmentID == uuid.Nil || seen[s.EquipmentID] {
			continue
		}
		seen[s.EquipmentID] = true
		ids = append(ids, s.EquipmentID)
	}
	return ids
}

// ======================================================
// Schedule parsing
// ======================================================

type schedule struct {
	Date     time.Time
	Interval bookingdomain.Interval
}

func (s schedule) hours() decimal.Decimal {
	return decimal.NewFromFloat(s.Interval.Hours()).Round(2)
}

func parseDate(s string) (time.Time, error) {
	d, err := timezone.ParseDate(s)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", "sessionDate must be YYYY-MM-DD")
	}
	return d, nil
}

func parseClock(field, s string) (time.Duration, error) {
	c, err := timezone.ParseClock(s)
	if err != nil {
		return 0, httperr.Validation("invalid_time", "%s must be HH:MM or HH:MM:SS", field)
	}
	return c, nil
}

// resolveEnd picks the session end: the service duration wins, then an
// explicit end time, then an explicit duration, then the configured minimum.
func resolveEnd(
	start time.Duration,
	endTime string,
	duration *decimal.Decimal,
	svc *models.ServiceType,
	cfg *models.BusinessConfig,
) (time.Duration, error) {

	switch {
	case svc != nil:
		return start + time.Duration(svc.Duration)*time.Hour, nil
	case endTime != "":
		return parseClock("endTime", endTime)
	case duration != nil:
		if !duration.IsPositive() {
			return 0, httperr.Validation("invalid_duration", "duration must be positive")
		}
		minutes := duration.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
		return start + time.Duration(minutes)*time.Minute, nil
	default:
		return start + time.Duration(cfg.MinSessionDuration)*time.Hour, nil
	}
}
