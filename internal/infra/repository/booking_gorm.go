package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx bookingdomain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Configuration
// --------------------------------------------------

func (r *BookingGormRepository) FindBusinessConfig(ctx context.Context) (*models.BusinessConfig, error) {
	return loadBusinessConfig(ctx, r.db, false)
}

func (r *BookingGormRepository) LockBookingWrites(ctx context.Context) (*models.BusinessConfig, error) {
	return loadBusinessConfig(ctx, r.db, true)
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) FindActiveServiceType(
	ctx context.Context,
	id uuid.UUID,
) (*models.ServiceType, error) {

	var svc models.ServiceType
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&svc).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *BookingGormRepository) FindServiceType(
	ctx context.Context,
	id uuid.UUID,
) (*models.ServiceType, error) {

	var svc models.ServiceType
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *BookingGormRepository) FindActiveEquipmentByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]models.Equipment, error) {

	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.Equipment
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *BookingGormRepository) FindEquipmentByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]models.Equipment, error) {

	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.Equipment
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --------------------------------------------------
// Availability / numbering
// --------------------------------------------------

func (r *BookingGormRepository) FindBookingsByDateExcludingCancelled(
	ctx context.Context,
	date time.Time,
	exclude *uuid.UUID,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Select("id", "session_date", "start_time", "end_time", "status").
		Where("session_date = ? AND status <> ?", day(date), string(bookingdomain.StatusCancelled))
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var bookings []models.Booking
	if err := q.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) CountBookingsCreatedBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// InsertBooking stores the booking row and its equipment lines.
func (r *BookingGormRepository) InsertBooking(ctx context.Context, b *models.Booking) error {
	lines := b.Equipment
	b.Equipment = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(b).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.Conflict("booking_number_conflict", "booking number %s is already taken", b.BookingNumber)
		}
		return err
	}

	for i := range lines {
		lines[i].BookingID = b.ID
	}
	if len(lines) > 0 {
		if err := db.Omit(clause.Associations).Create(&lines).Error; err != nil {
			return err
		}
	}
	b.Equipment = lines
	return nil
}

func (r *BookingGormRepository) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := r.withDetails(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := r.withDetails(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByNumber(ctx context.Context, number string) (*models.Booking, error) {
	var b models.Booking
	if err := r.withDetails(ctx).First(&b, "booking_number = ?", number).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) SaveBooking(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *BookingGormRepository) ReplaceBookingEquipment(
	ctx context.Context,
	bookingID uuid.UUID,
	lines []models.BookingEquipment,
) error {

	db := r.db.WithContext(ctx)
	if err := db.Where("booking_id = ?", bookingID).Delete(&models.BookingEquipment{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].BookingID = bookingID
	}
	return db.Omit(clause.Associations).Create(&lines).Error
}

func (r *BookingGormRepository) ListPaymentsForBooking(
	ctx context.Context,
	bookingID uuid.UUID,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *BookingGormRepository) ListCalendar(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "session_date", "start_time", "end_time", "status").
		Where(
			"session_date >= ? AND session_date <= ? AND status <> ?",
			day(from), day(to), string(bookingdomain.StatusCancelled),
		).
		Order("session_date ASC").
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f bookingdomain.ListFilter,
) ([]models.Booking, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.From != nil {
		q = q.Where("session_date >= ?", day(*f.From))
	}
	if f.To != nil {
		q = q.Where("session_date <= ?", day(*f.To))
	}
	if f.ClientEmail != "" {
		q = q.Where("LOWER(client_email) LIKE ?", "%"+strings.ToLower(f.ClientEmail)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(f.Page, f.Limit)
	var bookings []models.Booking
	if err := q.
		Preload("ServiceType").
		Preload("Equipment.Equipment").
		Order("session_date DESC").
		Order("start_time DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *BookingGormRepository) DashboardStats(
	ctx context.Context,
	today time.Time,
	monthStart time.Time,
	monthEnd time.Time,
	upcomingLimit int,
) (bookingdomain.DashboardStats, error) {

	var s bookingdomain.DashboardStats
	db := r.db.WithContext(ctx)
	cancelled := string(bookingdomain.StatusCancelled)
	inMonth := "session_date >= ? AND session_date < ?"

	if err := db.Model(&models.Booking{}).Count(&s.TotalBookings).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Booking{}).
		Where(inMonth, day(monthStart), day(monthEnd)).
		Count(&s.ThisMonthBookings).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Booking{}).
		Where("status = ?", string(bookingdomain.StatusPending)).
		Count(&s.PendingBookings).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where(inMonth+" AND status <> ?", day(monthStart), day(monthEnd), cancelled).
		Row().
		Scan(&s.MonthlyRevenue); err != nil {
		return s, err
	}
	if err := db.
		Preload("Equipment.Equipment").
		Where(
			"session_date >= ? AND status IN ?",
			day(today),
			[]string{string(bookingdomain.StatusPending), string(bookingdomain.StatusConfirmed)},
		).
		Order("session_date ASC").
		Order("start_time ASC").
		Limit(upcomingLimit).
		Find(&s.Upcoming).Error; err != nil {
		return s, err
	}
	return s, nil
}

func (r *BookingGormRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ServiceType").
		Preload("Equipment.Equipment").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date ASC")
		})
}

// Compile-time check
var _ bookingdomain.Repository = (*BookingGormRepository)(nil)
