package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx paymentdomain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PaymentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *PaymentGormRepository) GetBookingForUpdate(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *PaymentGormRepository) SaveSettlement(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"paid_amount":      b.PaidAmount,
			"remaining_amount": b.RemainingAmount,
			"payment_status":   b.PaymentStatus,
			"payment_method":   b.PaymentMethod,
			"updated_at":       time.Now().UTC(),
		}).Error
}

// --------------------------------------------------
// Ledger
// --------------------------------------------------

func (r *PaymentGormRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *PaymentGormRepository) GetPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *PaymentGormRepository) SavePayment(ctx context.Context, p *models.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *PaymentGormRepository) DeletePayment(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *PaymentGormRepository) ListPaymentsForBooking(
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

func (r *PaymentGormRepository) ListPayments(
	ctx context.Context,
	f paymentdomain.ListFilter,
) ([]models.Payment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Payment{})
	if f.BookingID != nil {
		q = q.Where("booking_id = ?", *f.BookingID)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("payment_date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("payment_date < ?", f.To.UTC())
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := paginate(f.Page, f.Limit)
	var payments []models.Payment
	if err := q.
		Preload("Booking").
		Order("payment_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *PaymentGormRepository) PaymentStats(
	ctx context.Context,
	monthStart time.Time,
	monthEnd time.Time,
) (paymentdomain.Stats, error) {

	var s paymentdomain.Stats
	db := r.db.WithContext(ctx)
	completed := string(paymentdomain.RecordCompleted)
	refund := string(paymentdomain.TypeRefund)

	sum := func(out *decimal.Decimal, query string, args ...any) error {
		return db.Model(&models.Payment{}).
			Select("COALESCE(SUM(amount), 0)").
			Where(query, args...).
			Row().
			Scan(out)
	}

	if err := sum(&s.TotalReceived, "status = ? AND payment_type <> ?", completed, refund); err != nil {
		return s, err
	}
	if err := sum(&s.TotalRefunded, "status = ? AND payment_type = ?", completed, refund); err != nil {
		return s, err
	}
	if err := sum(&s.MonthReceived,
		"status = ? AND payment_type <> ? AND payment_date >= ? AND payment_date < ?",
		completed, refund, monthStart.UTC(), monthEnd.UTC(),
	); err != nil {
		return s, err
	}
	if err := db.Model(&models.Payment{}).
		Where("status = ?", string(paymentdomain.RecordPending)).
		Count(&s.PendingCount).Error; err != nil {
		return s, err
	}
	if err := db.Model(&models.Payment{}).
		Select("payment_method AS method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND payment_type <> ?", completed, refund).
		Group("payment_method").
		Order("payment_method").
		Scan(&s.ByMethod).Error; err != nil {
		return s, err
	}
	return s, nil
}

// Compile-time check
var _ paymentdomain.Repository = (*PaymentGormRepository)(nil)
