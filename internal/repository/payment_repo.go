package repository

import (
	"context"

	"hotelier/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GroupAgg is one row of a grouped aggregate (by status or payment mode).
type GroupAgg struct {
	Grp   string          `gorm:"column:grp"`
	Count int64           `gorm:"column:count"`
	Total decimal.Decimal `gorm:"column:total"`
}

// PaymentRepository is the persistence gateway for payment rows.
type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	// FindByBooking returns the booking's payment rows ordered by payment
	// date ascending (the first row carries the booking's billing basis).
	FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error)
	CountByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error)
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Aggregates for the statistics view
	TotalAgg(ctx context.Context) (int64, decimal.Decimal, error)
	AggregateByStatus(ctx context.Context) ([]GroupAgg, error)
	AggregateByMode(ctx context.Context) ([]GroupAgg, error)
	Recent(ctx context.Context, limit int) ([]model.Payment, error)
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) FindByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) CountByBooking(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("booking_id = ?", bookingID).
		Count(&n).Error
	return n, err
}

func (r *paymentRepo) Update(ctx context.Context, p *model.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Payment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *paymentRepo) TotalAgg(ctx context.Context) (int64, decimal.Decimal, error) {
	var row struct {
		Count int64           `gorm:"column:count"`
		Total decimal.Decimal `gorm:"column:total"`
	}
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	return row.Count, row.Total, err
}

func (r *paymentRepo) AggregateByStatus(ctx context.Context) ([]GroupAgg, error) {
	return r.groupBy(ctx, "status")
}

func (r *paymentRepo) AggregateByMode(ctx context.Context) ([]GroupAgg, error) {
	return r.groupBy(ctx, "payment_mode")
}

func (r *paymentRepo) groupBy(ctx context.Context, column string) ([]GroupAgg, error) {
	var rows []GroupAgg
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Select(column + " AS grp, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *paymentRepo) Recent(ctx context.Context, limit int) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Order("payment_date DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}
