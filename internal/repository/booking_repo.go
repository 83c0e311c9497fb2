package repository

import (
	"context"
	"time"

	"hotelier/internal/dto"
	"hotelier/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	List(ctx context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error)
	Update(ctx context.Context, b *model.Booking) error
	// CountOverlapping counts active bookings on the room whose stay window
	// intersects [checkIn, checkOut). exclude skips one booking id (for edits).
	CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error)
	// ListExpiredActive returns active bookings whose check-out is in the past.
	ListExpiredActive(ctx context.Context, now time.Time, limit int) ([]model.Booking, error)
}

type bookingRepo struct{ db *gorm.DB }

func NewBookingRepository(db *gorm.DB) BookingRepository { return &bookingRepo{db: db} }

func (r *bookingRepo) Create(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Guest").Preload("Room").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepo) List(ctx context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Booking{})

	if filter.Active != "" && filter.Active != "all" {
		q = q.Where("is_active = ?", filter.Active == "true")
	}
	if filter.GuestID != "" {
		q = q.Where("guest_id = ?", filter.GuestID)
	}
	if filter.RoomID != "" {
		q = q.Where("room_id = ?", filter.RoomID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Guest").Preload("Room").
		Order("check_in DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bookings).Error

	return bookings, total, err
}

func (r *bookingRepo) Update(ctx context.Context, b *model.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bookingRepo) CountOverlapping(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("room_id = ? AND is_active = true", roomID).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *bookingRepo) ListExpiredActive(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("is_active = true AND check_out < ?", now).
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
