package repository

import (
	"context"

	"hotelier/internal/dto"
	"hotelier/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestRepository interface {
	Create(ctx context.Context, g *model.Guest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Guest, error)
	List(ctx context.Context, filter dto.GuestFilter) ([]model.Guest, int64, error)
	Update(ctx context.Context, g *model.Guest) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type guestRepo struct{ db *gorm.DB }

func NewGuestRepository(db *gorm.DB) GuestRepository { return &guestRepo{db: db} }

func (r *guestRepo) Create(ctx context.Context, g *model.Guest) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *guestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	var g model.Guest
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *guestRepo) List(ctx context.Context, filter dto.GuestFilter) ([]model.Guest, int64, error) {
	var guests []model.Guest
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Guest{}).Where("active = true")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("full_name ASC").Offset(offset).Limit(filter.Limit).Find(&guests).Error
	return guests, total, err
}

func (r *guestRepo) Update(ctx context.Context, g *model.Guest) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *guestRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Guest{}).
		Where("id = ?", id).
		Update("active", false).Error
}
