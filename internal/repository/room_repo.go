package repository

import (
	"context"

	"hotelier/internal/dto"
	"hotelier/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	FindByNumber(ctx context.Context, number string) (*model.Room, error)
	List(ctx context.Context, filter dto.RoomFilter) ([]model.Room, int64, error)
	Update(ctx context.Context, room *model.Room) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	CreateStatusLog(ctx context.Context, entry *model.RoomStatusLog) error
	ListStatusLog(ctx context.Context, roomID uuid.UUID, limit int) ([]model.RoomStatusLog, error)
}

type roomRepo struct{ db *gorm.DB }

func NewRoomRepository(db *gorm.DB) RoomRepository { return &roomRepo{db: db} }

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) FindByNumber(ctx context.Context, number string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).First(&room, "number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) List(ctx context.Context, filter dto.RoomFilter) ([]model.Room, int64, error) {
	var rooms []model.Room
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Room{}).Where("active = true")

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("number ASC").Offset(offset).Limit(filter.Limit).Find(&rooms).Error
	return rooms, total, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *roomRepo) CreateStatusLog(ctx context.Context, entry *model.RoomStatusLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *roomRepo) ListStatusLog(ctx context.Context, roomID uuid.UUID, limit int) ([]model.RoomStatusLog, error) {
	var entries []model.RoomStatusLog
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
