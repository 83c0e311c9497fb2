package service

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/dto"
	"hotelier/internal/infra"
	"hotelier/internal/model"
	"hotelier/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	rateCacheTTL       = 10 * time.Minute
	statusLogPageLimit = 100
)

type RoomService interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error)
	List(ctx context.Context, filter dto.RoomFilter) (*dto.RoomListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateRoomRequest) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateStatus applies an operator-initiated status transition and
	// records it in the room's status log.
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateRoomStatusRequest) (*dto.RoomResponse, error)
	// SetStatus is the internal transition entry point used by bookings
	// (check-in, check-out) and the checkout sweep.
	SetStatus(ctx context.Context, id uuid.UUID, status, reason string, bookingID *uuid.UUID) error
	StatusLog(ctx context.Context, id uuid.UUID) ([]dto.RoomStatusLogResponse, error)

	// RateByNumber is the public, cached rate lookup by room number.
	RateByNumber(ctx context.Context, number string) (*dto.RoomRateResponse, error)

	GetModel(ctx context.Context, id uuid.UUID) (*model.Room, error)
}

type roomService struct {
	rooms repository.RoomRepository
	cache *infra.Cache
}

func NewRoomService(rooms repository.RoomRepository, cache *infra.Cache) RoomService {
	return &roomService{rooms: rooms, cache: cache}
}

func (s *roomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if existing, err := s.rooms.FindByNumber(ctx, req.Number); err == nil && existing != nil {
		return nil, conflictf("room number already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistence("rooms.create: number check", err)
	}

	room := &model.Room{
		Number:      req.Number,
		Type:        req.Type,
		Floor:       req.Floor,
		Rate:        req.Rate,
		Status:      model.RoomStatusAvailable,
		Description: req.Description,
		Active:      true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, persistence("rooms.create", err)
	}
	s.invalidateRoom(ctx, room.Number)
	return toRoomResponse(room), nil
}

func (s *roomService) Get(ctx context.Context, id uuid.UUID) (*dto.RoomResponse, error) {
	room, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *roomService) GetModel(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("room not found")
		}
		return nil, persistence("rooms.get", err)
	}
	return room, nil
}

func (s *roomService) List(ctx context.Context, filter dto.RoomFilter) (*dto.RoomListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	rooms, total, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, persistence("rooms.list", err)
	}
	items := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		items = append(items, *toRoomResponse(&rooms[i]))
	}
	return &dto.RoomListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *roomService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateRoomRequest) (*dto.RoomResponse, error) {
	room, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Rate != nil {
		room.Rate = *req.Rate
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, persistence("rooms.update", err)
	}
	s.invalidateRoom(ctx, room.Number)
	return toRoomResponse(room), nil
}

func (s *roomService) Delete(ctx context.Context, id uuid.UUID) error {
	room, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == model.RoomStatusOccupied {
		return conflictf("cannot retire an occupied room")
	}
	if err := s.rooms.SoftDelete(ctx, id); err != nil {
		return persistence("rooms.delete", err)
	}
	s.invalidateRoom(ctx, room.Number)
	return nil
}

func (s *roomService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateRoomStatusRequest) (*dto.RoomResponse, error) {
	if err := s.SetStatus(ctx, id, req.Status, req.Reason, nil); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *roomService) SetStatus(ctx context.Context, id uuid.UUID, status, reason string, bookingID *uuid.UUID) error {
	room, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}
	if room.Status == status {
		return nil
	}

	from := room.Status
	room.Status = status
	if err := s.rooms.Update(ctx, room); err != nil {
		return persistence("rooms.status: save", err)
	}

	entry := &model.RoomStatusLog{
		RoomID:     room.ID,
		FromStatus: from,
		ToStatus:   status,
		Reason:     reason,
		BookingID:  bookingID,
	}
	if err := s.rooms.CreateStatusLog(ctx, entry); err != nil {
		return persistence("rooms.status: log", err)
	}

	s.invalidateRoom(ctx, room.Number)
	return nil
}

func (s *roomService) StatusLog(ctx context.Context, id uuid.UUID) ([]dto.RoomStatusLogResponse, error) {
	if _, err := s.GetModel(ctx, id); err != nil {
		return nil, err
	}
	entries, err := s.rooms.ListStatusLog(ctx, id, statusLogPageLimit)
	if err != nil {
		return nil, persistence("rooms.statuslog", err)
	}
	out := make([]dto.RoomStatusLogResponse, 0, len(entries))
	for _, e := range entries {
		item := dto.RoomStatusLogResponse{
			ID:         e.ID.String(),
			RoomID:     e.RoomID.String(),
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			Reason:     e.Reason,
			CreatedAt:  e.CreatedAt.Format(timeLayout),
		}
		if e.BookingID != nil {
			id := e.BookingID.String()
			item.BookingID = &id
		}
		out = append(out, item)
	}
	return out, nil
}

// RateByNumber serves the public rate lookup through the view cache, so
// repeated hits on popular rooms skip the database.
func (s *roomService) RateByNumber(ctx context.Context, number string) (*dto.RoomRateResponse, error) {
	path := "rooms/rate/" + number

	if s.cache != nil {
		var cached dto.RoomRateResponse
		if s.cache.GetJSON(ctx, path, &cached) {
			return &cached, nil
		}
	}

	room, err := s.rooms.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("room not found")
		}
		return nil, persistence("rooms.rate", err)
	}

	resp := &dto.RoomRateResponse{
		Number: room.Number,
		Type:   room.Type,
		Rate:   room.Rate,
		Status: room.Status,
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, path, resp, rateCacheTTL)
	}
	return resp, nil
}

func (s *roomService) invalidateRoom(ctx context.Context, number string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, "rooms", "rooms/rate/"+number)
}

func toRoomResponse(r *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:          r.ID.String(),
		Number:      r.Number,
		Type:        r.Type,
		Floor:       r.Floor,
		Rate:        r.Rate,
		Status:      r.Status,
		Description: r.Description,
	}
}
