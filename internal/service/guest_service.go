package service

import (
	"context"
	"errors"

	"hotelier/internal/dto"
	"hotelier/internal/infra"
	"hotelier/internal/model"
	"hotelier/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuestService interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (*dto.GuestResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.GuestResponse, error)
	List(ctx context.Context, filter dto.GuestFilter) (*dto.GuestListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateGuestRequest) (*dto.GuestResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type guestService struct {
	guests repository.GuestRepository
	cache  *infra.Cache
}

func NewGuestService(guests repository.GuestRepository, cache *infra.Cache) GuestService {
	return &guestService{guests: guests, cache: cache}
}

func (s *guestService) Create(ctx context.Context, req dto.CreateGuestRequest) (*dto.GuestResponse, error) {
	g := &model.Guest{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		IDNumber: req.IDNumber,
		Address:  req.Address,
		Active:   true,
	}
	if err := s.guests.Create(ctx, g); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictf("a guest with that email already exists")
		}
		return nil, persistence("guests.create", err)
	}
	s.invalidate(ctx)
	return toGuestResponse(g), nil
}

func (s *guestService) Get(ctx context.Context, id uuid.UUID) (*dto.GuestResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGuestResponse(g), nil
}

func (s *guestService) List(ctx context.Context, filter dto.GuestFilter) (*dto.GuestListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	guests, total, err := s.guests.List(ctx, filter)
	if err != nil {
		return nil, persistence("guests.list", err)
	}
	items := make([]dto.GuestResponse, 0, len(guests))
	for i := range guests {
		items = append(items, *toGuestResponse(&guests[i]))
	}
	return &dto.GuestListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *guestService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateGuestRequest) (*dto.GuestResponse, error) {
	g, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		g.FullName = *req.FullName
	}
	if req.Email != nil {
		g.Email = req.Email
	}
	if req.Phone != nil {
		g.Phone = req.Phone
	}
	if req.IDNumber != nil {
		g.IDNumber = req.IDNumber
	}
	if req.Address != nil {
		g.Address = req.Address
	}
	if err := s.guests.Update(ctx, g); err != nil {
		return nil, persistence("guests.update", err)
	}
	s.invalidate(ctx)
	return toGuestResponse(g), nil
}

func (s *guestService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.guests.SoftDelete(ctx, id); err != nil {
		return persistence("guests.delete", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *guestService) find(ctx context.Context, id uuid.UUID) (*model.Guest, error) {
	g, err := s.guests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("guest not found")
		}
		return nil, persistence("guests.get", err)
	}
	return g, nil
}

func (s *guestService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, "guests")
	}
}

func toGuestResponse(g *model.Guest) *dto.GuestResponse {
	return &dto.GuestResponse{
		ID:       g.ID.String(),
		FullName: g.FullName,
		Email:    g.Email,
		Phone:    g.Phone,
		IDNumber: g.IDNumber,
		Address:  g.Address,
	}
}
