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

type BookingService interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	List(ctx context.Context, filter dto.BookingFilter) (*dto.BookingListResponse, error)
	CheckIn(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	CheckOut(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
}

type bookingService struct {
	bookings repository.BookingRepository
	guests   repository.GuestRepository
	rooms    RoomService
	cache    *infra.Cache
}

func NewBookingService(
	bookings repository.BookingRepository,
	guests repository.GuestRepository,
	rooms RoomService,
	cache *infra.Cache,
) BookingService {
	return &bookingService{bookings: bookings, guests: guests, rooms: rooms, cache: cache}
}

// ── Create ────────────────────────────────────────────────────────────────────
// Guest and room must exist, the stay window must be well-formed, and the
// room must be free of overlapping active bookings for that window.

func (s *bookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	guestID, err := uuid.Parse(req.GuestID)
	if err != nil {
		return nil, invalidf("invalid guest id")
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, invalidf("invalid room id")
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, invalidf("check-out must be after check-in")
	}

	if _, err := s.guests.FindByID(ctx, guestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("guest not found")
		}
		return nil, persistence("bookings.create: find guest", err)
	}
	if _, err := s.rooms.GetModel(ctx, roomID); err != nil {
		return nil, err
	}

	overlapping, err := s.bookings.CountOverlapping(ctx, roomID, req.CheckIn, req.CheckOut, nil)
	if err != nil {
		return nil, persistence("bookings.create: overlap check", err)
	}
	if overlapping > 0 {
		return nil, conflictf("room is already booked for part of that date range")
	}

	guests := req.NumberOfGuests
	if guests < 1 {
		guests = 1
	}

	b := &model.Booking{
		GuestID:        guestID,
		RoomID:         roomID,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		IsActive:       true,
		NumberOfGuests: guests,
		Notes:          req.Notes,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, persistence("bookings.create", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, "bookings", "rooms")
	}
	return s.Get(ctx, b.ID)
}

func (s *bookingService) Get(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking not found")
		}
		return nil, persistence("bookings.get", err)
	}
	return toBookingResponse(b), nil
}

func (s *bookingService) List(ctx context.Context, filter dto.BookingFilter) (*dto.BookingListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	bookings, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, persistence("bookings.list", err)
	}
	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, *toBookingResponse(&bookings[i]))
	}
	return &dto.BookingListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── CheckIn / CheckOut ────────────────────────────────────────────────────────

func (s *bookingService) CheckIn(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking not found")
		}
		return nil, persistence("bookings.checkin: find", err)
	}
	if !b.IsActive {
		return nil, conflictf("booking is no longer active")
	}
	if b.CheckedInAt != nil {
		return nil, conflictf("booking is already checked in")
	}

	now := time.Now().UTC()
	b.CheckedInAt = &now
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, persistence("bookings.checkin: save", err)
	}

	if err := s.rooms.SetStatus(ctx, b.RoomID, model.RoomStatusOccupied, "guest checked in", &b.ID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, "bookings", "rooms")
	}
	return toBookingResponse(b), nil
}

func (s *bookingService) CheckOut(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("booking not found")
		}
		return nil, persistence("bookings.checkout: find", err)
	}
	if !b.IsActive {
		return nil, conflictf("booking is no longer active")
	}

	now := time.Now().UTC()
	b.IsActive = false
	b.CheckedOutAt = &now
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, persistence("bookings.checkout: save", err)
	}

	if err := s.rooms.SetStatus(ctx, b.RoomID, model.RoomStatusCleaning, "guest checked out", &b.ID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, "bookings", "rooms")
	}
	return toBookingResponse(b), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

const timeLayout = "2006-01-02T15:04:05Z"

func toBookingResponse(b *model.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:             b.ID.String(),
		GuestID:        b.GuestID.String(),
		RoomID:         b.RoomID.String(),
		CheckIn:        b.CheckIn.Format(timeLayout),
		CheckOut:       b.CheckOut.Format(timeLayout),
		IsActive:       b.IsActive,
		NumberOfGuests: b.NumberOfGuests,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt.Format(timeLayout),
	}
	if b.Guest != nil {
		resp.GuestName = b.Guest.FullName
	}
	if b.Room != nil {
		resp.RoomNumber = b.Room.Number
	}
	if b.CheckedInAt != nil {
		t := b.CheckedInAt.Format(timeLayout)
		resp.CheckedInAt = &t
	}
	if b.CheckedOutAt != nil {
		t := b.CheckedOutAt.Format(timeLayout)
		resp.CheckedOutAt = &t
	}
	return resp
}
