package dto

import "time"

// ─── Filter / List ──────────────────────────────────────────────────────────

// BookingFilter is bound from the query string of GET /v1/bookings.
type BookingFilter struct {
	Active  string `form:"active,default=all"` // true | false | all
	GuestID string `form:"guest_id" validate:"omitempty,uuid"`
	RoomID  string `form:"room_id"  validate:"omitempty,uuid"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type BookingListResponse struct {
	Data  []BookingResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateBookingRequest struct {
	GuestID        string    `json:"guest_id" validate:"required,uuid"`
	RoomID         string    `json:"room_id"  validate:"required,uuid"`
	CheckIn        time.Time `json:"check_in"  validate:"required"`
	CheckOut       time.Time `json:"check_out" validate:"required"`
	NumberOfGuests int       `json:"number_of_guests" validate:"min=1"`
	Notes          *string   `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BookingResponse struct {
	ID             string  `json:"id"`
	GuestID        string  `json:"guest_id"`
	GuestName      string  `json:"guest_name,omitempty"`
	RoomID         string  `json:"room_id"`
	RoomNumber     string  `json:"room_number,omitempty"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	IsActive       bool    `json:"is_active"`
	NumberOfGuests int     `json:"number_of_guests"`
	Notes          *string `json:"notes,omitempty"`
	CheckedInAt    *string `json:"checked_in_at,omitempty"`
	CheckedOutAt   *string `json:"checked_out_at,omitempty"`
	CreatedAt      string  `json:"created_at"`
}
