package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

type RoomFilter struct {
	Status string `form:"status,default=all"` // available | occupied | cleaning | maintenance | all
	Type   string `form:"type"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type RoomListResponse struct {
	Data  []RoomResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateRoomRequest struct {
	Number      string          `json:"number" validate:"required"`
	Type        string          `json:"type"   validate:"required"`
	Floor       int             `json:"floor"  validate:"min=0"`
	Rate        decimal.Decimal `json:"rate"   validate:"min=0"`
	Description *string         `json:"description"`
}

type UpdateRoomRequest struct {
	Type        *string          `json:"type"`
	Floor       *int             `json:"floor"  validate:"omitempty,min=0"`
	Rate        *decimal.Decimal `json:"rate"   validate:"omitempty,min=0"`
	Description *string          `json:"description"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied cleaning maintenance"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RoomResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Floor       int             `json:"floor"`
	Rate        decimal.Decimal `json:"rate"`
	Status      string          `json:"status"`
	Description *string         `json:"description,omitempty"`
}

// RoomRateResponse is the public, cached rate lookup payload.
type RoomRateResponse struct {
	Number string          `json:"number"`
	Type   string          `json:"type"`
	Rate   decimal.Decimal `json:"rate"`
	Status string          `json:"status"`
}

type RoomStatusLogResponse struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	FromStatus string  `json:"from_status"`
	ToStatus   string  `json:"to_status"`
	Reason     string  `json:"reason"`
	BookingID  *string `json:"booking_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}
