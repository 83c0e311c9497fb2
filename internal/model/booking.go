package model

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a guest's reserved stay in a room for a date range.
// IsActive stays true from creation until check-out (or the nightly sweep
// deactivates stays past their window).
type Booking struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GuestID uuid.UUID `gorm:"type:uuid;index;not null"`
	RoomID  uuid.UUID `gorm:"type:uuid;index;not null"`

	CheckIn  time.Time `gorm:"not null"`
	CheckOut time.Time `gorm:"not null"`
	IsActive bool      `gorm:"not null;default:true;index"`

	NumberOfGuests int     `gorm:"not null;default:1"`
	Notes          *string

	CheckedInAt  *time.Time
	CheckedOutAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Guest    *Guest    `gorm:"foreignKey:GuestID"`
	Room     *Room     `gorm:"foreignKey:RoomID"`
	Payments []Payment `gorm:"foreignKey:BookingID"`
}
