package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Room statuses.
const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusCleaning    = "cleaning"
	RoomStatusMaintenance = "maintenance"
)

// Room is one rentable unit of the hotel's inventory.
type Room struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number string    `gorm:"uniqueIndex;not null"`
	Type   string    `gorm:"type:varchar(40);not null"` // single | double | suite | …
	Floor  int       `gorm:"not null;default:0"`

	Rate   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status string          `gorm:"type:varchar(20);not null;default:'available';index"`

	Description *string
	Active      bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomStatusLog is an immutable record of a room status transition.
// Entries are never modified or deleted.
type RoomStatusLog struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomID uuid.UUID `gorm:"type:uuid;index;not null"`

	FromStatus string `gorm:"type:varchar(20);not null"`
	ToStatus   string `gorm:"type:varchar(20);not null"`
	Reason     string `gorm:"not null"`
	// BookingID links the transition to the originating booking, when any.
	BookingID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}
