package model

import (
	"time"

	"github.com/google/uuid"
)

// Guest is a person who stays (or has stayed) at the hotel.
type Guest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string    `gorm:"index;not null"`
	Email     *string   `gorm:"uniqueIndex"`
	Phone     *string   `gorm:"type:varchar(30)"`
	IDNumber  *string   `gorm:"type:varchar(64)"` // national ID or passport
	Address   *string
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
