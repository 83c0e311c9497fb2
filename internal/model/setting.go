package model

import "time"

// Setting is one process-wide configuration entry, keyed by name.
// The settings service loads all rows at startup and broadcasts changes
// over Redis pub/sub so other instances reload.
type Setting struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
