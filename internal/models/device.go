package models

import (
	"time"

	"github.com/google/uuid"
)

// Device is the anonymous per-install identity. There are no user
// accounts; the device id stands in for one.
type Device struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Platform   string    `gorm:"size:20" json:"platform"`
	AppVersion string    `gorm:"size:20" json:"app_version"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
