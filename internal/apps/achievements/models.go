package achievements

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is a badge definition. Definitions are seeded at startup
// and referenced by their string key.
type Achievement struct {
	ID          string    `gorm:"size:50;primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:10" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeviceAchievement is a per-device unlock record. Unlocks are
// monotonic: once created the row is never deleted.
type DeviceAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeviceID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_device_achievement" json:"device_id"`
	AchievementID string    `gorm:"size:50;not null;uniqueIndex:idx_device_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlocked_at"`
	Viewed        bool      `gorm:"default:false" json:"viewed"`
}

// --- DTOs ---

type AchievementView struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Viewed     bool       `json:"viewed"`
}

type ListResponse struct {
	Achievements []AchievementView `json:"achievements"`
	Unlocked     int               `json:"unlocked"`
	Total        int               `json:"total"`
}
