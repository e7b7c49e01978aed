package streaks

import (
	"time"

	"github.com/google/uuid"

	"github.com/dongkyukim1/confession-backend/internal/streak"
)

// StreakState is the persisted per-device streak tuple. It is derived
// state: Recompute can rebuild it from entry history at any time.
type StreakState struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeviceID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"device_id"`
	CurrentStreak    int       `gorm:"default:0" json:"current_streak"`
	LongestStreak    int       `gorm:"default:0" json:"longest_streak"`
	TotalEntries     int       `gorm:"default:0" json:"total_entries"`
	LastActivityDate time.Time `json:"last_activity_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// --- DTOs ---

type StreakResponse struct {
	CurrentStreak    int               `json:"current_streak"`
	LongestStreak    int               `json:"longest_streak"`
	TotalEntries     int               `json:"total_entries"`
	LastActivityDate time.Time         `json:"last_activity_date"`
	TodayCompleted   bool              `json:"today_completed"`
	Milestone        *streak.Milestone `json:"milestone,omitempty"`
}
