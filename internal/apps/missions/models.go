package missions

import (
	"time"

	"github.com/google/uuid"
)

// MissionInstance is one daily task for one device. Instances are
// keyed by calendar date, so a new day yields a fresh set.
type MissionInstance struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeviceID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_mission_device_date" json:"device_id"`
	MissionDate string     `gorm:"size:10;not null;index:idx_mission_device_date" json:"mission_date"`
	Type        string     `gorm:"size:30;not null" json:"type"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Target      int        `gorm:"not null" json:"target"`
	Progress    int        `gorm:"default:0" json:"progress"`
	Reward      int        `gorm:"not null" json:"reward"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// --- DTOs ---

type SummaryResponse struct {
	Date           string            `json:"date"`
	Missions       []MissionInstance `json:"missions"`
	TotalXP        int               `json:"total_xp"`
	CompletedCount int               `json:"completed_count"`
}
