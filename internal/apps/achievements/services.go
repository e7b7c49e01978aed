package achievements

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/device"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Seed upserts the badge definitions.
func (s *Service) Seed() error {
	for _, def := range definitions {
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "icon"}),
		}).Create(&def).Error
		if err != nil {
			return apperr.Translate(err)
		}
	}
	return nil
}

// Unlock records an unlock for the device. Unlocks are monotonic;
// unlocking an already-unlocked achievement is a no-op success.
func (s *Service) Unlock(deviceID uuid.UUID, achievementID string) error {
	rec := DeviceAchievement{
		DeviceID:      deviceID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now().UTC(),
	}
	err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error
	if err != nil && !apperr.IsDuplicate(err) {
		return apperr.Translate(err)
	}
	return nil
}

// UnlockQuietly is the best-effort variant used from secondary flows:
// failures are logged, never propagated.
func (s *Service) UnlockQuietly(deviceID uuid.UUID, achievementID string) {
	if err := s.Unlock(deviceID, achievementID); err != nil {
		slog.Error("achievement unlock failed",
			"device_id", deviceID.String(), "achievement", achievementID, "error", err)
	}
}

// List returns every definition with the device's unlock state.
func (s *Service) List(deviceID uuid.UUID) (*ListResponse, error) {
	var defs []Achievement
	if err := s.db.Order("created_at ASC, id ASC").Find(&defs).Error; err != nil {
		return nil, apperr.Translate(err)
	}

	var unlocks []DeviceAchievement
	if err := s.db.Scopes(device.Owned(deviceID)).Find(&unlocks).Error; err != nil {
		return nil, apperr.Translate(err)
	}

	byID := make(map[string]DeviceAchievement, len(unlocks))
	for _, u := range unlocks {
		byID[u.AchievementID] = u
	}

	resp := &ListResponse{Total: len(defs)}
	for _, def := range defs {
		view := AchievementView{Achievement: def}
		if u, ok := byID[def.ID]; ok {
			at := u.UnlockedAt
			view.Unlocked = true
			view.UnlockedAt = &at
			view.Viewed = u.Viewed
			resp.Unlocked++
		}
		resp.Achievements = append(resp.Achievements, view)
	}
	return resp, nil
}

// MarkViewed flags an unlocked achievement as seen by the user.
func (s *Service) MarkViewed(deviceID uuid.UUID, achievementID string) error {
	result := s.db.Model(&DeviceAchievement{}).
		Scopes(device.Owned(deviceID)).
		Where("achievement_id = ?", achievementID).
		Update("viewed", true)
	if result.Error != nil {
		return apperr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("해당 업적을 찾을 수 없습니다.")
	}
	return nil
}
