package missions

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/apps/achievements"
	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/metrics"
)

const missionAchievementThreshold = 10

type Service struct {
	db           *gorm.DB
	achievements *achievements.Service

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewService(db *gorm.DB, ach *achievements.Service, rng *rand.Rand) *Service {
	return &Service{db: db, achievements: ach, rng: rng, now: time.Now}
}

// Today returns the device's mission set for the current date,
// instantiating it on first request of the day.
func (s *Service) Today(deviceID uuid.UUID) (*SummaryResponse, error) {
	date := dateKey(s.now())

	instances, err := s.ensure(deviceID, date)
	if err != nil {
		return nil, err
	}
	return summarize(date, instances), nil
}

func (s *Service) ensure(deviceID uuid.UUID, date string) ([]MissionInstance, error) {
	var instances []MissionInstance
	err := s.db.Scopes(device.Owned(deviceID)).
		Where("mission_date = ?", date).
		Order("created_at ASC").
		Find(&instances).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}
	if len(instances) > 0 {
		return instances, nil
	}

	s.mu.Lock()
	templates := chooseDaily(pool, dailyCount, s.rng)
	s.mu.Unlock()

	instances = make([]MissionInstance, 0, len(templates))
	for _, t := range templates {
		instances = append(instances, MissionInstance{
			DeviceID:    deviceID,
			MissionDate: date,
			Type:        t.Type,
			Title:       t.Title,
			Target:      t.Target,
			Reward:      t.Reward,
		})
	}
	if err := s.db.Create(&instances).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	return instances, nil
}

// Progress advances the first incomplete instance of the given type
// among today's missions. It is a no-op when the device has no such
// mission today.
func (s *Service) Progress(deviceID uuid.UUID, missionType string, inc int) error {
	if inc <= 0 {
		inc = 1
	}
	date := dateKey(s.now())

	instances, err := s.ensure(deviceID, date)
	if err != nil {
		return err
	}

	for i := range instances {
		inst := &instances[i]
		if inst.Type != missionType || inst.Completed {
			continue
		}
		completed := advance(inst, inc, s.now().UTC())
		if err := s.db.Save(inst).Error; err != nil {
			return apperr.Translate(err)
		}
		if completed {
			metrics.MissionsCompleted.Inc()
			s.onCompleted(deviceID)
		}
		return nil
	}
	return nil
}

func (s *Service) onCompleted(deviceID uuid.UUID) {
	s.achievements.UnlockQuietly(deviceID, achievements.KeyFirstMission)

	var total int64
	err := s.db.Model(&MissionInstance{}).
		Scopes(device.Owned(deviceID)).
		Where("completed = ?", true).
		Count(&total).Error
	if err != nil {
		slog.Error("mission completion count failed", "device_id", deviceID.String(), "error", err)
		return
	}
	if total >= missionAchievementThreshold {
		s.achievements.UnlockQuietly(deviceID, achievements.KeyTenMissions)
	}
}

// --- best-effort triggers, called from the entry/reaction flows ---

// EntryWritten evaluates every write-flavored mission independently
// against the submitted entry's attributes.
func (s *Service) EntryWritten(deviceID uuid.UUID, hasMood, hasTags, hasImages bool, contentRunes int) {
	s.progressQuietly(deviceID, TypeWrite)
	if hasMood {
		s.progressQuietly(deviceID, TypeWriteWithMood)
	}
	if hasTags {
		s.progressQuietly(deviceID, TypeWriteWithTags)
	}
	if hasImages {
		s.progressQuietly(deviceID, TypeWriteWithImages)
	}
	if contentRunes >= LongEntryRunes {
		s.progressQuietly(deviceID, TypeWriteLong)
	}
}

func (s *Service) EntryRead(deviceID uuid.UUID) {
	s.progressQuietly(deviceID, TypeRead)
}

func (s *Service) ReactionGiven(deviceID uuid.UUID) {
	s.progressQuietly(deviceID, TypeReaction)
}

func (s *Service) progressQuietly(deviceID uuid.UUID, missionType string) {
	if err := s.Progress(deviceID, missionType, 1); err != nil {
		slog.Error("mission progress failed",
			"device_id", deviceID.String(), "type", missionType, "error", err)
	}
}

func summarize(date string, instances []MissionInstance) *SummaryResponse {
	resp := &SummaryResponse{Date: date, Missions: instances}
	for _, inst := range instances {
		if inst.Completed {
			resp.TotalXP += inst.Reward
			resp.CompletedCount++
		}
	}
	return resp
}
