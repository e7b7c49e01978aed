package streaks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/apps/achievements"
	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/streak"
)

// HistorySource provides a device's entry timestamps for recompute.
// Implemented by the entries service; injected after construction to
// break the dependency cycle between the two features.
type HistorySource interface {
	AuthoredTimestamps(ctx context.Context, deviceID uuid.UUID) ([]time.Time, error)
}

type Service struct {
	db           *gorm.DB
	achievements *achievements.Service
	history      HistorySource
	now          func() time.Time
}

func NewService(db *gorm.DB, ach *achievements.Service) *Service {
	return &Service{db: db, achievements: ach, now: time.Now}
}

// SetHistorySource wires the entry history provider.
func (s *Service) SetHistorySource(src HistorySource) { s.history = src }

// RecordPost applies one authoring event to the device's streak tuple
// and unlocks any streak milestone achievement reached.
func (s *Service) RecordPost(deviceID uuid.UUID) (*StreakState, error) {
	now := s.now()

	var state StreakState
	err := s.db.Scopes(device.Owned(deviceID)).First(&state).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Translate(err)
	}
	fresh := errors.Is(err, gorm.ErrRecordNotFound)

	next := streak.Update(streak.Stats{
		Current:          state.CurrentStreak,
		Longest:          state.LongestStreak,
		LastActivityDate: state.LastActivityDate,
	}, now)

	state.DeviceID = deviceID
	state.CurrentStreak = next.Current
	state.LongestStreak = next.Longest
	state.LastActivityDate = next.LastActivityDate
	state.TotalEntries++

	if fresh {
		err = s.db.Create(&state).Error
	} else {
		err = s.db.Save(&state).Error
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}

	if key, ok := achievements.StreakAchievementFor(state.CurrentStreak); ok {
		s.achievements.UnlockQuietly(deviceID, key)
	}

	return &state, nil
}

// RecordPostQuietly is the best-effort variant used by the entry
// submission flow: a streak failure never blocks the write.
func (s *Service) RecordPostQuietly(deviceID uuid.UUID) {
	if _, err := s.RecordPost(deviceID); err != nil {
		slog.Error("streak update failed", "device_id", deviceID.String(), "error", err)
	}
}

// Get returns the current tuple with derived fields.
func (s *Service) Get(deviceID uuid.UUID) (*StreakResponse, error) {
	var state StreakState
	err := s.db.Scopes(device.Owned(deviceID)).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StreakResponse{}, nil
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return s.respond(&state), nil
}

// Recompute rebuilds the tuple from the full entry history. The
// operation is idempotent; it exists to heal drift after clock changes
// or missed updates.
func (s *Service) Recompute(ctx context.Context, deviceID uuid.UUID) (*StreakResponse, error) {
	if s.history == nil {
		return nil, apperr.New(apperr.CodeUnknown, "서버 구성 오류가 발생했습니다.")
	}

	timestamps, err := s.history.AuthoredTimestamps(ctx, deviceID)
	if err != nil {
		return nil, apperr.Translate(err)
	}

	stats := streak.Compute(timestamps, s.now())

	var state StreakState
	err = s.db.Scopes(device.Owned(deviceID)).First(&state).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Translate(err)
	}
	fresh := errors.Is(err, gorm.ErrRecordNotFound)

	state.DeviceID = deviceID
	state.CurrentStreak = stats.Current
	state.LongestStreak = stats.Longest
	state.LastActivityDate = stats.LastActivityDate
	state.TotalEntries = len(timestamps)

	if fresh {
		err = s.db.Create(&state).Error
	} else {
		err = s.db.Save(&state).Error
	}
	if err != nil {
		return nil, apperr.Translate(err)
	}
	return s.respond(&state), nil
}

func (s *Service) respond(state *StreakState) *StreakResponse {
	resp := &StreakResponse{
		CurrentStreak:    state.CurrentStreak,
		LongestStreak:    state.LongestStreak,
		TotalEntries:     state.TotalEntries,
		LastActivityDate: state.LastActivityDate,
	}

	now := s.now()
	resp.TodayCompleted = !state.LastActivityDate.IsZero() &&
		state.LastActivityDate.In(now.Location()).Format("2006-01-02") == now.Format("2006-01-02")

	if milestone, ok := streak.MilestoneFor(state.CurrentStreak); ok {
		resp.Milestone = &milestone
	}
	return resp
}
