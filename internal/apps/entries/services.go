package entries

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/apps/achievements"
	"github.com/dongkyukim1/confession-backend/internal/apps/missions"
	"github.com/dongkyukim1/confession-backend/internal/apps/streaks"
	"github.com/dongkyukim1/confession-backend/internal/config"
	"github.com/dongkyukim1/confession-backend/internal/device"
	"github.com/dongkyukim1/confession-backend/internal/match"
	"github.com/dongkyukim1/confession-backend/internal/metrics"
	"github.com/dongkyukim1/confession-backend/internal/sanitize"
)

// Entries hidden automatically once they collect this many reports.
const autoHideReports = 5

type Service struct {
	db        *gorm.DB
	cfg       *config.Config
	validator *Validator

	matcherMu sync.Mutex
	matcher   *match.Matcher

	streaks      *streaks.Service
	missions     *missions.Service
	achievements *achievements.Service
}

func NewService(
	db *gorm.DB,
	cfg *config.Config,
	matcher *match.Matcher,
	streakSvc *streaks.Service,
	missionSvc *missions.Service,
	achievementSvc *achievements.Service,
) *Service {
	return &Service{
		db:           db,
		cfg:          cfg,
		validator:    NewValidator(cfg),
		matcher:      matcher,
		streaks:      streakSvc,
		missions:     missionSvc,
		achievements: achievementSvc,
	}
}

// Create validates and persists a submission, updates the author's
// streak and missions, then selects an entry to reveal back. Streak,
// mission and reveal failures never fail the submission itself.
func (s *Service) Create(ctx context.Context, deviceID uuid.UUID, req CreateEntryRequest) (*CreateEntryResponse, error) {
	req.Content = strings.TrimSpace(sanitize.Clean(req.Content))
	req.Tags = normalizeTags(req.Tags)

	if err := s.validator.ValidateEntry(&req); err != nil {
		return nil, err
	}

	entry := Entry{
		DeviceID: deviceID,
		Content:  req.Content,
		Mood:     req.Mood,
		Tags:     datatypes.NewJSONSlice(req.Tags),
		Images:   datatypes.NewJSONSlice(req.Images),
		Visible:  true,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, apperr.Translate(err)
	}
	metrics.EntriesCreated.Inc()

	// Gamification updates are secondary: swallow-and-log.
	s.streaks.RecordPostQuietly(deviceID)
	s.missions.EntryWritten(deviceID,
		req.Mood != "", len(req.Tags) > 0, len(req.Images) > 0,
		utf8.RuneCountInString(req.Content))
	s.unlockEntryCountAchievements(deviceID)

	resp := &CreateEntryResponse{Entry: &entry}
	reveal, err := s.Reveal(ctx, deviceID, &entry)
	if err != nil {
		slog.Error("reveal selection failed", "device_id", deviceID.String(), "error", err)
	} else {
		resp.Reveal = reveal
	}
	return resp, nil
}

// Reveal picks an entry from the viewable pool for the author of
// source. An empty pool is the first-author outcome, not an error.
func (s *Service) Reveal(ctx context.Context, deviceID uuid.UUID, source *Entry) (*RevealResult, error) {
	viewed := s.db.Model(&EntryView{}).Select("entry_id").Where("device_id = ?", deviceID)

	var pool []Entry
	err := s.db.WithContext(ctx).
		Where("visible = ?", true).
		Where("device_id <> ?", deviceID).
		Where("id NOT IN (?)", viewed).
		Order("created_at DESC").
		Limit(s.cfg.CandidatePoolSize).
		Find(&pool).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}

	candidates := make([]match.Candidate, len(pool))
	byID := make(map[uuid.UUID]*Entry, len(pool))
	for i := range pool {
		candidates[i] = match.Candidate{
			ID:      pool[i].ID,
			Content: pool[i].Content,
			Mood:    pool[i].Mood,
			Tags:    []string(pool[i].Tags),
		}
		byID[pool[i].ID] = &pool[i]
	}

	s.matcherMu.Lock()
	picked, ok := s.matcher.Select(match.Candidate{
		Content: source.Content,
		Mood:    source.Mood,
		Tags:    []string(source.Tags),
	}, candidates)
	s.matcherMu.Unlock()

	if !ok {
		metrics.Reveals.WithLabelValues("first_author").Inc()
		return &RevealResult{FirstAuthor: true}, nil
	}

	revealed := byID[picked.ID]
	if err := s.MarkViewed(ctx, deviceID, revealed.ID); err != nil {
		slog.Error("view record failed", "device_id", deviceID.String(), "entry_id", revealed.ID.String(), "error", err)
	} else {
		revealed.ViewCount++
	}

	metrics.Reveals.WithLabelValues("matched").Inc()
	return &RevealResult{Entry: revealed}, nil
}

// MarkViewed upserts the (viewer, entry) view record. A duplicate is
// an idempotent success; only a first view bumps the counter and the
// read mission.
func (s *Service) MarkViewed(ctx context.Context, deviceID, entryID uuid.UUID) error {
	view := EntryView{
		EntryID:  entryID,
		DeviceID: deviceID,
		ViewedAt: time.Now().UTC(),
	}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
	if result.Error != nil {
		if apperr.IsDuplicate(result.Error) {
			return nil
		}
		return apperr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		// Conflict path: already viewed.
		return nil
	}

	s.db.Model(&Entry{}).Where("id = ?", entryID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	s.missions.EntryRead(deviceID)
	return nil
}

// Get fetches a single visible entry and bumps its view counter.
func (s *Service) Get(ctx context.Context, entryID uuid.UUID) (*Entry, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("id = ? AND visible = ?", entryID, true).First(&entry).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}

	s.db.Model(&entry).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	entry.ViewCount++
	return &entry, nil
}

// ListMine returns the device's own entries, newest first.
func (s *Service) ListMine(ctx context.Context, deviceID uuid.UUID, page, limit int) ([]Entry, int64, error) {
	var list []Entry
	var total int64

	offset := (page - 1) * limit

	s.db.Model(&Entry{}).Scopes(device.Owned(deviceID)).Count(&total)

	err := s.db.WithContext(ctx).Scopes(device.Owned(deviceID)).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Translate(err)
	}
	return list, total, nil
}

// Delete soft-deletes an entry owned by the device.
func (s *Service) Delete(ctx context.Context, deviceID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND device_id = ?", entryID, deviceID).
		Delete(&Entry{})
	if result.Error != nil {
		return apperr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("본인이 작성한 고백만 삭제할 수 있습니다.")
	}
	return nil
}

// React toggles a like or dislike. Adding a reaction feeds the
// give-reaction mission; removing one does not.
func (s *Service) React(ctx context.Context, deviceID, entryID uuid.UUID, kind string) error {
	if kind != ReactionLike && kind != ReactionDislike {
		return apperr.Validation("지원하지 않는 반응입니다.")
	}

	var entry Entry
	if err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		return apperr.Translate(err)
	}

	counter := "like_count"
	if kind == ReactionDislike {
		counter = "dislike_count"
	}

	var existing EntryReaction
	err := s.db.Where("entry_id = ? AND device_id = ?", entryID, deviceID).First(&existing).Error
	if err == nil {
		// Same kind toggles off; different kind switches.
		if existing.Kind == kind {
			s.db.Delete(&existing)
			s.db.Model(&Entry{}).Where("id = ?", entryID).
				UpdateColumn(counter, gorm.Expr(counter+" - 1"))
			return nil
		}
		prev := "like_count"
		if existing.Kind == ReactionDislike {
			prev = "dislike_count"
		}
		existing.Kind = kind
		if err := s.db.Save(&existing).Error; err != nil {
			return apperr.Translate(err)
		}
		s.db.Model(&Entry{}).Where("id = ?", entryID).
			UpdateColumn(prev, gorm.Expr(prev+" - 1"))
		s.db.Model(&Entry{}).Where("id = ?", entryID).
			UpdateColumn(counter, gorm.Expr(counter+" + 1"))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Translate(err)
	}

	reaction := EntryReaction{EntryID: entryID, DeviceID: deviceID, Kind: kind}
	if err := s.db.Create(&reaction).Error; err != nil {
		if apperr.IsDuplicate(err) {
			return nil
		}
		return apperr.Translate(err)
	}
	s.db.Model(&Entry{}).Where("id = ?", entryID).
		UpdateColumn(counter, gorm.Expr(counter+" + 1"))
	s.missions.ReactionGiven(deviceID)
	return nil
}

// Report records a report once per device. Repeat reports are
// idempotent successes. Entries past the report threshold are hidden.
func (s *Service) Report(ctx context.Context, deviceID, entryID uuid.UUID, reason string) error {
	var entry Entry
	if err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error; err != nil {
		return apperr.Translate(err)
	}

	report := EntryReport{EntryID: entryID, DeviceID: deviceID, Reason: strings.TrimSpace(reason)}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&report)
	if result.Error != nil {
		if apperr.IsDuplicate(result.Error) {
			return nil
		}
		return apperr.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil
	}

	updates := map[string]interface{}{"report_count": gorm.Expr("report_count + 1")}
	if entry.ReportCount+1 >= autoHideReports {
		updates["visible"] = false
	}
	return apperr.Translate(s.db.Model(&Entry{}).Where("id = ?", entryID).Updates(updates).Error)
}

// AuthoredTimestamps implements streaks.HistorySource.
func (s *Service) AuthoredTimestamps(ctx context.Context, deviceID uuid.UUID) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).Model(&Entry{}).
		Scopes(device.Owned(deviceID)).
		Pluck("created_at", &times).Error
	return times, apperr.Translate(err)
}

func (s *Service) unlockEntryCountAchievements(deviceID uuid.UUID) {
	var total int64
	if err := s.db.Model(&Entry{}).Scopes(device.Owned(deviceID)).Count(&total).Error; err != nil {
		slog.Error("entry count failed", "device_id", deviceID.String(), "error", err)
		return
	}
	switch {
	case total >= 50:
		s.achievements.UnlockQuietly(deviceID, achievements.KeyFiftyEntries)
		fallthrough
	case total >= 10:
		s.achievements.UnlockQuietly(deviceID, achievements.KeyTenEntries)
		fallthrough
	case total >= 1:
		s.achievements.UnlockQuietly(deviceID, achievements.KeyFirstEntry)
	}
}
