package entries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
)

// Trending orders visible entries by an engagement score with time
// decay.
func (s *Service) Trending(ctx context.Context, page, limit int) ([]Entry, int64, error) {
	var list []Entry
	var total int64

	offset := (page - 1) * limit

	if err := s.db.Model(&Entry{}).Where("visible = ?", true).Count(&total).Error; err != nil {
		return nil, 0, apperr.Translate(err)
	}

	query := `
		SELECT id, device_id, content, mood, tags, images, view_count, like_count, dislike_count, comment_count, report_count, visible, created_at, updated_at, deleted_at,
		((like_count * 3) + (comment_count * 2) + (view_count * 0.1) - (dislike_count * 2) - (EXTRACT(EPOCH FROM (NOW() - created_at)) / 3600 * 1.5)) as score
		FROM entries
		WHERE deleted_at IS NULL AND visible = true
		ORDER BY score DESC
		OFFSET ? LIMIT ?
	`
	if err := s.db.WithContext(ctx).Raw(query, offset, limit).Scan(&list).Error; err != nil {
		return nil, 0, apperr.Translate(err)
	}
	return list, total, nil
}

// Popular lists the most-liked visible entries of the last week.
func (s *Service) Popular(ctx context.Context, page, limit int) ([]Entry, int64, error) {
	var list []Entry
	var total int64

	offset := (page - 1) * limit
	since := time.Now().AddDate(0, 0, -7)

	query := s.db.Model(&Entry{}).
		Where("visible = ? AND created_at >= ?", true, since)
	query.Count(&total)

	err := query.WithContext(ctx).
		Order("like_count DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Translate(err)
	}
	return list, total, nil
}

// SearchByTag lists visible entries whose tag list contains the tag
// (jsonb containment).
func (s *Service) SearchByTag(ctx context.Context, tag string, page, limit int) ([]Entry, int64, error) {
	var list []Entry
	var total int64

	offset := (page - 1) * limit

	needle, err := json.Marshal([]string{tag})
	if err != nil {
		return nil, 0, apperr.Translate(err)
	}

	query := s.db.Model(&Entry{}).
		Where("visible = ?", true).
		Where("tags @> ?", string(needle))
	query.Count(&total)

	err = query.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, apperr.Translate(err)
	}
	return list, total, nil
}
