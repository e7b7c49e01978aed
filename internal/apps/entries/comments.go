package entries

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/sanitize"
)

// AddComment creates a comment or a one-level reply. A reply's parent
// must be a top-level comment on the same entry.
func (s *Service) AddComment(ctx context.Context, deviceID, entryID uuid.UUID, req CreateCommentRequest) (*Comment, error) {
	content := strings.TrimSpace(sanitize.Clean(req.Content))
	if err := s.validator.ValidateComment(content); err != nil {
		return nil, err
	}

	var entry Entry
	if err := s.db.WithContext(ctx).Where("id = ? AND visible = ?", entryID, true).First(&entry).Error; err != nil {
		return nil, apperr.Translate(err)
	}

	if req.ParentID != nil {
		var parent Comment
		if err := s.db.Where("id = ? AND entry_id = ?", *req.ParentID, entryID).First(&parent).Error; err != nil {
			return nil, apperr.Translate(err)
		}
		if parent.ParentID != nil {
			return nil, apperr.Validation("답글에는 다시 답글을 달 수 없습니다.")
		}
	}

	comment := Comment{
		EntryID:  entryID,
		ParentID: req.ParentID,
		DeviceID: deviceID,
		Content:  content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, apperr.Translate(err)
	}

	s.db.Model(&Entry{}).Where("id = ?", entryID).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1"))

	return &comment, nil
}

// ListComments returns top-level comments with their replies, oldest
// first.
func (s *Service) ListComments(ctx context.Context, entryID uuid.UUID) ([]CommentThread, error) {
	var all []Comment
	err := s.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at ASC").
		Find(&all).Error
	if err != nil {
		return nil, apperr.Translate(err)
	}

	threads := make([]CommentThread, 0)
	index := make(map[uuid.UUID]int)
	for _, c := range all {
		if c.ParentID == nil {
			index[c.ID] = len(threads)
			threads = append(threads, CommentThread{Comment: c})
		}
	}
	for _, c := range all {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
		}
	}
	return threads, nil
}

// DeleteComment soft-deletes a comment owned by the device, along with
// its replies when it is top-level.
func (s *Service) DeleteComment(ctx context.Context, deviceID, commentID uuid.UUID) error {
	var comment Comment
	if err := s.db.WithContext(ctx).
		Where("id = ? AND device_id = ?", commentID, deviceID).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("본인이 작성한 댓글만 삭제할 수 있습니다.")
		}
		return apperr.Translate(err)
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return apperr.Translate(err)
	}
	removed := int64(1)

	replies := s.db.Where("parent_id = ?", commentID).Delete(&Comment{})
	removed += replies.RowsAffected

	s.db.Model(&Entry{}).Where("id = ?", comment.EntryID).
		UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count - ?, 0)", removed))
	return nil
}
