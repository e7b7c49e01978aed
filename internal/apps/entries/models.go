package entries

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Entry is an anonymous confession. The author's device id never
// leaves the server.
type Entry struct {
	ID           uuid.UUID                    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DeviceID     uuid.UUID                    `gorm:"type:uuid;not null;index" json:"-"`
	Content      string                       `gorm:"type:text;not null" json:"content"`
	Mood         string                       `gorm:"type:varchar(10)" json:"mood,omitempty"`
	Tags         datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"tags,omitempty"`
	Images       datatypes.JSONSlice[string]  `gorm:"type:jsonb" json:"images,omitempty"`
	ViewCount    int                          `gorm:"default:0" json:"view_count"`
	LikeCount    int                          `gorm:"default:0" json:"like_count"`
	DislikeCount int                          `gorm:"default:0" json:"dislike_count"`
	CommentCount int                          `gorm:"default:0" json:"comment_count"`
	ReportCount  int                          `gorm:"default:0" json:"report_count"`
	Visible      bool                         `gorm:"default:true" json:"visible"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
	DeletedAt    gorm.DeletedAt               `gorm:"index" json:"-"`
}

// EntryView links a viewer to an entry, at most once per pair.
type EntryView struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EntryID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_viewer" json:"entry_id"`
	DeviceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_viewer" json:"device_id"`
	ViewedAt time.Time `gorm:"not null" json:"viewed_at"`
}

// EntryReaction is a like or dislike. Reacting again with the same
// kind removes it (toggle).
type EntryReaction struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EntryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_reactor" json:"entry_id"`
	DeviceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_reactor" json:"device_id"`
	Kind      string    `gorm:"type:varchar(10);not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryReport records one report per (entry, device).
type EntryReport struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EntryID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_reporter" json:"entry_id"`
	DeviceID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entry_reporter" json:"device_id"`
	Reason    string    `gorm:"type:varchar(200)" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment on an entry, with one level of replies.
type Comment struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EntryID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"entry_id"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	DeviceID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Content   string         `gorm:"type:varchar(200);not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Moods is the fixed emoji set an entry may carry.
var Moods = []string{"😊", "😢", "😡", "😰", "😴", "🥳", "😌", "🤔", "😍", "😤"}

// --- DTOs ---

type CreateEntryRequest struct {
	Content string   `json:"content"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Images  []string `json:"images,omitempty"`
}

type ReactRequest struct {
	Kind string `json:"kind"`
}

type ReportRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CreateCommentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

// RevealResult is what the author gets back after submitting: either a
// matched entry from someone else, or the first-author outcome when
// the pool is empty.
type RevealResult struct {
	Entry       *Entry `json:"entry,omitempty"`
	FirstAuthor bool   `json:"first_author"`
}

type CreateEntryResponse struct {
	Entry  *Entry        `json:"entry"`
	Reveal *RevealResult `json:"reveal,omitempty"`
}

type CommentThread struct {
	Comment
	Replies []Comment `json:"replies,omitempty"`
}
