// Package drafts keeps one unsent confession draft per device so a
// half-written entry survives an app restart.
package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dongkyukim1/confession-backend/internal/cache"
)

// Draft is the single saved slot. SavedAt drives both the expiry check
// and the age label shown to the author.
type Draft struct {
	Content string    `json:"content"`
	Mood    string    `json:"mood,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	Images  []string  `json:"images,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// Store holds at most one draft per device in the KV layer. Expiry is
// enforced at read time on top of the KV TTL, so a Memory fallback
// without eviction behaves the same as Redis.
type Store struct {
	kv  cache.KV
	ttl time.Duration
	now func() time.Time
}

func NewStore(kv cache.KV, ttl time.Duration) *Store {
	return &Store{kv: kv, ttl: ttl, now: time.Now}
}

// NewStoreWithClock allows tests to control expiry and age labels.
func NewStoreWithClock(kv cache.KV, ttl time.Duration, now func() time.Time) *Store {
	return &Store{kv: kv, ttl: ttl, now: now}
}

func draftKey(deviceID uuid.UUID) string {
	return "draft:" + deviceID.String()
}

// Save overwrites the slot. Whitespace-only content is a no-op so an
// emptied editor does not clobber nothing with nothing.
func (s *Store) Save(ctx context.Context, deviceID uuid.UUID, content, mood string, tags, images []string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	d := Draft{
		Content: content,
		Mood:    mood,
		Tags:    tags,
		Images:  images,
		SavedAt: s.now(),
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, draftKey(deviceID), raw, s.ttl)
}

// Load returns the saved draft, or (nil, nil) when the slot is empty.
// A draft older than the TTL is purged and treated as absent.
func (s *Store) Load(ctx context.Context, deviceID uuid.UUID) (*Draft, error) {
	raw, err := s.kv.Get(ctx, draftKey(deviceID))
	if err != nil {
		if err == cache.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		// corrupt slot, drop it
		_ = s.kv.Delete(ctx, draftKey(deviceID))
		return nil, nil
	}

	if s.now().Sub(d.SavedAt) > s.ttl {
		_ = s.kv.Delete(ctx, draftKey(deviceID))
		return nil, nil
	}
	return &d, nil
}

// Clear empties the slot. Clearing an empty slot succeeds.
func (s *Store) Clear(ctx context.Context, deviceID uuid.UUID) error {
	return s.kv.Delete(ctx, draftKey(deviceID))
}

// FormatAge renders how long ago the draft was saved, in the app's
// casual register.
func (s *Store) FormatAge(d *Draft) string {
	age := s.now().Sub(d.SavedAt)
	switch {
	case age < time.Minute:
		return "방금 전"
	case age < time.Hour:
		return fmt.Sprintf("%d분 전", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%d시간 전", int(age.Hours()))
	default:
		return d.SavedAt.Format("2006-01-02")
	}
}
