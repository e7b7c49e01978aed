package drafts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongkyukim1/confession-backend/internal/cache"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	kv := cache.NewMemoryWithClock(clock)
	return NewStoreWithClock(kv, 24*time.Hour, clock), &now
}

func TestDraftRoundtrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	dev := uuid.New()

	require.NoError(t, s.Save(ctx, dev, "오늘 있었던 일을 아직 못 끝냈다", "😢", []string{"일상"}, []string{"https://cdn.example.com/a.jpg"}))

	d, err := s.Load(ctx, dev)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "오늘 있었던 일을 아직 못 끝냈다", d.Content)
	assert.Equal(t, "😢", d.Mood)
	assert.Equal(t, []string{"일상"}, d.Tags)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, d.Images)
}

func TestDraftWhitespaceOnlyIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	dev := uuid.New()

	require.NoError(t, s.Save(ctx, dev, "지우면 안 되는 초안", "", nil, nil))
	require.NoError(t, s.Save(ctx, dev, "   \n\t ", "", nil, nil))

	d, err := s.Load(ctx, dev)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "지우면 안 되는 초안", d.Content)
}

func TestDraftSecondSaveOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	dev := uuid.New()

	require.NoError(t, s.Save(ctx, dev, "첫 번째 초안", "", nil, nil))
	require.NoError(t, s.Save(ctx, dev, "두 번째 초안", "😊", nil, nil))

	d, err := s.Load(ctx, dev)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "두 번째 초안", d.Content)
}

func TestDraftExpiresAfterTTL(t *testing.T) {
	s, now := newTestStore(t)
	ctx := context.Background()
	dev := uuid.New()

	require.NoError(t, s.Save(ctx, dev, "하루 지나면 사라질 초안", "", nil, nil))

	*now = now.Add(25 * time.Hour)

	d, err := s.Load(ctx, dev)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestDraftClear(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	dev := uuid.New()

	require.NoError(t, s.Save(ctx, dev, "곧 지워질 초안입니다", "", nil, nil))
	require.NoError(t, s.Clear(ctx, dev))

	d, err := s.Load(ctx, dev)
	require.NoError(t, err)
	assert.Nil(t, d)

	// clearing an empty slot succeeds
	require.NoError(t, s.Clear(ctx, dev))
}

func TestDraftLoadOtherDeviceEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, uuid.New(), "남의 초안은 보이면 안 된다", "", nil, nil))

	d, err := s.Load(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestFormatAge(t *testing.T) {
	s, now := newTestStore(t)
	saved := *now

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{30 * time.Second, "방금 전"},
		{5 * time.Minute, "5분 전"},
		{3 * time.Hour, "3시간 전"},
		{36 * time.Hour, "2025-06-01"},
	}
	for _, tc := range cases {
		*now = saved.Add(tc.elapsed)
		assert.Equal(t, tc.want, s.FormatAge(&Draft{SavedAt: saved}))
	}
}
