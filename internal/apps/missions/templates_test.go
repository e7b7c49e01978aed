package missions

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseDailyDeduplicatesTypes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		chosen := chooseDaily(pool, dailyCount, rng)
		require.Len(t, chosen, dailyCount)

		seen := map[string]bool{}
		for _, tmpl := range chosen {
			assert.False(t, seen[tmpl.Type], "type %q repeated", tmpl.Type)
			seen[tmpl.Type] = true
		}
	}
}

func TestChooseDailyPadsSmallPool(t *testing.T) {
	small := []Template{
		{Type: TypeWrite, Title: "write", Target: 1, Reward: 10},
		{Type: TypeRead, Title: "read", Target: 3, Reward: 10},
	}
	chosen := chooseDaily(small, 3, rand.New(rand.NewSource(1)))
	require.Len(t, chosen, 3)
}

func TestChooseDailyEmptyPool(t *testing.T) {
	assert.Nil(t, chooseDaily(nil, 3, rand.New(rand.NewSource(1))))
}

func TestAdvanceClampsAndCompletesOnce(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	inst := MissionInstance{Type: TypeRead, Target: 3}

	assert.False(t, advance(&inst, 1, now))
	assert.Equal(t, 1, inst.Progress)
	assert.False(t, inst.Completed)

	// Increment past the target clamps to the target.
	completed := advance(&inst, 5, now)
	assert.True(t, completed)
	assert.Equal(t, 3, inst.Progress)
	assert.True(t, inst.Completed)
	require.NotNil(t, inst.CompletedAt)
	assert.Equal(t, now, *inst.CompletedAt)

	// A completed instance never advances or completes again.
	later := now.Add(time.Hour)
	assert.False(t, advance(&inst, 1, later))
	assert.Equal(t, 3, inst.Progress)
	assert.Equal(t, now, *inst.CompletedAt)
}

func TestSummarize(t *testing.T) {
	done := time.Now()
	instances := []MissionInstance{
		{Type: TypeWrite, Target: 1, Progress: 1, Reward: 50, Completed: true, CompletedAt: &done},
		{Type: TypeRead, Target: 3, Progress: 1, Reward: 40},
		{Type: TypeReaction, Target: 2, Progress: 2, Reward: 30, Completed: true, CompletedAt: &done},
	}

	resp := summarize("2025-06-10", instances)
	assert.Equal(t, 80, resp.TotalXP)
	assert.Equal(t, 2, resp.CompletedCount)
	assert.Len(t, resp.Missions, 3)
}
