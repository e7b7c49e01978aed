package missions

import (
	"math/rand"
	"time"
)

// Mission types. Triggers fire from the entry and reaction flows.
const (
	TypeWrite           = "write"
	TypeWriteWithMood   = "write_with_mood"
	TypeWriteWithTags   = "write_with_tags"
	TypeWriteWithImages = "write_with_images"
	TypeWriteLong       = "write_long"
	TypeRead            = "read"
	TypeReaction        = "give_reaction"
)

// LongEntryRunes is the content length from which an entry counts as
// "long" for the write_long mission.
const LongEntryRunes = 100

// Template is a mission blueprint instantiated daily.
type Template struct {
	Type   string
	Title  string
	Target int
	Reward int
}

var pool = []Template{
	{Type: TypeWrite, Title: "고백 1개 작성하기", Target: 1, Reward: 50},
	{Type: TypeWriteWithMood, Title: "기분을 담아 고백 작성하기", Target: 1, Reward: 30},
	{Type: TypeWriteWithTags, Title: "태그를 달아 고백 작성하기", Target: 1, Reward: 30},
	{Type: TypeWriteWithImages, Title: "사진과 함께 고백 작성하기", Target: 1, Reward: 40},
	{Type: TypeWriteLong, Title: "정성스런 긴 고백 작성하기", Target: 1, Reward: 60},
	{Type: TypeRead, Title: "다른 고백 3개 읽기", Target: 3, Reward: 40},
	{Type: TypeReaction, Title: "공감 2개 남기기", Target: 2, Reward: 30},
}

const dailyCount = 3

// chooseDaily picks count templates at random, deduplicating by type
// while the pool allows and padding with repeats only when it doesn't.
func chooseDaily(pool []Template, count int, rng *rand.Rand) []Template {
	if len(pool) == 0 || count <= 0 {
		return nil
	}

	shuffled := make([]Template, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	chosen := make([]Template, 0, count)
	seen := make(map[string]struct{}, count)
	for _, t := range shuffled {
		if _, dup := seen[t.Type]; dup {
			continue
		}
		seen[t.Type] = struct{}{}
		chosen = append(chosen, t)
		if len(chosen) == count {
			return chosen
		}
	}

	// Pool has fewer distinct types than requested: pad with repeats.
	for i := 0; len(chosen) < count; i++ {
		chosen = append(chosen, shuffled[i%len(shuffled)])
	}
	return chosen
}

// advance adds inc to a not-yet-completed instance, clamping at the
// target. It reports whether this call completed the mission.
func advance(inst *MissionInstance, inc int, now time.Time) bool {
	if inst.Completed {
		return false
	}
	inst.Progress += inc
	if inst.Progress < inst.Target {
		return false
	}
	inst.Progress = inst.Target
	inst.Completed = true
	at := now
	inst.CompletedAt = &at
	return true
}

// dateKey renders the per-day mission key.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
