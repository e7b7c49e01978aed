// Package streak computes consecutive-day authoring streaks over entry
// timestamps. All functions are pure; callers persist the resulting
// tuple after each authoring event.
package streak

import (
	"sort"
	"time"
)

// Stats is the derived streak tuple.
type Stats struct {
	Current          int       `json:"current_streak"`
	Longest          int       `json:"longest_streak"`
	TodayCompleted   bool      `json:"today_completed"`
	LastActivityDate time.Time `json:"last_activity_date"`
}

// Milestone is a badge threshold.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Label     string `json:"label"`
}

// Milestones in ascending threshold order.
var Milestones = []Milestone{
	{Threshold: 3, Label: "3일 연속"},
	{Threshold: 7, Label: "일주일 연속"},
	{Threshold: 14, Label: "2주 연속"},
	{Threshold: 30, Label: "한 달 연속"},
	{Threshold: 100, Label: "100일 연속"},
}

// Compute reduces timestamps to unique calendar days (in now's
// location) and derives the streak tuple. Input order is irrelevant.
func Compute(timestamps []time.Time, now time.Time) Stats {
	days := uniqueDaysDescending(timestamps, now.Location())
	if len(days) == 0 {
		return Stats{}
	}

	today := dateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	stats := Stats{
		LastActivityDate: days[0],
		TodayCompleted:   days[0].Equal(today),
	}

	// Current streak counts back from today or yesterday only.
	if days[0].Equal(today) || days[0].Equal(yesterday) {
		stats.Current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
				stats.Current++
			} else {
				break
			}
		}
	}

	// Longest streak scans the whole history.
	run := 1
	longest := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	stats.Longest = longest

	if stats.Current > stats.Longest {
		stats.Longest = stats.Current
	}
	return stats
}

// Update applies a single authoring event to a previously persisted
// tuple: same day is a no-op, yesterday extends, any gap resets to 1.
// LastActivityDate may come back from storage in a different location
// (the database speaks UTC), so it is converted into now's location
// before the calendar comparison.
func Update(prev Stats, now time.Time) Stats {
	today := dateOnly(now)
	last := dateOnly(prev.LastActivityDate.In(now.Location()))

	next := prev
	switch {
	case !prev.LastActivityDate.IsZero() && last.Equal(today):
		// Already recorded today.
	case !prev.LastActivityDate.IsZero() && last.Equal(today.AddDate(0, 0, -1)):
		next.Current = prev.Current + 1
	default:
		next.Current = 1
	}

	if next.Current > next.Longest {
		next.Longest = next.Current
	}
	next.LastActivityDate = today
	next.TodayCompleted = true
	return next
}

// MilestoneFor returns the highest milestone the streak length meets,
// if any.
func MilestoneFor(length int) (Milestone, bool) {
	var best Milestone
	found := false
	for _, m := range Milestones {
		if length >= m.Threshold {
			best = m
			found = true
		}
	}
	return best, found
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func uniqueDaysDescending(timestamps []time.Time, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{}, len(timestamps))
	days := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		day := dateOnly(ts.In(loc))
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
