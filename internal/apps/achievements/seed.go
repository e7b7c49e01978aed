package achievements

// Achievement keys. Unlock triggers live with the feature that owns
// the event (entries, streaks, missions).
const (
	KeyFirstEntry   = "first_entry"
	KeyTenEntries   = "ten_entries"
	KeyFiftyEntries = "fifty_entries"
	KeyStreak3      = "streak_3"
	KeyStreak7      = "streak_7"
	KeyStreak30     = "streak_30"
	KeyFirstMission = "first_mission"
	KeyTenMissions  = "ten_missions"
)

var definitions = []Achievement{
	{ID: KeyFirstEntry, Title: "첫 고백", Description: "첫 번째 고백을 작성했어요", Icon: "✍️"},
	{ID: KeyTenEntries, Title: "이야기꾼", Description: "고백을 10개 작성했어요", Icon: "📖"},
	{ID: KeyFiftyEntries, Title: "고백 장인", Description: "고백을 50개 작성했어요", Icon: "🏆"},
	{ID: KeyStreak3, Title: "3일 연속", Description: "3일 연속으로 고백을 작성했어요", Icon: "🔥"},
	{ID: KeyStreak7, Title: "일주일 연속", Description: "7일 연속으로 고백을 작성했어요", Icon: "⭐"},
	{ID: KeyStreak30, Title: "한 달 연속", Description: "30일 연속으로 고백을 작성했어요", Icon: "👑"},
	{ID: KeyFirstMission, Title: "첫 미션 완료", Description: "일일 미션을 처음으로 완료했어요", Icon: "🎯"},
	{ID: KeyTenMissions, Title: "미션 헌터", Description: "일일 미션을 10개 완료했어요", Icon: "🎖️"},
}

// StreakAchievementFor maps a streak length to the achievement it
// unlocks, if any.
func StreakAchievementFor(length int) (string, bool) {
	switch {
	case length >= 30:
		return KeyStreak30, true
	case length >= 7:
		return KeyStreak7, true
	case length >= 3:
		return KeyStreak3, true
	}
	return "", false
}
