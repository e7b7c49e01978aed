package match

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(seed int64) *Matcher {
	return New(DefaultWeights, rand.New(rand.NewSource(seed)))
}

func TestTagSimilarity(t *testing.T) {
	t.Run("symmetry", func(t *testing.T) {
		a := []string{"일상", "고민"}
		b := []string{"고민", "연애"}
		assert.Equal(t, TagSimilarity(a, b), TagSimilarity(b, a))
	})

	t.Run("zero when either side empty", func(t *testing.T) {
		assert.Zero(t, TagSimilarity(nil, []string{"일상"}))
		assert.Zero(t, TagSimilarity([]string{"일상"}, nil))
		assert.Zero(t, TagSimilarity(nil, nil))
	})

	t.Run("one for identical sets", func(t *testing.T) {
		assert.Equal(t, 1.0, TagSimilarity([]string{"일상", "고민"}, []string{"고민", "일상"}))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, 1.0, TagSimilarity([]string{"Work"}, []string{"work"}))
	})

	t.Run("partial overlap", func(t *testing.T) {
		// {a,b} vs {b,c}: intersection 1, union 3.
		got := TagSimilarity([]string{"a", "b"}, []string{"b", "c"})
		assert.InDelta(t, 1.0/3.0, got, 1e-9)
	})
}

func TestMoodSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, MoodSimilarity("😊", "😊"))
	assert.Zero(t, MoodSimilarity("😊", "😢"))
	assert.Zero(t, MoodSimilarity("", ""))
	assert.Zero(t, MoodSimilarity("😊", ""))
}

func TestContentSimilarity(t *testing.T) {
	t.Run("identical korean text", func(t *testing.T) {
		text := "오늘 회사에서 힘든 하루를 보냈다"
		assert.Equal(t, 1.0, ContentSimilarity(text, text))
	})

	t.Run("no qualifying tokens", func(t *testing.T) {
		assert.Zero(t, ContentSimilarity("! ? .", "오늘 하루"))
		assert.Zero(t, ContentSimilarity("a b c", "오늘 하루")) // single-rune tokens dropped
	})

	t.Run("punctuation separates tokens", func(t *testing.T) {
		assert.Equal(t, 1.0, ContentSimilarity("hello,world", "world hello"))
	})
}

func TestScoreWeights(t *testing.T) {
	m := newTestMatcher(1)
	src := Candidate{Content: "오늘 하루", Mood: "😊", Tags: []string{"일상"}}

	t.Run("full match scores one", func(t *testing.T) {
		assert.InDelta(t, 1.0, m.Score(src, src), 1e-9)
	})

	t.Run("tag only match scores tag weight", func(t *testing.T) {
		c := Candidate{Content: "전혀 다른 내용이다", Mood: "😢", Tags: []string{"일상"}}
		assert.InDelta(t, 0.5, m.Score(src, c), 1e-9)
	})

	t.Run("mood only match scores mood weight", func(t *testing.T) {
		c := Candidate{Content: "전혀 다른 내용이다", Mood: "😊", Tags: []string{"연애"}}
		assert.InDelta(t, 0.2, m.Score(src, c), 1e-9)
	})
}

func TestSelectEmptyCandidates(t *testing.T) {
	m := newTestMatcher(1)
	_, ok := m.Select(Candidate{Content: "첫 번째 고백"}, nil)
	assert.False(t, ok)
}

func TestSelectOnlyReturnsTagSharingCandidates(t *testing.T) {
	m := newTestMatcher(42)
	src := Candidate{Content: "요즘 일상이 단조롭다", Tags: []string{"일상"}}

	sharing := map[uuid.UUID]bool{}
	var candidates []Candidate
	for i := 0; i < 4; i++ {
		c := Candidate{ID: uuid.New(), Content: "다른 이야기", Tags: []string{"연애"}}
		candidates = append(candidates, c)
	}
	for i := 0; i < 3; i++ {
		c := Candidate{ID: uuid.New(), Content: "일상 이야기", Tags: []string{"일상", "고민"}}
		sharing[c.ID] = true
		candidates = append(candidates, c)
	}

	for i := 0; i < 100; i++ {
		picked, ok := m.Select(src, candidates)
		require.True(t, ok)
		assert.True(t, sharing[picked.ID], "run %d picked a non-tag-sharing candidate", i)
	}
}

func TestSelectFallsBackToScoredSet(t *testing.T) {
	m := newTestMatcher(7)
	// Source has tags nothing shares; similar content should still win
	// over the uniform-random fallback.
	src := Candidate{Content: "오늘 회사에서 정말 힘든 하루를 보냈다", Tags: []string{"회사"}}
	similar := Candidate{ID: uuid.New(), Content: "회사에서 힘든 하루였다 정말"}
	unrelated := Candidate{ID: uuid.New(), Content: "완전히 무관한 주제의 글"}

	hits := 0
	for i := 0; i < 50; i++ {
		picked, ok := m.Select(src, []Candidate{similar, unrelated})
		require.True(t, ok)
		if picked.ID == similar.ID {
			hits++
		}
	}
	// unrelated scores below the floor, so similar must always win.
	assert.Equal(t, 50, hits)
}

func TestSelectUniformFallback(t *testing.T) {
	m := newTestMatcher(3)
	src := Candidate{Content: "가나다라 마바사아"}
	candidates := []Candidate{
		{ID: uuid.New(), Content: "xyz zyx"},
		{ID: uuid.New(), Content: "qrs srq"},
	}

	picked, ok := m.Select(src, candidates)
	require.True(t, ok)
	assert.Contains(t, []uuid.UUID{candidates[0].ID, candidates[1].ID}, picked.ID)
}

func TestSelectDeterministicWithSeed(t *testing.T) {
	src := Candidate{Content: "비슷한 내용의 고백", Tags: []string{"일상"}}
	var candidates []Candidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, Candidate{ID: uuid.New(), Content: "일상 고백", Tags: []string{"일상"}})
	}

	a, _ := newTestMatcher(99).Select(src, candidates)
	b, _ := newTestMatcher(99).Select(src, candidates)
	assert.Equal(t, a.ID, b.ID)
}
