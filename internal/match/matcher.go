// Package match selects which existing entry to reveal to an author who
// just submitted their own. Scoring prefers tag overlap, then mood and
// content similarity, with a randomized tie-break for variance.
package match

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Candidate is the matcher's view of an entry. Callers map their
// storage models into this shape.
type Candidate struct {
	ID      uuid.UUID
	Content string
	Mood    string
	Tags    []string
}

// Weights for the overall score. The defaults are load-bearing: clients
// of the old backend expect the same ranking.
type Weights struct {
	Tag     float64
	Mood    float64
	Content float64
}

var DefaultWeights = Weights{Tag: 0.5, Mood: 0.2, Content: 0.3}

const (
	minScore     = 0.05
	tagMatchTopN = 3
	scoredTopN   = 5
)

// Matcher scores and picks candidates. The random source is injected so
// selection is deterministic under test.
type Matcher struct {
	weights Weights
	rng     *rand.Rand
}

func New(weights Weights, rng *rand.Rand) *Matcher {
	return &Matcher{weights: weights, rng: rng}
}

// TagSimilarity is the Jaccard index over lower-cased tag sets.
// It is 0 when either side has no tags.
func TagSimilarity(a, b []string) float64 {
	return jaccard(lowerSet(a), lowerSet(b))
}

// MoodSimilarity is 1 when both moods are present and equal, else 0.
func MoodSimilarity(a, b string) float64 {
	if a != "" && a == b {
		return 1
	}
	return 0
}

// ContentSimilarity is the Jaccard index over qualifying tokens of the
// two texts. It is 0 when either side has no qualifying tokens.
func ContentSimilarity(a, b string) float64 {
	return jaccard(tokenSet(a), tokenSet(b))
}

// Score is the weighted sum of the three similarities.
func (m *Matcher) Score(source, candidate Candidate) float64 {
	return m.weights.Tag*TagSimilarity(source.Tags, candidate.Tags) +
		m.weights.Mood*MoodSimilarity(source.Mood, candidate.Mood) +
		m.weights.Content*ContentSimilarity(source.Content, candidate.Content)
}

// Select picks the candidate to reveal. It returns false only when the
// candidate list is empty, which callers treat as the first-author
// outcome rather than an error.
func (m *Matcher) Select(source Candidate, candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	// 1. Restrict to candidates sharing at least one tag.
	if len(source.Tags) > 0 {
		shared := make([]Candidate, 0, len(candidates))
		srcTags := lowerSet(source.Tags)
		for _, c := range candidates {
			if overlaps(srcTags, lowerSet(c.Tags)) {
				shared = append(shared, c)
			}
		}
		if len(shared) > 0 {
			return m.pickTop(source, shared, tagMatchTopN), true
		}
	}

	// 2. Score everything and keep candidates above the floor.
	scored := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if m.Score(source, c) >= minScore {
			scored = append(scored, c)
		}
	}
	if len(scored) > 0 {
		return m.pickTop(source, scored, scoredTopN), true
	}

	// 3. Nothing similar at all: uniform random.
	return candidates[m.rng.Intn(len(candidates))], true
}

// pickTop sorts descending by score and picks uniformly among the top n.
func (m *Matcher) pickTop(source Candidate, candidates []Candidate, n int) Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return m.Score(source, candidates[i]) > m.Score(source, candidates[j])
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	return candidates[m.rng.Intn(n)]
}

func lowerSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// tokenSet extracts lower-cased tokens of at least two runes. Runes
// outside the permitted alphanumeric/Hangul set act as separators.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		if len([]rune(tok)) >= 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}

func isSeparator(r rune) bool {
	if r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return false
	}
	if r >= 0xAC00 && r <= 0xD7A3 { // Hangul syllables
		return false
	}
	return true
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func overlaps(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
