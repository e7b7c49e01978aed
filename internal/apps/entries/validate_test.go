package entries

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/config"
)

func testValidator() *Validator {
	return NewValidator(&config.Config{
		ContentMinLen: 10,
		ContentMaxLen: 500,
		MaxTags:       5,
		MaxTagLen:     20,
		MaxImages:     3,
		CommentMaxLen: 200,
	})
}

func TestValidateEntryContentBounds(t *testing.T) {
	v := testValidator()

	err := v.ValidateEntry(&CreateEntryRequest{Content: "짧음"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	err = v.ValidateEntry(&CreateEntryRequest{Content: strings.Repeat("가", 501)})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{Content: "이것은 유효한 고백 내용입니다"}))
	assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{Content: strings.Repeat("가", 500)}))
	assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{Content: strings.Repeat("a", 10)}))
}

func TestValidateEntryMood(t *testing.T) {
	v := testValidator()
	content := "이것은 유효한 고백 내용입니다"

	for _, mood := range Moods {
		assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{Content: content, Mood: mood}))
	}

	err := v.ValidateEntry(&CreateEntryRequest{Content: content, Mood: "🙃"})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	// mood is optional
	assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{Content: content}))
}

func TestValidateEntryTags(t *testing.T) {
	v := testValidator()
	content := "이것은 유효한 고백 내용입니다"

	assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{
		Content: content,
		Tags:    []string{"일상", "고민", "daily", "mood2"},
	}))

	err := v.ValidateEntry(&CreateEntryRequest{
		Content: content,
		Tags:    []string{"a", "b", "c", "d", "e", "f"},
	})
	require.Error(t, err)

	for _, bad := range []string{"태그!", "has space", "#hash", "한글-영문", ""} {
		err := v.ValidateEntry(&CreateEntryRequest{Content: content, Tags: []string{bad}})
		assert.Error(t, err, "tag %q should be rejected", bad)
	}

	err = v.ValidateEntry(&CreateEntryRequest{
		Content: content,
		Tags:    []string{strings.Repeat("가", 21)},
	})
	assert.Error(t, err)
}

func TestValidateEntryImages(t *testing.T) {
	v := testValidator()
	content := "이것은 유효한 고백 내용입니다"

	assert.NoError(t, v.ValidateEntry(&CreateEntryRequest{
		Content: content,
		Images:  []string{"https://cdn.example.com/a.jpg", "http://cdn.example.com/b.png"},
	}))

	err := v.ValidateEntry(&CreateEntryRequest{
		Content: content,
		Images:  []string{"https://a.jpg", "https://b.jpg", "https://c.jpg", "https://d.jpg"},
	})
	assert.Error(t, err)

	for _, bad := range []string{"ftp://x.com/a.jpg", "javascript:alert(1)", "not a url", "https://"} {
		err := v.ValidateEntry(&CreateEntryRequest{Content: content, Images: []string{bad}})
		assert.Error(t, err, "image %q should be rejected", bad)
	}
}

func TestValidateComment(t *testing.T) {
	v := testValidator()

	assert.NoError(t, v.ValidateComment("저도 비슷한 경험이 있어요"))

	err := v.ValidateComment("")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))

	assert.NoError(t, v.ValidateComment(strings.Repeat("가", 200)))
	assert.Error(t, v.ValidateComment(strings.Repeat("가", 201)))
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" 일상 ", "고민", "일상", "", "  "})
	assert.Equal(t, []string{"일상", "고민"}, got)
}
