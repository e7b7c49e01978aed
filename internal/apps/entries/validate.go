package entries

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dongkyukim1/confession-backend/internal/apperr"
	"github.com/dongkyukim1/confession-backend/internal/config"
)

// tagRe permits alphanumerics and Hangul syllables only.
var tagRe = regexp.MustCompile(`^[0-9A-Za-z가-힣]+$`)

// Validator enforces the client-side submission rules server-side.
type Validator struct {
	cfg *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateEntry checks a submission after sanitization. Content is
// expected already trimmed.
func (v *Validator) ValidateEntry(req *CreateEntryRequest) error {
	runes := utf8.RuneCountInString(req.Content)
	if runes < v.cfg.ContentMinLen {
		return apperr.Validation(fmt.Sprintf("내용은 %d자 이상 입력해주세요.", v.cfg.ContentMinLen))
	}
	if runes > v.cfg.ContentMaxLen {
		return apperr.Validation(fmt.Sprintf("내용은 %d자 이하로 입력해주세요.", v.cfg.ContentMaxLen))
	}

	if req.Mood != "" && !validMood(req.Mood) {
		return apperr.Validation("지원하지 않는 기분 이모지입니다.")
	}

	if len(req.Tags) > v.cfg.MaxTags {
		return apperr.Validation(fmt.Sprintf("태그는 최대 %d개까지 가능합니다.", v.cfg.MaxTags))
	}
	for _, tag := range req.Tags {
		if tag == "" || utf8.RuneCountInString(tag) > v.cfg.MaxTagLen || !tagRe.MatchString(tag) {
			return apperr.Validation("태그는 특수문자 없이 한글, 영문, 숫자만 사용할 수 있습니다.")
		}
	}

	if len(req.Images) > v.cfg.MaxImages {
		return apperr.Validation(fmt.Sprintf("사진은 최대 %d장까지 가능합니다.", v.cfg.MaxImages))
	}
	for _, img := range req.Images {
		if !validImageURL(img) {
			return apperr.Validation("사진 주소가 올바르지 않습니다.")
		}
	}
	return nil
}

// ValidateComment checks comment content after trimming.
func (v *Validator) ValidateComment(content string) error {
	if content == "" {
		return apperr.Validation("댓글 내용을 입력해주세요.")
	}
	if utf8.RuneCountInString(content) > v.cfg.CommentMaxLen {
		return apperr.Validation(fmt.Sprintf("댓글은 %d자 이하로 입력해주세요.", v.cfg.CommentMaxLen))
	}
	return nil
}

func validMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

func validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// normalizeTags trims, lower-cases nothing (tags keep their case) and
// drops duplicates while preserving order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
