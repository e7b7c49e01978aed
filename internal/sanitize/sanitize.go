// Package sanitize strips markup that could execute when entry content
// is rendered by a client that trusts raw text.
package sanitize

import "regexp"

var (
	scriptTagRe    = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	openScriptRe   = regexp.MustCompile(`(?i)<\s*/?\s*script[^>]*>`)
	jsURIRe        = regexp.MustCompile(`(?i)javascript\s*:`)
	eventHandlerRe = regexp.MustCompile(`(?i)\son\w+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
)

// Clean removes script tags, javascript: URIs and inline event handler
// attributes from free text.
func Clean(s string) string {
	s = scriptTagRe.ReplaceAllString(s, "")
	s = openScriptRe.ReplaceAllString(s, "")
	s = jsURIRe.ReplaceAllString(s, "")
	s = eventHandlerRe.ReplaceAllString(s, "")
	return s
}
