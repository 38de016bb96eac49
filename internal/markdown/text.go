package markdown

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
)

const wordsPerMinute = 200

var (
	codeFencePattern  = regexp.MustCompile("(?s)```.*?```")
	importLinePattern = regexp.MustCompile(`(?m)^(import|export)\s.*$`)
	tagPattern        = regexp.MustCompile(`</?[A-Za-z][^>]*>`)
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headingPattern    = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	listPattern       = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
	emphasisPattern   = regexp.MustCompile("[*_`~]+")
	blockquotePattern = regexp.MustCompile(`(?m)^\s*>\s?`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

// PlainText strips MDX component tags, import lines and Markdown syntax from
// body, leaving space-separated prose.
func PlainText(body []byte) string {
	text := string(body)
	text = codeFencePattern.ReplaceAllString(text, " ")
	text = importLinePattern.ReplaceAllString(text, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = imagePattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = headingPattern.ReplaceAllString(text, "")
	text = listPattern.ReplaceAllString(text, "")
	text = blockquotePattern.ReplaceAllString(text, "")
	text = emphasisPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// ReadingTime estimates whole minutes to read body, never less than one.
func ReadingTime(body []byte) int {
	words := len(strings.Fields(PlainText(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Excerpt returns the first limit runes of the body prose, cut at a word
// boundary and suffixed with an ellipsis when truncated.
func Excerpt(body []byte, limit int) string {
	text := PlainText(body)
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// NormalizeSlug normalises value, falling back to the file base name when the
// value is empty or cannot be normalised.
func NormalizeSlug(value, fallback string) string {
	for _, candidate := range []string{value, fallback} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
			return normalized
		}
	}
	return strings.ToLower(strings.TrimSpace(fallback))
}
