package search

import (
	"html"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

type span struct {
	start, end int
}

// Highlight HTML-escapes text and wraps every case-folded occurrence of
// query, and of each query word of two or more runes, in <mark> tags.
// Overlapping and touching occurrences share one tag.
func Highlight(text, query string) string {
	query = strings.TrimSpace(query)
	if text == "" || query == "" {
		return html.EscapeString(text)
	}

	caser := cases.Fold()
	haystack := []rune(text)
	folded, origin := foldRunes(caser, haystack)

	needles := [][]rune{[]rune(caser.String(query))}
	for _, token := range strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(token)) >= minTokenRunes {
			needles = append(needles, []rune(caser.String(token)))
		}
	}

	var spans []span
	for _, needle := range needles {
		for _, s := range findAll(folded, needle) {
			spans = append(spans, span{start: origin[s.start], end: origin[s.end-1] + 1})
		}
	}
	if len(spans) == 0 {
		return html.EscapeString(text)
	}
	spans = mergeSpans(spans)

	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		b.WriteString(html.EscapeString(string(haystack[cursor:s.start])))
		b.WriteString(markOpen)
		b.WriteString(html.EscapeString(string(haystack[s.start:s.end])))
		b.WriteString(markClose)
		cursor = s.end
	}
	b.WriteString(html.EscapeString(string(haystack[cursor:])))
	return b.String()
}

// foldRunes case-folds runes the way the matcher does. A rune may fold to
// several (ß to ss); origin maps every folded rune back to its source index.
func foldRunes(caser cases.Caser, runes []rune) (folded []rune, origin []int) {
	folded = make([]rune, 0, len(runes))
	origin = make([]int, 0, len(runes))
	for i, r := range runes {
		for _, f := range caser.String(string(r)) {
			folded = append(folded, f)
			origin = append(origin, i)
		}
	}
	return folded, origin
}

func findAll(haystack, needle []rune) []span {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return nil
	}
	var spans []span
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			spans = append(spans, span{start: i, end: i + len(needle)})
		}
	}
	return spans
}

func mergeSpans(spans []span) []span {
	slices.SortFunc(spans, func(a, b span) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return b.end - a.end
	})
	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
