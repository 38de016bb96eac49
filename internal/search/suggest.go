package search

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

const shortQueryRunes = 4

// Suggestions proposes terms close to query drawn from result titles, tags
// and types. It uses the default limit and distance.
func Suggestions(query string, results []Result, limit int) []string {
	return NewMatcher(WithSuggestionLimit(limit)).Suggestions(query, results)
}

// Suggestions returns up to the configured limit of candidate terms that start
// with query or are within the edit distance threshold, closest first and
// alphabetical within a distance.
func (m *Matcher) Suggestions(query string, results []Result) []string {
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return []string{}
	}
	maxDistance := m.maxDistance
	if maxDistance <= 0 {
		maxDistance = 2
		if utf8.RuneCountInString(needle) <= shortQueryRunes {
			maxDistance = 1
		}
	}

	type candidate struct {
		term     string
		distance int
	}
	var picked []candidate
	for _, term := range suggestionTerms(results) {
		if term == needle {
			continue
		}
		distance := levenshtein(needle, term)
		if strings.HasPrefix(term, needle) || distance <= maxDistance {
			picked = append(picked, candidate{term: term, distance: distance})
		}
	}

	slices.SortFunc(picked, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.distance, b.distance), cmp.Compare(a.term, b.term))
	})

	limit := m.suggestionLimit
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	out := make([]string, 0, min(limit, len(picked)))
	for _, c := range picked {
		if len(out) == limit {
			break
		}
		out = append(out, c.term)
	}
	return out
}

func suggestionTerms(results []Result) []string {
	seen := map[string]struct{}{}
	var terms []string
	add := func(text string) {
		for _, token := range tokenize(text) {
			if utf8.RuneCountInString(token) < minTokenRunes {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			terms = append(terms, token)
		}
	}
	for _, result := range results {
		add(result.Title)
		add(metadataText(result.Metadata["tags"]))
		add(string(result.Type))
	}
	return terms
}

// levenshtein counts single-rune insertions, deletions and substitutions.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
