package search

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultMetadataFields are the metadata keys a query is matched against
// unless WithMetadataFields says otherwise.
var DefaultMetadataFields = []string{"tags", "author", "category", "location", "department", "industry", "client"}

const (
	scoreTitle       = 3
	scoreDescription = 2
	scoreMetadata    = 1
	scoreTokens      = 0
	noMatch          = -1

	defaultSuggestionLimit = 5
	minTokenRunes          = 2
)

// Matcher ranks results against free-text queries.
type Matcher struct {
	metadataFields  []string
	limit           int
	types           map[Type]struct{}
	tokenOverlap    bool
	suggestionLimit int
	maxDistance     int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMetadataFields replaces the metadata keys searched.
func WithMetadataFields(fields ...string) Option {
	return func(m *Matcher) {
		m.metadataFields = slices.Clone(fields)
	}
}

// WithLimit caps the number of results returned. Zero means unlimited.
func WithLimit(limit int) Option {
	return func(m *Matcher) {
		if limit >= 0 {
			m.limit = limit
		}
	}
}

// WithTypes restricts matches to the given result types.
func WithTypes(types ...Type) Option {
	return func(m *Matcher) {
		if len(types) == 0 {
			m.types = nil
			return
		}
		m.types = make(map[Type]struct{}, len(types))
		for _, kind := range types {
			m.types[kind] = struct{}{}
		}
	}
}

// WithTokenOverlap also accepts records sharing any query word, ranked below
// every substring match.
func WithTokenOverlap(enabled bool) Option {
	return func(m *Matcher) {
		m.tokenOverlap = enabled
	}
}

// WithSuggestionLimit caps the suggestions returned for empty result sets.
func WithSuggestionLimit(limit int) Option {
	return func(m *Matcher) {
		if limit > 0 {
			m.suggestionLimit = limit
		}
	}
}

// WithMaxDistance fixes the edit distance allowed for suggestions instead of
// deriving it from the query length.
func WithMaxDistance(distance int) Option {
	return func(m *Matcher) {
		if distance > 0 {
			m.maxDistance = distance
		}
	}
}

func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		metadataFields:  slices.Clone(DefaultMetadataFields),
		suggestionLimit: defaultSuggestionLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Response is the outcome of a query. Total counts matches before the limit.
type Response struct {
	Query       string   `json:"query"`
	Results     []Result `json:"results"`
	Total       int      `json:"total"`
	Suggestions []string `json:"suggestions"`
}

// Search matches query against results with the default matcher.
func Search(query string, results []Result) []Result {
	return NewMatcher().Match(query, results)
}

// Match returns the results matching query ordered by score. Ties keep their
// input order. A blank query matches nothing.
func (m *Matcher) Match(query string, results []Result) []Result {
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return []Result{}
	}
	queryTokens := significantTokens(needle)

	type scored struct {
		result Result
		score  int
	}
	var matches []scored
	for _, result := range results {
		if m.types != nil {
			if _, ok := m.types[result.Type]; !ok {
				continue
			}
		}
		if score := m.score(result, needle, queryTokens); score > noMatch {
			matches = append(matches, scored{result: result, score: score})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		return b.score - a.score
	})

	out := make([]Result, len(matches))
	for i, match := range matches {
		out[i] = match.result
	}
	return out
}

// Query runs Match, applies the limit and, when nothing matched, attaches
// suggestions drawn from results.
func (m *Matcher) Query(query string, results []Result) Response {
	matched := m.Match(query, results)
	resp := Response{
		Query:       strings.TrimSpace(query),
		Total:       len(matched),
		Results:     matched,
		Suggestions: []string{},
	}
	if m.limit > 0 && len(resp.Results) > m.limit {
		resp.Results = resp.Results[:m.limit]
	}
	if len(matched) == 0 && resp.Query != "" {
		resp.Suggestions = m.Suggestions(query, results)
	}
	return resp
}

func (m *Matcher) score(result Result, needle string, queryTokens []string) int {
	if strings.Contains(fold(result.Title), needle) {
		return scoreTitle
	}
	if strings.Contains(fold(result.Description), needle) {
		return scoreDescription
	}
	for _, field := range m.metadataFields {
		if strings.Contains(fold(metadataText(result.Metadata[field])), needle) {
			return scoreMetadata
		}
	}
	if m.tokenOverlap && len(queryTokens) > 0 && m.sharesToken(result, queryTokens) {
		return scoreTokens
	}
	return noMatch
}

func (m *Matcher) sharesToken(result Result, queryTokens []string) bool {
	fields := []string{result.Title, result.Description}
	for _, field := range m.metadataFields {
		fields = append(fields, metadataText(result.Metadata[field]))
	}
	for _, field := range fields {
		for _, token := range tokenize(field) {
			if slices.Contains(queryTokens, token) {
				return true
			}
		}
	}
	return false
}

func significantTokens(folded string) []string {
	var out []string
	for _, token := range tokenize(folded) {
		if utf8.RuneCountInString(token) >= minTokenRunes && !slices.Contains(out, token) {
			out = append(out, token)
		}
	}
	return out
}
