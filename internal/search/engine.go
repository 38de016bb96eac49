package search

import (
	"slices"

	"github.com/goliatone/go-site/internal/runtimeconfig"
)

// OptionsFromConfig maps search settings onto matcher options.
func OptionsFromConfig(cfg runtimeconfig.SearchConfig) []Option {
	opts := []Option{
		WithLimit(cfg.MaxResults),
		WithSuggestionLimit(cfg.MaxSuggestions),
		WithMaxDistance(cfg.SuggestionDistance),
	}
	if len(cfg.MetadataFields) > 0 {
		opts = append(opts, WithMetadataFields(cfg.MetadataFields...))
	}
	return opts
}

// Engine answers queries against one index with a base set of matcher
// options. Per-query options are applied after the base ones.
type Engine struct {
	index *Index
	base  []Option
}

func NewEngine(index *Index, opts ...Option) *Engine {
	if index == nil {
		index, _ = NewIndex(nil)
	}
	return &Engine{index: index, base: slices.Clone(opts)}
}

func (e *Engine) Index() *Index {
	return e.index
}

func (e *Engine) Query(query string, opts ...Option) Response {
	all := append(slices.Clone(e.base), opts...)
	return NewMatcher(all...).Query(query, e.index.Results())
}

// Hit is a Result with query terms marked up for display.
type Hit struct {
	Result
	HighlightedTitle       string `json:"highlightedTitle"`
	HighlightedDescription string `json:"highlightedDescription"`
}

// Highlighted wraps each result of resp with highlighted title and description.
func Highlighted(resp Response) []Hit {
	hits := make([]Hit, len(resp.Results))
	for i, result := range resp.Results {
		hits[i] = Hit{
			Result:                 result,
			HighlightedTitle:       Highlight(result.Title, resp.Query),
			HighlightedDescription: Highlight(result.Description, resp.Query),
		}
	}
	return hits
}
