package search

import (
	"errors"
	"fmt"
	"slices"
)

var ErrDuplicateID = errors.New("search: duplicate result id")

// Index is an immutable, ordered set of results with unique IDs.
type Index struct {
	results []Result
	byID    map[string]int
}

// NewIndex copies results, rejecting duplicate IDs.
func NewIndex(results []Result) (*Index, error) {
	idx := &Index{
		results: slices.Clone(results),
		byID:    make(map[string]int, len(results)),
	}
	for i, result := range idx.results {
		if _, exists := idx.byID[result.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, result.ID)
		}
		idx.byID[result.ID] = i
	}
	return idx, nil
}

// BuildIndex is Build followed by NewIndex.
func BuildIndex(source Source, urls URLBuilder) (*Index, error) {
	return NewIndex(Build(source, urls))
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.results)
}

// Results returns the indexed results in build order.
func (idx *Index) Results() []Result {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.results)
}

func (idx *Index) Get(id string) (Result, bool) {
	if idx == nil {
		return Result{}, false
	}
	i, ok := idx.byID[id]
	if !ok {
		return Result{}, false
	}
	return idx.results[i], true
}

// CountByType reports how many results each type contributed.
func (idx *Index) CountByType() map[Type]int {
	counts := make(map[Type]int, len(Types))
	if idx == nil {
		return counts
	}
	for _, result := range idx.results {
		counts[result.Type]++
	}
	return counts
}
