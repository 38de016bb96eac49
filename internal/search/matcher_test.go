package search

import (
	"strings"
	"testing"
)

func fixtureResults() []Result {
	return []Result{
		{ID: "insight-a", Type: TypeInsight, Title: "Kubernetes in practice", Description: "Running cloud workloads", Metadata: map[string]any{"tags": "platform, k8s"}},
		{ID: "insight-b", Type: TypeInsight, Title: "Cloud Cost Review", Description: "Where the money goes", Metadata: map[string]any{"tags": "finops"}},
		{ID: "job-a", Type: TypeJob, Title: "Platform Engineer", Description: "Own our tooling", Metadata: map[string]any{"department": "Cloud Infrastructure", "remote": true}},
		{ID: "tool-a", Type: TypeTool, Title: "Cost Calculator", Description: "Estimate CLOUD spend", Metadata: map[string]any{"tags": "finops"}},
		{ID: "event-a", Type: TypeEvent, Title: "Security Meetup", Description: "Threat modelling", Metadata: map[string]any{"location": "London"}},
	}
}

func ids(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	for _, query := range []string{"", "   ", "\t"} {
		got := Search(query, fixtureResults())
		if got == nil || len(got) != 0 {
			t.Fatalf("query %q: expected empty non-nil slice, got %v", query, got)
		}
	}
}

func TestSearchRanksTitleAboveDescriptionAboveMetadata(t *testing.T) {
	got := ids(Search("cloud", fixtureResults()))
	want := []string{"insight-b", "insight-a", "tool-a", "job-a"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSearchResultsContainQuery(t *testing.T) {
	results := fixtureResults()
	for _, query := range []string{"cloud", "COST", "platform", "london", "goes", "zzz", "in prac"} {
		for _, result := range Search(query, results) {
			needle := strings.ToLower(query)
			haystacks := []string{result.Title, result.Description}
			for _, field := range DefaultMetadataFields {
				haystacks = append(haystacks, metadataText(result.Metadata[field]))
			}
			found := false
			for _, h := range haystacks {
				if strings.Contains(strings.ToLower(h), needle) {
					found = true
				}
			}
			if !found {
				t.Fatalf("query %q returned %s without a substring match", query, result.ID)
			}
		}
	}
}

func TestSearchIgnoresUnlistedMetadata(t *testing.T) {
	m := NewMatcher(WithMetadataFields("tags"))
	if got := m.Match("london", fixtureResults()); len(got) != 0 {
		t.Fatalf("expected location to be ignored, got %v", ids(got))
	}
	if got := Search("london", fixtureResults()); len(got) != 1 {
		t.Fatalf("expected default fields to include location, got %v", ids(got))
	}
}

func TestTokenOverlapRanksBelowSubstringMatches(t *testing.T) {
	m := NewMatcher(WithTokenOverlap(true))

	got := ids(m.Match("security review", fixtureResults()))
	want := []string{"insight-b", "event-a"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if strict := Search("security review", fixtureResults()); len(strict) != 0 {
		t.Fatalf("expected no strict matches, got %v", ids(strict))
	}
}

func TestMatcherFiltersTypesAndLimits(t *testing.T) {
	m := NewMatcher(WithTypes(TypeInsight, TypeTool), WithLimit(2))

	resp := m.Query("cloud", fixtureResults())
	if resp.Total != 3 {
		t.Fatalf("expected total 3 before limit, got %d", resp.Total)
	}
	if got := ids(resp.Results); strings.Join(got, ",") != "insight-b,insight-a" {
		t.Fatalf("unexpected limited results %v", got)
	}
	if len(resp.Suggestions) != 0 {
		t.Fatalf("expected no suggestions when results exist, got %v", resp.Suggestions)
	}
}

func TestQuerySuggestsWhenNothingMatches(t *testing.T) {
	resp := NewMatcher().Query("clowd", fixtureResults())
	if resp.Total != 0 || len(resp.Results) != 0 {
		t.Fatalf("expected no results, got %v", ids(resp.Results))
	}
	if len(resp.Suggestions) == 0 || resp.Suggestions[0] != "cloud" {
		t.Fatalf("expected cloud suggestion, got %v", resp.Suggestions)
	}
}
