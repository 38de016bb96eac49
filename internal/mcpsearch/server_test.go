package mcpsearch_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/mcpsearch"
	"github.com/goliatone/go-site/internal/routes"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/internal/search"
)

func newTestServer(t *testing.T) *mcpsearch.Server {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	catalog, err := content.Load(context.Background(),
		os.DirFS(filepath.Join("..", "content", "testdata", "site")),
		content.OptionsFromConfig(cfg.Content, nil))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	resolver := routes.FromConfig(cfg)
	index, err := search.BuildIndex(catalog, resolver)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}
	engine := search.NewEngine(index, search.OptionsFromConfig(cfg.Search)...)
	return mcpsearch.NewServer(engine, catalog, mcpsearch.WithURLBuilder(resolver))
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("expected tool content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestSearchContentReturnsHighlightedHits(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.SearchContent(context.Background(), mcp.CallToolRequest{}, mcpsearch.SearchContentRequest{
		Query: "cloud",
		Type:  "insight",
	})
	if err != nil {
		t.Fatalf("search_content: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var payload struct {
		Total   int `json:"total"`
		Results []struct {
			Type             string `json:"type"`
			HighlightedTitle string `json:"highlightedTitle"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Total == 0 || len(payload.Results) == 0 {
		t.Fatalf("expected matches, got %+v", payload)
	}
	for _, hit := range payload.Results {
		if hit.Type != "insight" {
			t.Fatalf("type filter ignored: %+v", hit)
		}
	}
	highlighted := false
	for _, hit := range payload.Results {
		if strings.Contains(hit.HighlightedTitle, "<mark>Cloud</mark>") {
			highlighted = true
		}
	}
	if !highlighted {
		t.Fatalf("expected a highlighted title in %+v", payload.Results)
	}
}

func TestSearchContentRejectsBadArguments(t *testing.T) {
	srv := newTestServer(t)
	cases := map[string]mcpsearch.SearchContentRequest{
		"empty query":  {Query: "  "},
		"unknown type": {Query: "cloud", Type: "podcast"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			result, err := srv.SearchContent(context.Background(), mcp.CallToolRequest{}, req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Fatalf("expected tool error result")
			}
		})
	}
}

func TestSearchContentSuggestsOnMiss(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.SearchContent(context.Background(), mcp.CallToolRequest{}, mcpsearch.SearchContentRequest{Query: "platfrom"})
	if err != nil {
		t.Fatalf("search_content: %v", err)
	}
	var payload struct {
		Total       int      `json:"total"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Total != 0 || len(payload.Suggestions) == 0 {
		t.Fatalf("expected suggestions for a misspelling, got %+v", payload)
	}
}

func TestGetInsight(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.GetInsight(context.Background(), mcp.CallToolRequest{}, mcpsearch.GetInsightRequest{Slug: "cloud-cost-review"})
	if err != nil {
		t.Fatalf("get_insight: %v", err)
	}
	var payload struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
		URL   string `json:"url"`
		Body  string `json:"body"`
		HTML  string `json:"html"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.URL != "/insights/cloud-cost-review" {
		t.Fatalf("unexpected url %q", payload.URL)
	}
	if !strings.Contains(payload.Body, "idle capacity") {
		t.Fatalf("expected body in payload")
	}
	if !strings.Contains(payload.HTML, "<h1 id=\"cloud-cost-review\">") {
		t.Fatalf("expected rendered html in payload, got %q", payload.HTML)
	}

	missing, err := srv.GetInsight(context.Background(), mcp.CallToolRequest{}, mcpsearch.GetInsightRequest{Slug: "nope"})
	if err != nil {
		t.Fatalf("unexpected error for missing insight: %v", err)
	}
	if !missing.IsError {
		t.Fatalf("expected tool error for missing insight")
	}
}

func TestServerRegistersTools(t *testing.T) {
	srv := newTestServer(t)
	if srv.MCPServer() == nil {
		t.Fatalf("expected mcp server")
	}
}
