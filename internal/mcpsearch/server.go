// Package mcpsearch exposes the site search index and insight catalog as Model
// Context Protocol tools.
package mcpsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/search"
	"github.com/goliatone/go-site/pkg/interfaces"
)

const (
	ServerName    = "site-search"
	ServerVersion = "v1.0.0"

	ToolSearchContent = "search_content"
	ToolGetInsight    = "get_insight"
)

// InsightSource resolves a published insight by slug.
type InsightSource interface {
	Insight(slug string) (content.Insight, error)
}

// URLBuilder resolves a public path for a route and slug.
type URLBuilder interface {
	MustPath(route, slug string) string
}

// SearchContentRequest carries the search_content tool arguments.
type SearchContentRequest struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// GetInsightRequest carries the get_insight tool arguments.
type GetInsightRequest struct {
	Slug string `json:"slug"`
}

// Server owns the MCP server and the tool handlers bound to it.
type Server struct {
	engine   *search.Engine
	insights InsightSource
	urls     URLBuilder
	logger   interfaces.Logger
	mcp      *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger tool calls report to.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithURLBuilder attaches public URLs to get_insight responses.
func WithURLBuilder(urls URLBuilder) Option {
	return func(s *Server) {
		s.urls = urls
	}
}

// NewServer registers the search tools against engine and insights.
func NewServer(engine *search.Engine, insights InsightSource, opts ...Option) *Server {
	s := &Server{
		engine:   engine,
		insights: insights,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcp = server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(true))
	s.registerTools()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Listen serves the protocol over the given streams until ctx is done or
// stdin closes.
func (s *Server) Listen(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, stdin, stdout)
}

func (s *Server) registerTools() {
	typeNames := make([]string, 0, len(search.Types))
	for _, kind := range search.Types {
		typeNames = append(typeNames, string(kind))
	}

	searchTool := mcp.NewTool(
		ToolSearchContent,
		mcp.WithDescription("Search insights, events, jobs, tools and case studies on the site"),
		mcp.WithString("query", mcp.Description("Search terms"), mcp.Required()),
		mcp.WithString("type", mcp.Description("Restrict results to one content type"), mcp.Enum(typeNames...)),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return")),
	)
	s.mcp.AddTool(searchTool, mcp.NewTypedToolHandler(s.SearchContent))

	insightTool := mcp.NewTool(
		ToolGetInsight,
		mcp.WithDescription("Fetch an insight article with its body by slug"),
		mcp.WithString("slug", mcp.Description("Insight slug"), mcp.Required()),
	)
	s.mcp.AddTool(insightTool, mcp.NewTypedToolHandler(s.GetInsight))
}

type searchPayload struct {
	Query       string       `json:"query"`
	Total       int          `json:"total"`
	Results     []search.Hit `json:"results"`
	Suggestions []string     `json:"suggestions"`
}

// SearchContent runs a query against the index.
func (s *Server) SearchContent(ctx context.Context, _ mcp.CallToolRequest, req SearchContentRequest) (*mcp.CallToolResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	if s.engine == nil {
		return mcp.NewToolResultError("search index is not available"), nil
	}

	var opts []search.Option
	if raw := strings.TrimSpace(req.Type); raw != "" {
		kind, ok := search.ParseType(raw)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown content type %q", raw)), nil
		}
		opts = append(opts, search.WithTypes(kind))
	}
	if req.Limit > 0 {
		opts = append(opts, search.WithLimit(req.Limit))
	}

	started := time.Now()
	resp := s.engine.Query(query, opts...)
	s.logger.Debug("mcp.search_content", "query", query, "total", resp.Total, "duration", time.Since(started))

	hits := search.Highlighted(resp)
	if hits == nil {
		hits = []search.Hit{}
	}
	suggestions := resp.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return jsonResult(searchPayload{
		Query:       resp.Query,
		Total:       resp.Total,
		Results:     hits,
		Suggestions: suggestions,
	})
}

type insightPayload struct {
	content.Insight
	URL  string `json:"url,omitempty"`
	Body string `json:"body"`
	HTML string `json:"html,omitempty"`
}

// GetInsight returns one insight with its markdown body and, when the catalog
// was loaded with a renderer, the rendered HTML.
func (s *Server) GetInsight(ctx context.Context, _ mcp.CallToolRequest, req GetInsightRequest) (*mcp.CallToolResult, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return mcp.NewToolResultError("slug is required"), nil
	}
	if s.insights == nil {
		return mcp.NewToolResultError("insights are not available"), nil
	}

	insight, err := s.insights.Insight(slug)
	if err != nil {
		if content.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("insight %q not found", slug)), nil
		}
		s.logger.Error("mcp.get_insight.failed", "slug", slug, "error", err)
		return nil, err
	}

	payload := insightPayload{Insight: insight, Body: insight.Body, HTML: insight.HTML}
	if s.urls != nil {
		payload.URL = s.urls.MustPath(string(search.TypeInsight), insight.Slug)
	}
	return jsonResult(payload)
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpsearch: encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
