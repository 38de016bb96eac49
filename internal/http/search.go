package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-site/internal/search"
)

type searchResponse struct {
	Query       string       `json:"query"`
	Results     []search.Hit `json:"results"`
	Total       int          `json:"total"`
	Suggestions []string     `json:"suggestions"`
}

func (api *SiteAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	if api.searcher == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "unavailable", Message: "Search is not available"})
		return
	}

	query := r.URL.Query()
	var opts []search.Option
	if raw := strings.TrimSpace(query.Get("type")); raw != "" {
		var types []search.Type
		for _, part := range strings.Split(raw, ",") {
			kind, ok := search.ParseType(part)
			if !ok {
				writeError(w, &badRequestError{cause: fmt.Errorf("unknown type %q", strings.TrimSpace(part))})
				return
			}
			types = append(types, kind)
		}
		opts = append(opts, search.WithTypes(types...))
	}
	if limit := parseIntQuery(query.Get("limit"), 0); limit > 0 {
		opts = append(opts, search.WithLimit(limit))
	}

	resp := api.searcher.Query(query.Get("q"), opts...)
	api.requestLogger(r).Debug("api.search", "total", resp.Total)
	writeJSON(w, http.StatusOK, searchResponse{
		Query:       resp.Query,
		Results:     search.Highlighted(resp),
		Total:       resp.Total,
		Suggestions: resp.Suggestions,
	})
}

func (api *SiteAPI) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"search": api.searcher != nil,
	})
}
