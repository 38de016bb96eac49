package site_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	site "github.com/goliatone/go-site"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := site.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadConfigAppliesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte("site_url: https://northwind.test\nsearch:\n  max_results: 7\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := site.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Search.MaxResults != 7 {
		t.Fatalf("expected max results 7, got %d", cfg.Search.MaxResults)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := site.DefaultConfig()
	cfg.Content.Dir = ""
	if _, err := site.New(context.Background(), cfg); !errors.Is(err, site.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestModuleServesSearch(t *testing.T) {
	cfg := site.DefaultConfig()
	cfg.Content.Dir = filepath.Join("internal", "content", "testdata", "site")
	cfg.Logging.Provider = "none"

	module, err := site.New(context.Background(), cfg, site.WithLoggerProvider(nil))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })

	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=cloud", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Results []struct {
			HighlightedTitle string `json:"highlightedTitle"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	highlighted := false
	for _, hit := range payload.Results {
		highlighted = highlighted || strings.Contains(hit.HighlightedTitle, "<mark>")
	}
	if !highlighted {
		t.Fatalf("expected highlighted results, got %s", rec.Body.String())
	}
}
