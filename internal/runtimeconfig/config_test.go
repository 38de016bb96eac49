package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-site/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresEmailSettingsWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Email.Enabled = true

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrEmailAPIKeyRequired) {
		t.Fatalf("expected ErrEmailAPIKeyRequired, got %v", err)
	}

	cfg.Email.APIKey = "re_test"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrEmailRecipientRequired) {
		t.Fatalf("expected ErrEmailRecipientRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresDSNForBunStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = "bun"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Format = "xml"

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestContentPaths(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if got := cfg.Content.InsightsPath(); got != "content/insights" {
		t.Fatalf("unexpected insights path %q", got)
	}
	if got := cfg.Content.CaseStudiesPath(); got != "content/case-studies" {
		t.Fatalf("unexpected case studies path %q", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	env := map[string]string{
		"RESEND_API_KEY": "re_123",
		"CONTACT_EMAIL":  "team@example.com, sales@example.com",
		"PORT":           "9090",
		"DATABASE_DSN":   "file:site.db",
		"LOG_LEVEL":      "  ",
	}
	runtimeconfig.ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})

	if !cfg.Email.Enabled || cfg.Email.APIKey != "re_123" {
		t.Fatalf("expected email enabled with api key, got %+v", cfg.Email)
	}
	if len(cfg.Email.NotifyTo) != 2 || cfg.Email.NotifyTo[1] != "sales@example.com" {
		t.Fatalf("unexpected notify list %v", cfg.Email.NotifyTo)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Storage.Provider != "bun" || cfg.Storage.DSN != "file:site.db" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected blank LOG_LEVEL to be ignored, got %q", cfg.Logging.Level)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	data := []byte("site_name: Test Site\nsearch:\n  max_suggestions: 3\nlint:\n  report_path: out/report.json\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SiteName != "Test Site" {
		t.Fatalf("unexpected site name %q", cfg.SiteName)
	}
	if cfg.Search.MaxSuggestions != 3 {
		t.Fatalf("expected max_suggestions 3, got %d", cfg.Search.MaxSuggestions)
	}
	if cfg.Search.MaxResults != 20 {
		t.Fatalf("expected defaults to survive, got %d", cfg.Search.MaxResults)
	}
	if cfg.Lint.ReportPath != "out/report.json" {
		t.Fatalf("unexpected report path %q", cfg.Lint.ReportPath)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(path, []byte("site_name: [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
