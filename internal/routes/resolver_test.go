package routes

import (
	"errors"
	"net/url"
	"testing"

	"github.com/goliatone/go-site/internal/runtimeconfig"
)

func TestResolverBuildsAbsoluteAndRelativeURLs(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.SiteURL = "https://example.com"
	resolver := FromConfig(cfg)

	absolute, err := resolver.Absolute(Insight, "cloud-cost-review", nil)
	if err != nil {
		t.Fatalf("Absolute: %v", err)
	}
	if absolute != "https://example.com/insights/cloud-cost-review" {
		t.Fatalf("unexpected absolute url %q", absolute)
	}

	path, err := resolver.Path(CaseStudy, "retail-replatform", nil)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if path != "/case-studies/retail-replatform" {
		t.Fatalf("unexpected path %q", path)
	}
	if got := resolver.MustPath(Job, "senior-go-engineer"); got != "/careers/senior-go-engineer" {
		t.Fatalf("unexpected job path %q", got)
	}
}

func TestResolverAddsQuery(t *testing.T) {
	resolver := NewResolver("https://example.com", map[string]string{Unsubscribe: "/api/unsubscribe"})

	path, err := resolver.Path(Unsubscribe, "", map[string]string{"email": "a@example.com"})
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	parsed, err := url.Parse(path)
	if err != nil {
		t.Fatalf("parse %q: %v", path, err)
	}
	if parsed.Path != "/api/unsubscribe" || parsed.Query().Get("email") != "a@example.com" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestResolverUnknownRoute(t *testing.T) {
	resolver := NewResolver("https://example.com", map[string]string{Tool: "/tools/:slug"})

	if _, err := resolver.Absolute("pricing", "", nil); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("expected ErrUnknownRoute, got %v", err)
	}
	if got := resolver.MustPath("pricing", ""); got != "/" {
		t.Fatalf("expected fallback path, got %q", got)
	}
}
