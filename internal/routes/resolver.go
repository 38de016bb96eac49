package routes

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-site/internal/runtimeconfig"
)

const groupName = "site"

// Route names registered by DefaultPaths.
const (
	Insight     = "insight"
	Event       = "event"
	Job         = "job"
	Tool        = "tool"
	CaseStudy   = "case-study"
	Unsubscribe = "unsubscribe"
)

var ErrUnknownRoute = errors.New("routes: unknown route")

// Resolver builds site URLs from named go-urlkit routes.
type Resolver struct {
	manager *urlkit.RouteManager
	baseURL string
	paths   map[string]string

	mu    sync.RWMutex
	group *urlkit.Group
}

// NewResolver registers paths under a single group rooted at baseURL.
func NewResolver(baseURL string, paths map[string]string) *Resolver {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	registered := make(map[string]string, len(paths))
	for name, path := range paths {
		if name = strings.TrimSpace(name); name != "" && strings.TrimSpace(path) != "" {
			registered[name] = strings.TrimSpace(path)
		}
	}

	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    groupName,
				BaseURL: baseURL,
				Paths:   registered,
			},
		},
	})

	return &Resolver{
		manager: manager,
		baseURL: baseURL,
		paths:   registered,
	}
}

// FromConfig builds a resolver from the site URL and route table.
func FromConfig(cfg runtimeconfig.Config) *Resolver {
	return NewResolver(cfg.SiteURL, cfg.Routes.Paths)
}

// Absolute returns the fully qualified URL for route with the given slug.
func (r *Resolver) Absolute(route, slug string, query map[string]string) (string, error) {
	if _, ok := r.paths[route]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, route)
	}

	group, err := r.siteGroup()
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	if slug != "" {
		builder.WithParam("slug", slug)
	}
	for key, value := range query {
		builder.WithQuery(key, value)
	}
	return builder.Build()
}

// Path returns the site-relative form of Absolute, keeping any query string.
func (r *Resolver) Path(route, slug string, query map[string]string) (string, error) {
	absolute, err := r.Absolute(route, slug, query)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(absolute)
	if err != nil {
		return "", fmt.Errorf("routes: parse %q: %w", absolute, err)
	}
	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	return path, nil
}

// MustPath is Path for callers whose routes are fixed at build time. Unknown
// routes fall back to "/".
func (r *Resolver) MustPath(route, slug string) string {
	path, err := r.Path(route, slug, nil)
	if err != nil {
		return "/"
	}
	return path
}

func (r *Resolver) siteGroup() (*urlkit.Group, error) {
	r.mu.RLock()
	group := r.group
	r.mu.RUnlock()
	if group != nil {
		return group, nil
	}

	group, err := lookupGroup(r.manager, groupName)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.group = group
	r.mu.Unlock()
	return group, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, errors.New("routes: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %q: %v", ErrUnknownRoute, route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}
