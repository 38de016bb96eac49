package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-site/internal/email"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/internal/search"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// Mailer sends the transactional messages behind the form endpoints.
type Mailer interface {
	SendContactNotification(ctx context.Context, sub email.ContactSubmission) (email.SendResult, error)
	SendContactConfirmation(ctx context.Context, sub email.ContactSubmission) (email.SendResult, error)
	SendWelcome(ctx context.Context, w email.Welcome) (email.SendResult, error)
	SendEventNotification(ctx context.Context, reg email.EventRegistration) (email.SendResult, error)
	SendEventConfirmation(ctx context.Context, reg email.EventRegistration) (email.SendResult, error)
	SendInsightsNotification(ctx context.Context, sub email.InsightsSubscription) (email.SendResult, error)
	SendInsightsWelcome(ctx context.Context, sub email.InsightsSubscription) (email.SendResult, error)
	SendUnsubscribeConfirmation(ctx context.Context, u email.Unsubscription) (email.SendResult, error)
}

// Subscriptions records list membership.
type Subscriptions interface {
	Subscribe(ctx context.Context, in subscribers.SubscribeInput) (*subscribers.Subscriber, error)
	Unsubscribe(ctx context.Context, in subscribers.UnsubscribeInput) ([]*subscribers.Subscriber, error)
}

// Searcher answers free-text queries.
type Searcher interface {
	Query(query string, opts ...search.Option) search.Response
}

// SiteAPI registers the public API endpoints.
type SiteAPI struct {
	basePath       string
	mailer         Mailer
	subscriptions  Subscriptions
	searcher       Searcher
	allowedOrigins []string
	confirmedURL   string
	errorURL       string
	logger         interfaces.Logger
}

// Option mutates the SiteAPI configuration.
type Option func(*SiteAPI)

// NewSiteAPI constructs a SiteAPI. A mailer is required; subscriptions and
// search are optional. Without subscriptions the event and insights forms
// still send their emails but record nothing, and both unsubscribe routes
// answer 503. Without a searcher the search route answers 503.
func NewSiteAPI(mailer Mailer, opts ...Option) *SiteAPI {
	api := &SiteAPI{
		basePath:       "/api",
		mailer:         mailer,
		allowedOrigins: []string{"*"},
		confirmedURL:   "/unsubscribe/confirmed",
		errorURL:       "/unsubscribe/error",
		logger:         logging.APILogger(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *SiteAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

func WithSubscriptions(subs Subscriptions) Option {
	return func(api *SiteAPI) {
		api.subscriptions = subs
	}
}

func WithSearcher(searcher Searcher) Option {
	return func(api *SiteAPI) {
		api.searcher = searcher
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(api *SiteAPI) {
		api.allowedOrigins = append([]string(nil), origins...)
	}
}

// WithUnsubscribeRedirects sets where one-click unsubscribes land.
func WithUnsubscribeRedirects(confirmed, failed string) Option {
	return func(api *SiteAPI) {
		if strings.TrimSpace(confirmed) != "" {
			api.confirmedURL = confirmed
		}
		if strings.TrimSpace(failed) != "" {
			api.errorURL = failed
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *SiteAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// WithConfig applies the server and subscriber settings from cfg. Redirect
// targets are resolved against the site URL.
func WithConfig(cfg runtimeconfig.Config) Option {
	return func(api *SiteAPI) {
		api.allowedOrigins = append([]string(nil), cfg.Server.AllowedOrigins...)
		site := strings.TrimRight(cfg.SiteURL, "/")
		if path := strings.TrimSpace(cfg.Subscribers.ConfirmedPath); path != "" {
			api.confirmedURL = site + joinPath(path)
		}
		if path := strings.TrimSpace(cfg.Subscribers.ErrorPath); path != "" {
			api.errorURL = site + joinPath(path)
		}
	}
}

// Register attaches the API endpoints to mux.
func (api *SiteAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: site api is nil")
	}
	if api.mailer == nil {
		return fmt.Errorf("http: mailer is required")
	}

	base := joinPath(api.basePath)
	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodPost, "send-email", api.handleSendEmail},
		{http.MethodPost, "send-welcome-email", api.handleSendWelcome},
		{http.MethodPost, "event-subscription", api.handleEventSubscription},
		{http.MethodPost, "subscribe-insights", api.handleSubscribeInsights},
		{http.MethodPost, "unsubscribe", api.handleUnsubscribe},
		{http.MethodGet, "unsubscribe", api.handleUnsubscribeLink},
		{http.MethodGet, "search", api.handleSearch},
		{http.MethodGet, "health", api.handleHealth},
	}

	preflight := map[string]bool{}
	for _, route := range routes {
		path := joinPath(base, route.path)
		mux.HandleFunc(route.method+" "+path, api.instrument(route.handler))
		if !preflight[path] {
			mux.HandleFunc(http.MethodOptions+" "+path, handlePreflight)
			preflight[path] = true
		}
	}
	return nil
}

// Handler returns a ServeMux with every endpoint registered, wrapped in the
// CORS middleware.
func (api *SiteAPI) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return withCORS(api.allowedOrigins, mux), nil
}

func (api *SiteAPI) instrument(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		fields := map[string]any{
			"http_method": r.Method,
			"http_path":   r.URL.Path,
		}
		if requestID != "" {
			fields["request_id"] = requestID
		}
		logging.WithRequestContext(api.logger, r.Method, r.URL.Path, requestID).Debug("api.request")
		next(w, r.WithContext(logging.ContextWithFields(r.Context(), fields)))
	}
}

func (api *SiteAPI) requestLogger(r *http.Request) interfaces.Logger {
	return logging.FromContext(r.Context(), api.logger)
}
