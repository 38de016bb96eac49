package site

import (
	"context"
	"net/http"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/di"
	"github.com/goliatone/go-site/internal/email"
	"github.com/goliatone/go-site/internal/search"
	"github.com/goliatone/go-site/internal/subscribers"
)

// Catalog exports the loaded content catalog.
type Catalog = content.Catalog

// SearchEngine exports the query engine over the flattened index.
type SearchEngine = search.Engine

// Mailer exports the templated transactional mailer.
type Mailer = email.Mailer

// SubscriberService exports the mailing list bookkeeping service.
type SubscriberService = subscribers.Service

// Option configures the runtime container.
type Option = di.Option

var (
	WithLoggerProvider       = di.WithLoggerProvider
	WithContentFS            = di.WithContentFS
	WithSender               = di.WithSender
	WithSubscriberRepository = di.WithSubscriberRepository
	WithBunDB                = di.WithBunDB
	WithCache                = di.WithCache
)

// Module represents the top level site runtime façade.
type Module struct {
	container *di.Container
}

// New loads content and wires the site services described by cfg.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the content loaded at startup.
func (m *Module) Catalog() *Catalog {
	return m.container.Catalog()
}

// Search returns the query engine.
func (m *Module) Search() *SearchEngine {
	return m.container.SearchEngine()
}

// Mailer returns the configured mailer.
func (m *Module) Mailer() *Mailer {
	return m.container.Mailer()
}

// Subscribers returns the subscriber service.
func (m *Module) Subscribers() *SubscriberService {
	return m.container.SubscriberService()
}

// Handler returns the public API wrapped with CORS handling.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.API().Handler()
}

// Close releases storage opened by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
