package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-site/internal/content"
	"github.com/goliatone/go-site/internal/email"
	sitehttp "github.com/goliatone/go-site/internal/http"
	"github.com/goliatone/go-site/internal/logging"
	"github.com/goliatone/go-site/internal/logging/gologger"
	"github.com/goliatone/go-site/internal/routes"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/internal/search"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/pkg/interfaces"
)

// Container wires the site services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider    interfaces.LoggerProvider
	loggerProviderSet bool
	logger            interfaces.Logger

	contentFS fs.FS
	catalog   *content.Catalog
	resolver  *routes.Resolver
	index     *search.Index
	engine    *search.Engine

	sender email.Sender
	mailer *email.Mailer

	bunDB          *bun.DB
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	subscriberRepo subscribers.Repository
	subscriberSvc  *subscribers.Service

	closers []func() error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
// A nil provider silences every module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
		c.loggerProviderSet = true
	}
}

// WithContentFS replaces the content root, which defaults to Content.Dir on
// the local disk.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.contentFS = fsys
		}
	}
}

// WithSender overrides the email transport chosen from the email config.
func WithSender(sender email.Sender) Option {
	return func(c *Container) {
		if sender != nil {
			c.sender = sender
		}
	}
}

// WithSubscriberRepository overrides the repository chosen from the storage
// config.
func WithSubscriberRepository(repo subscribers.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.subscriberRepo = repo
		}
	}
}

// WithBunDB stores subscribers in an existing bun database. The caller keeps
// ownership of the handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.bunDB = db
		}
	}
}

// WithCache supplies the cache used in front of the bun subscriber
// repository.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// NewContainer validates cfg, loads the content catalog, builds the search
// index and wires the mail and subscriber services.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func(context.Context) error{
		c.configureLogging,
		c.configureContent,
		c.configureSearch,
		c.configureSubscribers,
		c.configureMail,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.logger.Info("container.configured",
		"insights", len(c.catalog.Insights()),
		"indexed", c.index.Len(),
		"storage", c.storageName(),
	)
	return c, nil
}

func (c *Container) configureLogging(context.Context) error {
	if !c.loggerProviderSet {
		provider, err := gologger.FromConfig(c.Config.Logging)
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "site")
	return nil
}

func (c *Container) configureContent(ctx context.Context) error {
	if c.contentFS == nil {
		c.contentFS = os.DirFS(c.Config.Content.Dir)
	}
	catalog, err := content.Load(ctx, c.contentFS, content.OptionsFromConfig(c.Config.Content, logging.ContentLogger(c.loggerProvider)))
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	c.catalog = catalog
	c.resolver = routes.FromConfig(c.Config)
	return nil
}

func (c *Container) configureSearch(context.Context) error {
	index, err := search.BuildIndex(c.catalog, c.resolver)
	if err != nil {
		return fmt.Errorf("build search index: %w", err)
	}
	c.index = index
	c.engine = search.NewEngine(index, search.OptionsFromConfig(c.Config.Search)...)
	logging.SearchLogger(c.loggerProvider).Debug("search.index.built", "results", index.Len())
	return nil
}

func (c *Container) configureSubscribers(ctx context.Context) error {
	switch {
	case c.subscriberRepo != nil:
	case c.bunDB != nil:
		if err := subscribers.CreateSchema(ctx, c.bunDB); err != nil {
			return err
		}
		c.configureCacheDefaults()
		c.subscriberRepo = subscribers.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	default:
		repo, closeFn, err := subscribers.NewRepositoryFromConfig(ctx, c.Config.Storage)
		if err != nil {
			return err
		}
		c.subscriberRepo = repo
		c.closers = append(c.closers, closeFn)
	}

	c.subscriberSvc = subscribers.NewService(c.subscriberRepo,
		subscribers.WithSigner(subscribers.NewSigner(c.Config.Subscribers.UnsubscribeSecret)),
		subscribers.WithLogger(logging.SubscribersLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureCacheDefaults() {
	if c.Config.Storage.CacheTTL <= 0 {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		cfg.TTL = c.Config.Storage.CacheTTL
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureMail(context.Context) error {
	logger := logging.EmailLogger(c.loggerProvider)
	if c.sender == nil {
		c.sender = email.NewSenderFromConfig(c.Config.Email, logger)
	}
	mailer, err := email.NewMailer(c.sender, c.Config,
		email.WithLogger(logger),
		email.WithUnsubscribeLinker(c.unsubscribeLink),
	)
	if err != nil {
		return err
	}
	c.mailer = mailer
	return nil
}

// unsubscribeLink builds the one-click unsubscribe URL placed in list mails.
func (c *Container) unsubscribeLink(list, address string) string {
	query := map[string]string{"email": address, "list": list}
	if audience, err := subscribers.ParseAudience(list); err == nil {
		if token := c.subscriberSvc.Token(audience, address); token != "" {
			query["token"] = token
		}
	}
	link, err := c.resolver.Absolute(routes.Unsubscribe, "", query)
	if err != nil {
		c.logger.Warn("container.unsubscribe_link.failed", "list", list, "error", err)
		return ""
	}
	return link
}

func (c *Container) storageName() string {
	switch {
	case c.bunDB != nil:
		return "bun"
	case c.Config.Storage.Provider == "":
		return "memory"
	default:
		return c.Config.Storage.Provider
	}
}

// API builds the HTTP API over the container's services.
func (c *Container) API() *sitehttp.SiteAPI {
	return sitehttp.NewSiteAPI(c.mailer,
		sitehttp.WithConfig(c.Config),
		sitehttp.WithSubscriptions(c.subscriberSvc),
		sitehttp.WithSearcher(c.engine),
		sitehttp.WithLogger(logging.APILogger(c.loggerProvider)),
	)
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) ContentFS() fs.FS {
	return c.contentFS
}

func (c *Container) Catalog() *content.Catalog {
	return c.catalog
}

func (c *Container) Resolver() *routes.Resolver {
	return c.resolver
}

func (c *Container) SearchIndex() *search.Index {
	return c.index
}

func (c *Container) SearchEngine() *search.Engine {
	return c.engine
}

func (c *Container) Mailer() *email.Mailer {
	return c.mailer
}

func (c *Container) SubscriberService() *subscribers.Service {
	return c.subscriberSvc
}

// Close releases storage handles the container opened itself.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
