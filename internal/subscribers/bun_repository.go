package subscribers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-site/internal/runtimeconfig"
)

// BunRepository stores subscribers through go-repository-bun, optionally
// behind a read cache.
type BunRepository struct {
	repo repository.Repository[*Subscriber]
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := newSubscriberRepository(db)
	return &BunRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func newSubscriberRepository(db *bun.DB) repository.Repository[*Subscriber] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Subscriber]{
		NewRecord: func() *Subscriber { return &Subscriber{} },
		GetID: func(s *Subscriber) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Subscriber, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(s *Subscriber) string {
			if s == nil {
				return ""
			}
			return s.ID.String()
		},
	})
}

func (r *BunRepository) Get(ctx context.Context, id uuid.UUID) (*Subscriber, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) Create(ctx context.Context, record *Subscriber) (*Subscriber, error) {
	return r.repo.Create(ctx, record)
}

func (r *BunRepository) Update(ctx context.Context, record *Subscriber) (*Subscriber, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, record.ID.String())
	}
	return updated, nil
}

func (r *BunRepository) ListByEmail(ctx context.Context, email string) ([]*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.email = ?", email).Order("audience ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) ListByAudience(ctx context.Context, audience Audience) ([]*Subscriber, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.audience = ?", string(audience)).Order("email ASC")
		}),
	)
	return records, err
}

// OpenSQLite opens dsn with the sqlite3 driver and ensures the subscribers
// table exists.
func OpenSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("subscribers: open sqlite: %w", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	if err := CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*Subscriber)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("subscribers: create table: %w", err)
	}
	return nil
}

// NewRepositoryFromConfig returns the repository selected by cfg. The
// returned close function releases any database handle.
func NewRepositoryFromConfig(ctx context.Context, cfg runtimeconfig.StorageConfig) (Repository, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "memory":
		return NewMemoryRepository(), noop, nil
	case "bun", "sqlite":
		db, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		if cfg.CacheTTL <= 0 {
			return NewBunRepository(db), db.Close, nil
		}
		cacheCfg := cache.DefaultConfig()
		cacheCfg.TTL = cfg.CacheTTL
		cacheService, err := cache.NewCacheService(cacheCfg)
		if err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("subscribers: cache service: %w", err)
		}
		return NewBunRepositoryWithCache(db, cacheService, cache.NewDefaultKeySerializer()), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, cfg.Provider)
	}
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "subscriber", Key: key}
	}
	return fmt.Errorf("subscriber repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
