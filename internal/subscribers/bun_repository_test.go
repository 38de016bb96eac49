package subscribers_test

import (
	"context"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-site/internal/identity"
	"github.com/goliatone/go-site/internal/runtimeconfig"
	"github.com/goliatone/go-site/internal/subscribers"
	"github.com/goliatone/go-site/pkg/testsupport"
)

func TestBunRepositoryServiceFlow(t *testing.T) {
	ctx := context.Background()
	db, err := testsupport.NewBunMemoryDB(ctx, (*subscribers.Subscriber)(nil))
	if err != nil {
		t.Fatalf("bun db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := subscribers.NewService(subscribers.NewBunRepository(db), subscribers.WithNow(fixedNow))

	created, err := svc.Subscribe(ctx, subscribers.SubscribeInput{
		Audience:  subscribers.AudienceInsights,
		Email:     "ada@example.com",
		Name:      "Ada",
		Interests: []string{"cloud", "ai"},
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if created.ID != identity.SubscriberUUID("insights", "ada@example.com") {
		t.Fatalf("expected deterministic id, got %s", created.ID)
	}
	if _, err := svc.Subscribe(ctx, subscribers.SubscribeInput{Audience: subscribers.AudienceEvents, Email: "ada@example.com", EventID: "cloud-day"}); err != nil {
		t.Fatalf("subscribe events: %v", err)
	}

	list, err := svc.List(ctx, subscribers.AudienceInsights)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || len(list[0].Interests) != 2 {
		t.Fatalf("unexpected insights list %+v", list)
	}

	changed, err := svc.Unsubscribe(ctx, subscribers.UnsubscribeInput{Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if len(changed) != 2 {
		t.Fatalf("expected both lists to change, got %d", len(changed))
	}
	status, err := svc.Status(ctx, subscribers.AudienceEvents, "ada@example.com")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != subscribers.StatusUnsubscribed {
		t.Fatalf("expected unsubscribed, got %s", status)
	}
}

func TestBunRepositoryWithCache(t *testing.T) {
	ctx := context.Background()
	db, err := testsupport.NewBunMemoryDB(ctx, (*subscribers.Subscriber)(nil))
	if err != nil {
		t.Fatalf("bun db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := subscribers.NewBunRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())

	id := identity.SubscriberUUID("insights", "grace@example.com")
	if _, err := repo.Create(ctx, &subscribers.Subscriber{
		ID:           id,
		Audience:     subscribers.AudienceInsights,
		Email:        "grace@example.com",
		Status:       subscribers.StatusSubscribed,
		SubscribedAt: fixedNow(),
		UpdatedAt:    fixedNow(),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		got, err := repo.Get(ctx, id)
		if err != nil {
			t.Fatalf("get #%d: %v", i, err)
		}
		if got.Email != "grace@example.com" {
			t.Fatalf("unexpected record %+v", got)
		}
	}

	if _, err := repo.Get(ctx, identity.SubscriberUUID("events", "grace@example.com")); !subscribers.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewRepositoryFromConfig(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := subscribers.NewRepositoryFromConfig(ctx, runtimeconfig.StorageConfig{Provider: "memory"})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := repo.(*subscribers.MemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", repo)
	}
	_ = closeFn()

	repo, closeFn, err = subscribers.NewRepositoryFromConfig(ctx, runtimeconfig.StorageConfig{
		Provider: "bun",
		DSN:      "file:subscribers-config-test?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("bun: %v", err)
	}
	t.Cleanup(func() { _ = closeFn() })
	if _, ok := repo.(*subscribers.BunRepository); !ok {
		t.Fatalf("expected bun repository, got %T", repo)
	}

	if _, _, err := subscribers.NewRepositoryFromConfig(ctx, runtimeconfig.StorageConfig{Provider: "redis"}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
