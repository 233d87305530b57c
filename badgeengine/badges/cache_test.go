package badges

import (
	"context"
	"testing"
	"time"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestDefinitionCacheFreshness(t *testing.T) {
	repo := newFakeBadgeRepo(
		&models.BadgeDefinition{BadgeID: "first_card"},
		&models.BadgeDefinition{BadgeID: "first_trade"},
	)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewDefinitionCache(repo, time.Hour, clock.Now)

	ctx := context.Background()

	defs, err := cache.GetDefinitions(ctx)
	if err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	if repo.getAllCalls != 1 {
		t.Fatalf("getAllCalls = %d, want 1", repo.getAllCalls)
	}

	// Within the TTL the cached map is served without a reload.
	clock.Advance(59 * time.Minute)
	if _, err := cache.GetDefinitions(ctx); err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}
	if repo.getAllCalls != 1 {
		t.Errorf("getAllCalls = %d after fresh read, want 1", repo.getAllCalls)
	}

	// Crossing the TTL forces a reload.
	clock.Advance(2 * time.Minute)
	if _, err := cache.GetDefinitions(ctx); err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}
	if repo.getAllCalls != 2 {
		t.Errorf("getAllCalls = %d after expiry, want 2", repo.getAllCalls)
	}
}

func TestDefinitionCacheSeesNewCatalogAfterReload(t *testing.T) {
	repo := newFakeBadgeRepo(&models.BadgeDefinition{BadgeID: "first_card"})
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewDefinitionCache(repo, time.Hour, clock.Now)

	ctx := context.Background()
	if _, err := cache.GetDefinitions(ctx); err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}

	repo.UpsertDefinitions(ctx, []*models.BadgeDefinition{{BadgeID: "first_trade"}})

	// Still cached: the addition is not visible yet.
	defs, err := cache.GetDefinitions(ctx)
	if err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}
	if len(defs) != 1 {
		t.Errorf("got %d definitions before expiry, want 1", len(defs))
	}

	clock.Advance(61 * time.Minute)
	defs, err = cache.GetDefinitions(ctx)
	if err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}
	if len(defs) != 2 {
		t.Errorf("got %d definitions after expiry, want 2", len(defs))
	}
}

func TestDefinitionCacheInvalidate(t *testing.T) {
	repo := newFakeBadgeRepo(&models.BadgeDefinition{BadgeID: "first_card"})
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewDefinitionCache(repo, time.Hour, clock.Now)

	ctx := context.Background()
	if _, err := cache.GetDefinitions(ctx); err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}

	cache.Invalidate()

	if _, err := cache.GetDefinitions(ctx); err != nil {
		t.Fatalf("GetDefinitions() error = %v", err)
	}
	if repo.getAllCalls != 2 {
		t.Errorf("getAllCalls = %d after invalidate, want 2", repo.getAllCalls)
	}
}
