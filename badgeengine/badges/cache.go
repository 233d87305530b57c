package badges

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
	"github.com/hatakesocial/badge-engine/badgeengine/database/repositories"
)

// DefaultCacheTTL is how long a loaded catalog stays fresh. Badge catalogs
// change rarely, so staleness inside the window is accepted.
const DefaultCacheTTL = time.Hour

// DefinitionCache holds the last successfully loaded badge catalog. The
// cached map is replaced atomically after a full read completes; concurrent
// callers during a refresh may trigger redundant reloads but never see a
// partially populated catalog.
type DefinitionCache struct {
	repo  repositories.BadgeRepository
	ttl   time.Duration
	clock func() time.Time

	mu       sync.RWMutex
	defs     map[string]*models.BadgeDefinition
	loadedAt time.Time
}

// NewDefinitionCache creates a catalog cache. A nil clock uses wall time;
// tests inject their own to simulate expiry.
func NewDefinitionCache(repo repositories.BadgeRepository, ttl time.Duration, clock func() time.Time) *DefinitionCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &DefinitionCache{
		repo:  repo,
		ttl:   ttl,
		clock: clock,
	}
}

// GetDefinitions returns the catalog keyed by badge id, reloading it from
// the store when the cached copy is missing or older than the TTL.
func (c *DefinitionCache) GetDefinitions(ctx context.Context) (map[string]*models.BadgeDefinition, error) {
	c.mu.RLock()
	defs, loadedAt := c.defs, c.loadedAt
	c.mu.RUnlock()

	if defs != nil && c.clock().Sub(loadedAt) < c.ttl {
		return defs, nil
	}

	list, err := c.repo.GetAllDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	fresh := make(map[string]*models.BadgeDefinition, len(list))
	for _, def := range list {
		fresh[def.BadgeID] = def
	}

	c.mu.Lock()
	c.defs = fresh
	c.loadedAt = c.clock()
	c.mu.Unlock()

	slog.Debug("Badge definition cache refreshed",
		slog.Int("definitions", len(fresh)))

	return fresh, nil
}

// Invalidate drops the cached catalog so the next read reloads it. Called
// after an administrative catalog load.
func (c *DefinitionCache) Invalidate() {
	c.mu.Lock()
	c.defs = nil
	c.mu.Unlock()
}
