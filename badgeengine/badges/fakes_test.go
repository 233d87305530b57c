package badges

import (
	"context"
	"sort"
	"sync"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
	"github.com/hatakesocial/badge-engine/badgeengine/database/repositories"
)

type fakeBadgeRepo struct {
	mu          sync.Mutex
	defs        map[string]*models.BadgeDefinition
	owned       map[string]map[string]struct{}
	stats       map[string]*models.UserBadgeStats
	awardErrs   map[string]error
	awardCalls  int
	getAllCalls int
	logs        []*models.BadgeAwardLog
}

func newFakeBadgeRepo(defs ...*models.BadgeDefinition) *fakeBadgeRepo {
	r := &fakeBadgeRepo{
		defs:      make(map[string]*models.BadgeDefinition),
		owned:     make(map[string]map[string]struct{}),
		stats:     make(map[string]*models.UserBadgeStats),
		awardErrs: make(map[string]error),
	}
	for _, def := range defs {
		r.defs[def.BadgeID] = def
	}
	return r
}

func (r *fakeBadgeRepo) grant(userID string, badgeIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.owned[userID] == nil {
		r.owned[userID] = make(map[string]struct{})
	}
	for _, badgeID := range badgeIDs {
		r.owned[userID][badgeID] = struct{}{}
	}
}

func (r *fakeBadgeRepo) GetAllDefinitions(ctx context.Context) ([]*models.BadgeDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getAllCalls++

	out := make([]*models.BadgeDefinition, 0, len(r.defs))
	for _, def := range r.defs {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BadgeID < out[j].BadgeID })
	return out, nil
}

func (r *fakeBadgeRepo) GetDefinition(ctx context.Context, badgeID string) (*models.BadgeDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.defs[badgeID]
	if !ok {
		return nil, repositories.ErrBadgeNotFound
	}
	return def, nil
}

func (r *fakeBadgeRepo) UpsertDefinitions(ctx context.Context, defs []*models.BadgeDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		r.defs[def.BadgeID] = def
	}
	return nil
}

func (r *fakeBadgeRepo) GetUserBadgeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]struct{}, len(r.owned[userID]))
	for badgeID := range r.owned[userID] {
		out[badgeID] = struct{}{}
	}
	return out, nil
}

func (r *fakeBadgeRepo) HasBadge(ctx context.Context, userID string, badgeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.owned[userID][badgeID]
	return ok, nil
}

func (r *fakeBadgeRepo) Award(ctx context.Context, userID string, def *models.BadgeDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.awardCalls++

	if err, ok := r.awardErrs[def.BadgeID]; ok {
		return err
	}
	if _, ok := r.owned[userID][def.BadgeID]; ok {
		return repositories.ErrAlreadyAwarded
	}
	if r.owned[userID] == nil {
		r.owned[userID] = make(map[string]struct{})
	}
	r.owned[userID][def.BadgeID] = struct{}{}

	// Mirror the store's additive stats upsert.
	stats, ok := r.stats[userID]
	if !ok {
		stats = models.NewUserBadgeStats(userID)
		r.stats[userID] = stats
	}
	stats.TotalBadges++
	stats.TotalPoints += def.Points
	stats.CategoryCounts[def.Category]++
	stats.LastBadgeID = def.BadgeID

	return nil
}

func (r *fakeBadgeRepo) GetStats(ctx context.Context, userID string) (*models.UserBadgeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.stats[userID]
	if !ok {
		return models.NewUserBadgeStats(userID), nil
	}
	return stats, nil
}

func (r *fakeBadgeRepo) InsertAwardLog(ctx context.Context, log *models.BadgeAwardLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, log)
	return nil
}

type fakeActivityRepo struct {
	counts map[string]*models.ActivityCounts
	errs   map[string]error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		counts: make(map[string]*models.ActivityCounts),
		errs:   make(map[string]error),
	}
}

func (r *fakeActivityRepo) GetActivityCounts(ctx context.Context, userID string) (*models.ActivityCounts, error) {
	if err, ok := r.errs[userID]; ok {
		return nil, err
	}
	counts, ok := r.counts[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return counts, nil
}

func (r *fakeActivityRepo) ListUserIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.counts)+len(r.errs))
	for id := range r.counts {
		ids = append(ids, id)
	}
	for id := range r.errs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
