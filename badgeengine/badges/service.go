package badges

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
	"github.com/hatakesocial/badge-engine/badgeengine/database/repositories"
	"github.com/hatakesocial/badge-engine/badgeengine/logger"
)

// ErrBadgeAlreadyOwned is returned by the manual award path when an admin
// tries to grant a badge the user already has. Unlike the automatic pass,
// this is an operator mistake and is surfaced, not swallowed.
var ErrBadgeAlreadyOwned = errors.New("user already has this badge")

// Service drives badge evaluation passes, manual awards, and progress
// reporting.
type Service struct {
	cache        *DefinitionCache
	badgeRepo    repositories.BadgeRepository
	activityRepo repositories.ActivityRepository
}

func NewService(cache *DefinitionCache, badgeRepo repositories.BadgeRepository, activityRepo repositories.ActivityRepository) *Service {
	return &Service{
		cache:        cache,
		badgeRepo:    badgeRepo,
		activityRepo: activityRepo,
	}
}

// CheckAndAward runs one evaluation pass for a user and returns the ids of
// badges newly awarded, including the legendary meta-badge when the pass
// completes the catalog. activityType is advisory only and is not used to
// narrow evaluation.
func (s *Service) CheckAndAward(ctx context.Context, userID string, activityType string) ([]string, error) {
	var (
		defs   map[string]*models.BadgeDefinition
		counts *models.ActivityCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defs, err = s.cache.GetDefinitions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.activityRepo.GetActivityCounts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load pass inputs: %w", err)
	}

	owned, err := s.badgeRepo.GetUserBadgeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned badges: %w", err)
	}

	// Phase 1: independent per-badge evaluation and award.
	awarded := s.awardEligible(ctx, userID, defs, counts, owned)

	// Phase 2: the meta-badge is re-checked against the post-phase-1
	// ownership set.
	if len(awarded) > 0 {
		if legendary, ok := s.checkLegendary(ctx, userID, defs, owned, awarded); ok {
			awarded = append(awarded, legendary)
		}
	}

	if len(awarded) > 0 {
		slog.Info("Badge pass awarded badges",
			slog.String("user_id", userID),
			slog.String("activity_type", activityType),
			slog.Any("badges", awarded))
	}

	return awarded, nil
}

func (s *Service) awardEligible(ctx context.Context, userID string, defs map[string]*models.BadgeDefinition, counts *models.ActivityCounts, owned map[string]struct{}) []string {
	badgeIDs := make([]string, 0, len(defs))
	for badgeID := range defs {
		badgeIDs = append(badgeIDs, badgeID)
	}
	sort.Strings(badgeIDs)

	awarded := make([]string, 0)
	for _, badgeID := range badgeIDs {
		// Owned is only an optimization; the transaction's create-if-absent
		// is the authoritative duplicate guard.
		if _, ok := owned[badgeID]; ok {
			continue
		}
		if models.IsManualOnly(badgeID) {
			continue
		}

		def := defs[badgeID]
		if !Evaluate(def.Criteria, counts) {
			continue
		}

		if err := s.badgeRepo.Award(ctx, userID, def); err != nil {
			if errors.Is(err, repositories.ErrAlreadyAwarded) {
				// A concurrent pass won the race; the badge is owned either way.
				continue
			}
			// One failed award never aborts evaluation of the rest.
			slog.Error("Failed to award badge",
				slog.String("user_id", userID),
				slog.String("badge_id", badgeID),
				slog.Any("error", err))
			continue
		}

		logger.LogAward(userID, badgeID, "auto")
		awarded = append(awarded, badgeID)
	}

	return awarded
}

// checkLegendary awards the meta-badge when the user owns every other badge
// in the catalog. The denominator excludes only the meta-badge itself.
func (s *Service) checkLegendary(ctx context.Context, userID string, defs map[string]*models.BadgeDefinition, ownedBefore map[string]struct{}, newlyAwarded []string) (string, bool) {
	if _, ok := ownedBefore[models.LegendaryStatusBadgeID]; ok {
		return "", false
	}
	legendary, ok := defs[models.LegendaryStatusBadgeID]
	if !ok {
		return "", false
	}

	eligibleTotal := len(defs) - 1
	ownedAfter := len(ownedBefore) + len(newlyAwarded)
	if ownedAfter < eligibleTotal {
		return "", false
	}

	if err := s.badgeRepo.Award(ctx, userID, legendary); err != nil {
		if !errors.Is(err, repositories.ErrAlreadyAwarded) {
			slog.Error("Failed to award legendary status",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
		return "", false
	}

	logger.LogAward(userID, models.LegendaryStatusBadgeID, "auto")
	return models.LegendaryStatusBadgeID, true
}

// AwardManually grants a badge through the admin path and records an audit
// entry. A missing badge or an already-owned badge is an explicit error.
func (s *Service) AwardManually(ctx context.Context, userID string, badgeID string, adminID string) error {
	def, err := s.badgeRepo.GetDefinition(ctx, badgeID)
	if err != nil {
		return err
	}

	has, err := s.badgeRepo.HasBadge(ctx, userID, badgeID)
	if err != nil {
		return fmt.Errorf("failed to check badge ownership: %w", err)
	}
	if has {
		return ErrBadgeAlreadyOwned
	}

	if err := s.badgeRepo.Award(ctx, userID, def); err != nil {
		if errors.Is(err, repositories.ErrAlreadyAwarded) {
			return ErrBadgeAlreadyOwned
		}
		return err
	}

	if err := s.badgeRepo.InsertAwardLog(ctx, &models.BadgeAwardLog{
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedBy: adminID,
		Type:      models.AwardTypeManual,
	}); err != nil {
		return fmt.Errorf("failed to write award log: %w", err)
	}

	slog.Info("Badge awarded manually",
		slog.String("user_id", userID),
		slog.String("badge_id", badgeID),
		slog.String("awarded_by", adminID))

	return nil
}

// GetProgress builds the read-only completion report for every badge in the
// catalog. It performs no writes.
func (s *Service) GetProgress(ctx context.Context, userID string) ([]BadgeProgress, error) {
	var (
		defs   map[string]*models.BadgeDefinition
		counts *models.ActivityCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defs, err = s.cache.GetDefinitions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.activityRepo.GetActivityCounts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load progress inputs: %w", err)
	}

	owned, err := s.badgeRepo.GetUserBadgeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned badges: %w", err)
	}

	badgeIDs := make([]string, 0, len(defs))
	for badgeID := range defs {
		badgeIDs = append(badgeIDs, badgeID)
	}
	sort.Strings(badgeIDs)

	progress := make([]BadgeProgress, 0, len(badgeIDs))
	for _, badgeID := range badgeIDs {
		_, earned := owned[badgeID]
		progress = append(progress, buildProgress(defs[badgeID], earned, counts))
	}

	return progress, nil
}

// GetStats returns the denormalized per-user aggregate, zero-valued when the
// user has earned nothing yet.
func (s *Service) GetStats(ctx context.Context, userID string) (*models.UserBadgeStats, error) {
	return s.badgeRepo.GetStats(ctx, userID)
}

// LoadCatalog bulk-upserts badge definitions and invalidates the cache so
// the new catalog is visible immediately. Administrative path only.
func (s *Service) LoadCatalog(ctx context.Context, defs []*models.BadgeDefinition) error {
	for _, def := range defs {
		if def.BadgeID == "" {
			return fmt.Errorf("badge definition missing id: %q", def.Name)
		}
	}

	if err := s.badgeRepo.UpsertDefinitions(ctx, defs); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	s.cache.Invalidate()

	slog.Info("Badge catalog loaded",
		slog.Int("definitions", len(defs)))

	return nil
}

// RunSweep evaluates every user. Per-user failures are logged and skipped so
// one broken profile never stalls the sweep. Returns the total number of
// badges awarded.
func (s *Service) RunSweep(ctx context.Context) (int, error) {
	userIDs, err := s.activityRepo.ListUserIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	total := 0
	for _, userID := range userIDs {
		awarded, err := s.CheckAndAward(ctx, userID, "sweep")
		if err != nil {
			slog.Error("Sweep pass failed for user",
				slog.String("user_id", userID),
				slog.Any("error", err))
			continue
		}
		total += len(awarded)
	}

	slog.Info("Badge sweep complete",
		slog.Int("users", len(userIDs)),
		slog.Int("badges_awarded", total))

	return total, nil
}
