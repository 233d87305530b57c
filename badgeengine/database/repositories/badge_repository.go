package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/uptrace/bun"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

var (
	// ErrAlreadyAwarded is the expected outcome when two passes race on the
	// same badge: the losing transaction observes the existing row and backs
	// off. Callers treat it as "already owned", not a failure.
	ErrAlreadyAwarded = errors.New("badge already awarded")

	// ErrBadgeNotFound signals a lookup of a badge id absent from the catalog.
	ErrBadgeNotFound = errors.New("badge not found")

	// ErrUserNotFound signals an activity snapshot requested for an unknown user.
	ErrUserNotFound = errors.New("user not found")
)

type BadgeRepository interface {
	// Catalog
	GetAllDefinitions(ctx context.Context) ([]*models.BadgeDefinition, error)
	GetDefinition(ctx context.Context, badgeID string) (*models.BadgeDefinition, error)
	UpsertDefinitions(ctx context.Context, defs []*models.BadgeDefinition) error

	// Earned badges
	GetUserBadgeIDs(ctx context.Context, userID string) (map[string]struct{}, error)
	HasBadge(ctx context.Context, userID string, badgeID string) (bool, error)
	Award(ctx context.Context, userID string, def *models.BadgeDefinition) error

	// Aggregates and audit
	GetStats(ctx context.Context, userID string) (*models.UserBadgeStats, error)
	InsertAwardLog(ctx context.Context, log *models.BadgeAwardLog) error
}

type badgeRepository struct {
	db *bun.DB
}

func NewBadgeRepository(db *bun.DB) BadgeRepository {
	return &badgeRepository{db: db}
}

func newID() string {
	return snowflake.New(time.Now()).String()
}

func (r *badgeRepository) GetAllDefinitions(ctx context.Context) ([]*models.BadgeDefinition, error) {
	var defs []*models.BadgeDefinition
	err := r.db.NewSelect().
		Model(&defs).
		Order("badge_id ASC").
		Scan(ctx)

	return defs, err
}

func (r *badgeRepository) GetDefinition(ctx context.Context, badgeID string) (*models.BadgeDefinition, error) {
	def := new(models.BadgeDefinition)
	err := r.db.NewSelect().
		Model(def).
		Where("badge_id = ?", badgeID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrBadgeNotFound, badgeID)
		}
		return nil, err
	}

	return def, nil
}

func (r *badgeRepository) UpsertDefinitions(ctx context.Context, defs []*models.BadgeDefinition) error {
	if len(defs) == 0 {
		return nil
	}

	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		for _, def := range defs {
			def.CreatedAt = now
			def.UpdatedAt = now

			_, err := tx.NewInsert().
				Model(def).
				On("CONFLICT (badge_id) DO UPDATE").
				Set("name = EXCLUDED.name").
				Set("description = EXCLUDED.description").
				Set("icon = EXCLUDED.icon").
				Set("category = EXCLUDED.category").
				Set("rarity = EXCLUDED.rarity").
				Set("points = EXCLUDED.points").
				Set("criteria = EXCLUDED.criteria").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to upsert badge definition %s: %w", def.BadgeID, err)
			}
		}
		return nil
	})
}

func (r *badgeRepository) GetUserBadgeIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	var badgeIDs []string
	err := r.db.NewSelect().
		Model((*models.UserBadge)(nil)).
		Column("badge_id").
		Where("user_id = ?", userID).
		Scan(ctx, &badgeIDs)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]struct{}, len(badgeIDs))
	for _, id := range badgeIDs {
		owned[id] = struct{}{}
	}
	return owned, nil
}

func (r *badgeRepository) HasBadge(ctx context.Context, userID string, badgeID string) (bool, error) {
	return r.db.NewSelect().
		Model((*models.UserBadge)(nil)).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Exists(ctx)
}

// Award commits the earned-badge record, the stats increments, and the
// notification as one transaction. The create of the user_badges row is the
// duplicate guard: zero rows affected means another pass won the race and
// the transaction is abandoned with ErrAlreadyAwarded.
func (r *badgeRepository) Award(ctx context.Context, userID string, def *models.BadgeDefinition) error {
	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()

		res, err := tx.NewInsert().
			Model(&models.UserBadge{
				UserID:   userID,
				BadgeID:  def.BadgeID,
				EarnedAt: now,
			}).
			On("CONFLICT (user_id, badge_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create user badge: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrAlreadyAwarded
		}

		// Additive updates only: concurrent awards for different badges must
		// not lose increments.
		stats := &models.UserBadgeStats{
			UserID:          userID,
			TotalBadges:     1,
			TotalPoints:     def.Points,
			CategoryCounts:  map[string]int{def.Category: 1},
			LastBadgeEarned: now,
			LastBadgeID:     def.BadgeID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		_, err = tx.NewInsert().
			Model(stats).
			On("CONFLICT (user_id) DO UPDATE").
			Set("total_badges = ubs.total_badges + 1").
			Set("total_points = ubs.total_points + EXCLUDED.total_points").
			Set("category_counts = jsonb_set(COALESCE(ubs.category_counts, '{}'::jsonb), ?::text[], (COALESCE(ubs.category_counts->>?, '0')::int + 1)::text::jsonb)",
				"{"+def.Category+"}", def.Category).
			Set("last_badge_earned = EXCLUDED.last_badge_earned").
			Set("last_badge_id = EXCLUDED.last_badge_id").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update badge stats: %w", err)
		}

		_, err = tx.NewInsert().
			Model(&models.Notification{
				ID:               newID(),
				UserID:           userID,
				Type:             models.NotificationTypeBadgeEarned,
				BadgeID:          def.BadgeID,
				BadgeName:        def.Name,
				BadgeDescription: def.Description,
				BadgeIcon:        def.Icon,
				BadgeRarity:      def.Rarity,
				Points:           def.Points,
				CreatedAt:        now,
			}).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}

		return nil
	})

	if err != nil && !errors.Is(err, ErrAlreadyAwarded) {
		slog.Error("Badge award transaction failed",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.String("badge_id", def.BadgeID),
			slog.Any("error", err))
	}
	return err
}

func (r *badgeRepository) GetStats(ctx context.Context, userID string) (*models.UserBadgeStats, error) {
	stats := new(models.UserBadgeStats)
	err := r.db.NewSelect().
		Model(stats).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewUserBadgeStats(userID), nil
		}
		return nil, err
	}

	return stats, nil
}

func (r *badgeRepository) InsertAwardLog(ctx context.Context, log *models.BadgeAwardLog) error {
	if log.ID == "" {
		log.ID = newID()
	}
	if log.AwardedAt.IsZero() {
		log.AwardedAt = time.Now()
	}
	_, err := r.db.NewInsert().Model(log).Exec(ctx)
	return err
}
