package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

// ActivityRepository reads the raw activity sources the badge engine
// evaluates against. Every read is fatal on failure: an incomplete snapshot
// must never be used for threshold checks.
type ActivityRepository interface {
	GetActivityCounts(ctx context.Context, userID string) (*models.ActivityCounts, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

type activityRepository struct {
	db *bun.DB
}

func NewActivityRepository(db *bun.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) GetActivityCounts(ctx context.Context, userID string) (*models.ActivityCounts, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to read user profile: %w", err)
	}

	counts := &models.ActivityCounts{
		TradesCompleted:      user.TradesCompleted,
		CardsSold:            user.CardsSold,
		PositiveReviews:      user.PositiveReviews,
		PositiveRatings:      user.PositiveRatings,
		TotalTransactions:    user.TradesCompleted + user.CardsSold,
		MarketplacePurchases: user.MarketplacePurchases,
		CardsListed:          user.CardsListed,
		CommentsPosted:       user.CommentCount,
		LikesReceived:        user.LikesReceived,
		PostCount:            user.PostCount,
		GamesPlayed:          user.GamesPlayed,
		TournamentsEntered:   user.TournamentsEntered,
		TournamentsWon:       user.TournamentsWon,
		PurchasesMade:        user.PurchasesMade,
		TotalSpent:           user.TotalSpent,
		HasPremium:           user.IsPremium,
		HasProfilePicture:    user.PhotoURL != "",
		HasBio:               user.Bio != "",
	}
	if !user.CreatedAt.IsZero() {
		createdAt := user.CreatedAt
		counts.AccountCreatedAt = &createdAt
	}

	if err := r.countCollection(ctx, userID, counts); err != nil {
		return nil, err
	}

	totalDecks, err := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count decks: %w", err)
	}
	counts.TotalDecks = int64(totalDecks)

	publicDecks, err := r.db.NewSelect().
		Model((*models.Deck)(nil)).
		Where("user_id = ? AND public = ?", userID, true).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count public decks: %w", err)
	}
	counts.TotalPublicDecks = int64(publicDecks)

	followers, err := r.db.NewSelect().
		Model((*models.Follow)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count followers: %w", err)
	}
	counts.FriendsCount = int64(followers)

	articles, err := r.db.NewSelect().
		Model((*models.Article)(nil)).
		Where("author_id = ? AND status = ?", userID, models.ArticleStatusPublished).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count published articles: %w", err)
	}
	counts.ArticlesPublished = int64(articles)

	groups, err := r.db.NewSelect().
		Model((*models.Group)(nil)).
		Where("creator_id = ?", userID).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	counts.GroupsCreated = int64(groups)

	member, err := json.Marshal([]string{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode participant filter: %w", err)
	}
	events, err := r.db.NewSelect().
		Model((*models.Event)(nil)).
		Where("participants @> ?::jsonb", string(member)).
		Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	counts.EventsParticipated = int64(events)

	return counts, nil
}

// countCollection scans the user's cards once, sizing the collection and
// classifying rarity tiers. Ultra-rare is a subset of rare.
func (r *activityRepository) countCollection(ctx context.Context, userID string, counts *models.ActivityCounts) error {
	var rarities []string
	err := r.db.NewSelect().
		Model((*models.UserCard)(nil)).
		Column("rarity").
		Where("user_id = ?", userID).
		Scan(ctx, &rarities)
	if err != nil {
		return fmt.Errorf("failed to scan card collection: %w", err)
	}

	counts.TotalCards = int64(len(rarities))
	for _, rarity := range rarities {
		switch strings.ToLower(rarity) {
		case "rare":
			counts.RareCards++
		case "mythic", "legendary":
			counts.RareCards++
			counts.UltraRareCards++
		}
	}
	return nil
}

func (r *activityRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var userIDs []string
	err := r.db.NewSelect().
		Model((*models.User)(nil)).
		Column("user_id").
		Order("user_id ASC").
		Scan(ctx, &userIDs)
	return userIDs, err
}
