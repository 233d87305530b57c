package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CriteriaType selects the comparison rule used when evaluating a badge.
// The set is closed: evaluation treats anything outside it as never satisfied.
type CriteriaType string

const (
	CriteriaAccountCreated       CriteriaType = "account_created"
	CriteriaCardsAdded           CriteriaType = "cards_added"
	CriteriaTotalCards           CriteriaType = "total_cards"
	CriteriaTradesCompleted      CriteriaType = "trades_completed"
	CriteriaCardsSold            CriteriaType = "cards_sold"
	CriteriaPositiveReviews      CriteriaType = "positive_reviews"
	CriteriaPositiveRatings      CriteriaType = "positive_ratings"
	CriteriaTotalTransactions    CriteriaType = "total_transactions"
	CriteriaTradesOrSales        CriteriaType = "trades_or_sales"
	CriteriaMarketplacePurchases CriteriaType = "marketplace_purchases"
	CriteriaCardsListed          CriteriaType = "cards_listed"
	CriteriaRareCards            CriteriaType = "rare_cards"
	CriteriaUltraRareCards       CriteriaType = "ultra_rare_cards"
	CriteriaCompleteSets         CriteriaType = "complete_sets"
	CriteriaDecksCreated         CriteriaType = "decks_created"
	CriteriaPublicDecks          CriteriaType = "public_decks"
	CriteriaFriendsCount         CriteriaType = "friends_count"
	CriteriaCommentsPosted       CriteriaType = "comments_posted"
	CriteriaLikesReceived        CriteriaType = "likes_received"
	CriteriaGroupsCreated        CriteriaType = "groups_created"
	CriteriaProfileCompleted     CriteriaType = "profile_completed"
	CriteriaArticlesPublished    CriteriaType = "articles_published"
	CriteriaEventsParticipated   CriteriaType = "events_participated"
	CriteriaGamesPlayed          CriteriaType = "games_played"
	CriteriaTournamentsEntered   CriteriaType = "tournaments_entered"
	CriteriaTournamentsWon       CriteriaType = "tournaments_won"
	CriteriaPurchasesMade        CriteriaType = "purchases_made"
	CriteriaTotalSpent           CriteriaType = "total_spent"
	CriteriaPremiumSubscription  CriteriaType = "premium_subscription"
	CriteriaEarlyAdopter         CriteriaType = "early_adopter"
	CriteriaBetaUser             CriteriaType = "beta_user"
	CriteriaPostsOrComments      CriteriaType = "posts_or_comments"
)

// Criteria is the declarative rule attached to a badge definition.
// Threshold applies to counter comparisons; CutoffDate only to the
// early_adopter/beta_user kinds.
type Criteria struct {
	Type       CriteriaType `json:"type"`
	Threshold  int64        `json:"threshold,omitempty"`
	CutoffDate *time.Time   `json:"cutoff_date,omitempty"`
}

type BadgeDefinition struct {
	bun.BaseModel `bun:"table:badge_definitions,alias:bd"`

	ID          int64     `bun:"id,pk,autoincrement"`
	BadgeID     string    `bun:"badge_id,notnull,unique"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description,notnull"`
	Icon        string    `bun:"icon"`
	Category    string    `bun:"category,notnull"`
	Rarity      string    `bun:"rarity,notnull"`
	Points      int64     `bun:"points,notnull,default:0"`
	Criteria    Criteria  `bun:"criteria,type:jsonb"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
	UpdatedAt   time.Time `bun:"updated_at,notnull"`
}

// Badge category constants
const (
	BadgeCategoryCollecting  = "collecting"
	BadgeCategoryTrading     = "trading"
	BadgeCategoryDeckBuild   = "deck_building"
	BadgeCategorySocial      = "social"
	BadgeCategoryCommunity   = "community"
	BadgeCategoryMarketplace = "marketplace"
	BadgeCategorySpecial     = "special"
)

// Badge rarity constants
const (
	BadgeRarityCommon    = "common"
	BadgeRarityUncommon  = "uncommon"
	BadgeRarityRare      = "rare"
	BadgeRarityEpic      = "epic"
	BadgeRarityLegendary = "legendary"
)

// LegendaryStatusBadgeID is the meta-badge earned by owning every other badge
// in the catalog. It is never awarded by criteria evaluation.
const LegendaryStatusBadgeID = "legendary_status"

// manualOnlyBadgeIDs are never awarded by the automatic pass, only through
// the admin path.
var manualOnlyBadgeIDs = map[string]struct{}{
	LegendaryStatusBadgeID: {},
	"limited_edition":      {},
	"easter_egg_hunter":    {},
	"holiday_spirit":       {},
}

// IsManualOnly reports whether a badge is excluded from automatic awarding.
func IsManualOnly(badgeID string) bool {
	_, ok := manualOnlyBadgeIDs[badgeID]
	return ok
}
