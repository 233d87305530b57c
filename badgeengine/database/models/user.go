package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User carries the profile fields and lifetime counters the badge engine
// reads. The counters are incremented by the feed/trade/marketplace flows,
// never by this service.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement"`
	UserID   string `bun:"user_id,notnull,unique"`
	Username string `bun:"username,notnull"`
	PhotoURL string `bun:"photo_url"`
	Bio      string `bun:"bio"`

	// Marketplace and trading counters
	TradesCompleted      int64 `bun:"trades_completed,notnull,default:0"`
	CardsSold            int64 `bun:"cards_sold,notnull,default:0"`
	PositiveReviews      int64 `bun:"positive_reviews,notnull,default:0"`
	PositiveRatings      int64 `bun:"positive_ratings,notnull,default:0"`
	MarketplacePurchases int64 `bun:"marketplace_purchases,notnull,default:0"`
	CardsListed          int64 `bun:"cards_listed,notnull,default:0"`
	PurchasesMade        int64 `bun:"purchases_made,notnull,default:0"`
	TotalSpent           int64 `bun:"total_spent,notnull,default:0"`

	// Social counters
	CommentCount  int64 `bun:"comment_count,notnull,default:0"`
	LikesReceived int64 `bun:"likes_received,notnull,default:0"`
	PostCount     int64 `bun:"post_count,notnull,default:0"`

	// Play counters
	GamesPlayed        int64 `bun:"games_played,notnull,default:0"`
	TournamentsEntered int64 `bun:"tournaments_entered,notnull,default:0"`
	TournamentsWon     int64 `bun:"tournaments_won,notnull,default:0"`

	IsPremium bool `bun:"is_premium,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
