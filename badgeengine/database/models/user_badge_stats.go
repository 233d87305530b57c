package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBadgeStats is the denormalized per-user aggregate, created lazily on
// the first award and maintained with additive updates only.
type UserBadgeStats struct {
	bun.BaseModel `bun:"table:user_badge_stats,alias:ubs"`

	ID              int64          `bun:"id,pk,autoincrement"`
	UserID          string         `bun:"user_id,notnull,unique"`
	TotalBadges     int64          `bun:"total_badges,notnull,default:0"`
	TotalPoints     int64          `bun:"total_points,notnull,default:0"`
	CategoryCounts  map[string]int `bun:"category_counts,type:jsonb"`
	LastBadgeEarned time.Time      `bun:"last_badge_earned"`
	LastBadgeID     string         `bun:"last_badge_id"`
	CreatedAt       time.Time      `bun:"created_at,notnull"`
	UpdatedAt       time.Time      `bun:"updated_at,notnull"`
}

// NewUserBadgeStats returns the zero-value stats record used when a user has
// not earned anything yet.
func NewUserBadgeStats(userID string) *UserBadgeStats {
	return &UserBadgeStats{
		UserID:         userID,
		CategoryCounts: make(map[string]int),
	}
}
