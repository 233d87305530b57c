package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserBadge records a single earned badge. The (user_id, badge_id) unique
// constraint is the authoritative at-most-once guard for awards.
type UserBadge struct {
	bun.BaseModel `bun:"table:user_badges,alias:ub"`

	ID       int64     `bun:"id,pk,autoincrement"`
	UserID   string    `bun:"user_id,notnull,unique:user_badges_user_badge_idx"`
	BadgeID  string    `bun:"badge_id,notnull,unique:user_badges_user_badge_idx"`
	EarnedAt time.Time `bun:"earned_at,notnull"`
	Notified bool      `bun:"notified,notnull,default:false"`
}
