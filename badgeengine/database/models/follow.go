package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Follow is a follower edge: FollowerID follows UserID.
type Follow struct {
	bun.BaseModel `bun:"table:follows,alias:f"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     string    `bun:"user_id,notnull,unique:follows_user_follower_idx"`
	FollowerID string    `bun:"follower_id,notnull,unique:follows_user_follower_idx"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}
