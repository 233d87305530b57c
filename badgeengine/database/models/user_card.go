package models

import (
	"time"

	"github.com/uptrace/bun"
)

// UserCard is one card in a user's collection. Only the rarity string
// matters to the badge engine.
type UserCard struct {
	bun.BaseModel `bun:"table:user_cards,alias:uc"`

	ID       int64     `bun:"id,pk,autoincrement"`
	UserID   string    `bun:"user_id,notnull"`
	CardName string    `bun:"card_name,notnull"`
	SetCode  string    `bun:"set_code"`
	Rarity   string    `bun:"rarity"`
	AddedAt  time.Time `bun:"added_at,notnull"`
}
