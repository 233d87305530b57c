package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Deck struct {
	bun.BaseModel `bun:"table:decks,alias:d"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    string    `bun:"user_id,notnull"`
	Name      string    `bun:"name,notnull"`
	Format    string    `bun:"format"`
	Public    bool      `bun:"public,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}
