package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull"`
	Participants []string  `bun:"participants,type:jsonb"`
	StartsAt     time.Time `bun:"starts_at"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}
