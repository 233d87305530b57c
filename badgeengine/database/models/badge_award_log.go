package models

import (
	"time"

	"github.com/uptrace/bun"
)

const AwardTypeManual = "manual"

// BadgeAwardLog is the audit trail for manual (admin) awards.
type BadgeAwardLog struct {
	bun.BaseModel `bun:"table:badge_award_logs,alias:bal"`

	ID        string    `bun:"id,pk"`
	UserID    string    `bun:"user_id,notnull"`
	BadgeID   string    `bun:"badge_id,notnull"`
	AwardedBy string    `bun:"awarded_by,notnull"`
	Type      string    `bun:"type,notnull"`
	AwardedAt time.Time `bun:"awarded_at,notnull"`
}
