package models

import (
	"time"

	"github.com/uptrace/bun"
)

const NotificationTypeBadgeEarned = "badge_earned"

// Notification is written as part of the award transaction and consumed by
// the notification subsystem.
type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID               string    `bun:"id,pk"`
	UserID           string    `bun:"user_id,notnull"`
	Type             string    `bun:"type,notnull"`
	BadgeID          string    `bun:"badge_id,notnull"`
	BadgeName        string    `bun:"badge_name,notnull"`
	BadgeDescription string    `bun:"badge_description"`
	BadgeIcon        string    `bun:"badge_icon"`
	BadgeRarity      string    `bun:"badge_rarity"`
	Points           int64     `bun:"points,notnull,default:0"`
	Read             bool      `bun:"read,notnull,default:false"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
}
