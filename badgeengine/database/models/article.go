package models

import (
	"time"

	"github.com/uptrace/bun"
)

const ArticleStatusPublished = "published"

type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID          int64     `bun:"id,pk,autoincrement"`
	AuthorID    string    `bun:"author_id,notnull"`
	Title       string    `bun:"title,notnull"`
	Status      string    `bun:"status,notnull"`
	PublishedAt time.Time `bun:"published_at"`
	CreatedAt   time.Time `bun:"created_at,notnull"`
}
