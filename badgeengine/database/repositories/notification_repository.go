package repositories

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/hatakesocial/badge-engine/badgeengine/database/models"
)

type NotificationRepository interface {
	GetUnread(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID string, notificationIDs []string) error
}

type notificationRepository struct {
	db *bun.DB
}

func NewNotificationRepository(db *bun.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetUnread(ctx context.Context, userID string) ([]*models.Notification, error) {
	var notifications []*models.Notification
	err := r.db.NewSelect().
		Model(&notifications).
		Where("user_id = ?", userID).
		Where("read = ?", false).
		Order("created_at DESC").
		Scan(ctx)

	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID string, notificationIDs []string) error {
	if len(notificationIDs) == 0 {
		return nil
	}

	_, err := r.db.NewUpdate().
		Model((*models.Notification)(nil)).
		Set("read = ?", true).
		Where("user_id = ?", userID).
		Where("id IN (?)", bun.In(notificationIDs)).
		Exec(ctx)
	return err
}
