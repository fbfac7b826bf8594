package database

import (
	"context"
	"time"

	"board/internal/core/notification"

	"github.com/gofrs/uuid"
)

type NotificationQueueRepositoryDatabase struct{}

func NewNotificationQueueRepositoryDatabase() *NotificationQueueRepositoryDatabase {
	return &NotificationQueueRepositoryDatabase{}
}

func (repo *NotificationQueueRepositoryDatabase) Enqueue(ctx context.Context, q *notification.Queue) (*notification.Queue, error) {
	if err := conn(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

func (repo *NotificationQueueRepositoryDatabase) GetPending(ctx context.Context, limit int64) ([]*notification.Queue, error) {
	var rows []*notification.Queue
	if err := conn(ctx).
		Where("status = ?", notification.StatusPending).
		Order("created_at ASC").
		Limit(int(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *NotificationQueueRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	return conn(ctx).Model(&notification.Queue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       notification.StatusDone,
			"processed_at": time.Now(),
		}).Error
}
