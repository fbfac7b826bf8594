package database

import (
	"context"
	"time"

	"board/internal/core/notification"

	"github.com/gofrs/uuid"
	"gorm.io/gorm/clause"
)

type NotificationRepositoryDatabase struct{}

func NewNotificationRepositoryDatabase() *NotificationRepositoryDatabase {
	return &NotificationRepositoryDatabase{}
}

func (repo *NotificationRepositoryDatabase) Add(ctx context.Context, n *notification.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.Must(uuid.NewV4())
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return conn(ctx).Omit("Actor", "Post").Clauses(clause.OnConflict{DoNothing: true}).Create(n).Error
}

// FindByIDs keeps the order of ids; ids without a row are skipped.
func (repo *NotificationRepositoryDatabase) FindByIDs(ctx context.Context, ids []string) ([]*notification.Notification, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []*notification.Notification
	if err := conn(ctx).Preload("Actor").Preload("Post").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]*notification.Notification, len(rows))
	for _, n := range rows {
		byID[n.ID.String()] = n
	}
	ordered := make([]*notification.Notification, 0, len(rows))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			ordered = append(ordered, n)
		}
	}
	return ordered, nil
}
