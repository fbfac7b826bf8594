package notification

import (
	"context"
	"time"

	"board/internal/core/notification"
	userPort "board/internal/ports/user"

	"github.com/gofrs/uuid"
)

type QueueRepository interface {
	Enqueue(ctx context.Context, q *notification.Queue) (*notification.Queue, error)
	GetPending(ctx context.Context, limit int64) ([]*notification.Queue, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	// Add stores n; a notification whose id is already stored is left untouched.
	Add(ctx context.Context, n *notification.Notification) error
	// FindByIDs loads notifications with actor and post, keeping the order of ids.
	FindByIDs(ctx context.Context, ids []string) ([]*notification.Notification, error)
}

// Inbox keeps per-user notification ids ordered by time.
type Inbox interface {
	Push(ctx context.Context, userID, notificationID string, at time.Time) error
	Range(ctx context.Context, userID string, start, limit int64) ([]string, error)
}

type NotificationDTO struct {
	ID         string            `json:"notificationId"`
	Kind       string            `json:"kind"`
	PostID     string            `json:"postId"`
	CategoryID string            `json:"categoryId"`
	Actor      *userPort.UserDTO `json:"actor"`
	CreatedAt  string            `json:"createdAt"`
}
