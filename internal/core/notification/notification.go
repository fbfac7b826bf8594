package notification

import (
	"time"

	"board/internal/core/post"
	"board/internal/core/user"

	"github.com/gofrs/uuid"
)

type Kind string

const (
	KindFavorite   Kind = "favorite"
	KindComment    Kind = "comment"
	KindSubComment Kind = "sub_comment"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Notification is a delivered entry in a post owner's inbox.
type Notification struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"` // recipient
	ActorID   uuid.UUID `gorm:"type:char(36);not null"`
	Actor     user.User `gorm:"foreignkey:ActorID"`
	PostID    uuid.UUID `gorm:"type:char(36);not null"`
	Post      post.Post `gorm:"foreignkey:PostID"`
	Kind      Kind      `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Queue is the outbox row written in the same transaction as the action
// that triggers it; the notification worker drains pending rows.
type Queue struct {
	ID          uuid.UUID  `gorm:"primary_key;type:char(36)"`
	PostID      uuid.UUID  `gorm:"type:char(36);not null"`
	ActorID     uuid.UUID  `gorm:"type:char(36);not null"`
	Kind        Kind       `gorm:"type:varchar(20);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"` // pending, done
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (Queue) TableName() string { return "notification_queue" }
