package comment

import (
	"time"

	"board/internal/core/user"

	"github.com/gofrs/uuid"
)

type Comment struct {
	ID          uuid.UUID    `gorm:"primary_key;type:char(36)"`
	Contents    string       `gorm:"type:text;not null"`
	UserID      uuid.UUID    `gorm:"type:char(36);not null"`
	User        user.User    `gorm:"foreignkey:UserID"`
	PostID      uuid.UUID    `gorm:"type:char(36);not null;index"`
	SubComments []SubComment `gorm:"foreignkey:ParentCommentID"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
}

// SubComment is a one level reply to a Comment. UserID records the replying
// user; it is nil for rows written before authors were tracked.
type SubComment struct {
	ID              uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Content         string     `gorm:"type:text;not null"`
	ParentCommentID uuid.UUID  `gorm:"type:char(36);not null;index"`
	UserID          *uuid.UUID `gorm:"type:char(36)"`
	User            *user.User `gorm:"foreignkey:UserID"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}
