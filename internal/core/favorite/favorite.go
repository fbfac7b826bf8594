package favorite

import (
	"time"

	"board/internal/core/user"

	"github.com/gofrs/uuid"
)

// Favorite is a user's like on a post. The row existing is the whole state.
type Favorite struct {
	UserID    uuid.UUID `gorm:"primaryKey;type:char(36)"`
	User      user.User `gorm:"foreignkey:UserID"`
	PostID    uuid.UUID `gorm:"primaryKey;type:char(36);index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
