package post

import (
	"time"

	"board/internal/core/category"
	"board/internal/core/user"

	"github.com/gofrs/uuid"
)

// Post counters are denormalized: FavoriteCount and CommentCount mirror the
// favorites and comments rows of the post and are only changed through
// atomic increments in the repository.
type Post struct {
	ID            uuid.UUID         `gorm:"primary_key;type:char(36)"`
	Title         string            `gorm:"type:varchar(255);not null"`
	Contents      string            `gorm:"type:text;not null"`
	ViewCount     int               `gorm:"not null;default:0"`
	FavoriteCount int               `gorm:"not null;default:0"`
	CommentCount  int               `gorm:"not null;default:0"`
	UserID        uuid.UUID         `gorm:"type:char(36);not null;index"`
	User          user.User         `gorm:"foreignkey:UserID"`
	CategoryID    uuid.UUID         `gorm:"type:char(36);not null;index"`
	Category      category.Category `gorm:"foreignkey:CategoryID"`
	Images        []Image           `gorm:"foreignkey:PostID"`
	CreatedAt     time.Time         `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime"`
}

// Image keeps the position of the url inside the post's image list.
type Image struct {
	ID       uuid.UUID `gorm:"primary_key;type:char(36)"`
	PostID   uuid.UUID `gorm:"type:char(36);not null;index"`
	URL      string    `gorm:"type:varchar(500);not null"`
	Position int       `gorm:"not null"`
}

// NewImages builds the image rows of a post, one per url, in input order.
func NewImages(postID uuid.UUID, urls []string) []Image {
	images := make([]Image, 0, len(urls))
	for i, u := range urls {
		images = append(images, Image{
			ID:       uuid.Must(uuid.NewV4()),
			PostID:   postID,
			URL:      u,
			Position: i,
		})
	}
	return images
}
