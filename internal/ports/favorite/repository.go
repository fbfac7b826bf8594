package favorite

import (
	"context"

	"board/internal/core/favorite"

	"github.com/gofrs/uuid"
)

type FavoriteRepository interface {
	// Create inserts the favorite unless the pair already exists and reports whether a row was added.
	Create(ctx context.Context, favorite *favorite.Favorite) (bool, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	// FindByPostID returns the favorites of a post with their users loaded.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*favorite.Favorite, error)
}

type FavoriteDTO struct {
	Username     string `json:"userId"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}
