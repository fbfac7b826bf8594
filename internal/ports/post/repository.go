package post

import (
	"context"
	"time"

	"board/internal/core/post"
	categoryPort "board/internal/ports/category"
	userPort "board/internal/ports/user"

	"github.com/gofrs/uuid"
)

// PostRepository is the Data Store Gateway for posts. Find methods return
// (nil, nil) when no row matches. Counter methods update in a single SQL
// statement and never read-modify-write.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	FindByCategoryAndID(ctx context.Context, categoryID, id uuid.UUID) (*post.Post, error)
	// FindDetail loads the post with its writer, category and ordered images.
	FindDetail(ctx context.Context, categoryID, id uuid.UUID) (*post.Post, error)
	ExistsByCategoryAndID(ctx context.Context, categoryID, id uuid.UUID) (bool, error)
	IsOwner(ctx context.Context, categoryID, id, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, post *post.Post) error
	ReplaceImages(ctx context.Context, postID uuid.UUID, images []post.Image) error
	Delete(ctx context.Context, id uuid.UUID) error

	IncreaseViewCount(ctx context.Context, id uuid.UUID) error
	IncreaseFavoriteCount(ctx context.Context, id uuid.UUID) error
	DecreaseFavoriteCount(ctx context.Context, id uuid.UUID) error
	IncreaseCommentCount(ctx context.Context, id uuid.UUID) error
	FavoriteCount(ctx context.Context, id uuid.UUID) (int, error)

	FindLatestByCategory(ctx context.Context, categoryID uuid.UUID) ([]*post.Post, error)
	FindTopByCategorySince(ctx context.Context, categoryID uuid.UUID, since time.Time, limit int) ([]*post.Post, error)
	Search(ctx context.Context, searchWord, relationWord string) ([]*post.Post, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*post.Post, error)
}

// Requests

type PostBoardRequest struct {
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	ImageURLs []string `json:"boardImageList"`
}

type PatchBoardRequest struct {
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	ImageURLs []string `json:"boardImageList"`
}

// Views

type ImageDTO struct {
	URL string `json:"url"`
}

type PostDTO struct {
	ID            string                    `json:"postId"`
	Category      *categoryPort.CategoryDTO `json:"category"`
	Writer        *userPort.UserDTO         `json:"writer"`
	Title         string                    `json:"title"`
	Contents      string                    `json:"contents"`
	FavoriteCount int                       `json:"favoriteCount"`
	CommentCount  int                       `json:"commentCount"`
	ViewCount     int                       `json:"viewCount"`
	Images        []ImageDTO                `json:"boardImageList"`
	CreatedAt     string                    `json:"writeDatetime"`
}

type FavoriteResponse struct {
	FavoriteCount int `json:"favoriteCount"`
}
