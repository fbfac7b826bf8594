package comment

import (
	"context"

	"board/internal/core/comment"
	userPort "board/internal/ports/user"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	CreateSubComment(ctx context.Context, sub *comment.SubComment) (*comment.SubComment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error)
	// FindByPostID returns the comments of a post oldest first, each with its
	// user and its sub-comments (and their users) loaded.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error)
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type SubCommentRequest struct {
	Content         string `json:"content" binding:"required"`
	ParentCommentID string `json:"parentCommentId" binding:"required"`
}

type SubCommentDTO struct {
	ID      string            `json:"subCommentId"`
	Content string            `json:"content"`
	Writer  *userPort.UserDTO `json:"writer"`
}

type CommentDTO struct {
	ID          string            `json:"commentId"`
	Contents    string            `json:"contents"`
	Writer      *userPort.UserDTO `json:"writer"`
	SubComments []SubCommentDTO   `json:"subComments"`
	CreatedAt   string            `json:"writeDatetime"`
}
