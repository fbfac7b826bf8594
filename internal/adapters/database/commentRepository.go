package database

import (
	"context"

	"board/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CommentRepositoryDatabase struct{}

func NewCommentRepositoryDatabase() *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := conn(ctx).Omit("User", "SubComments").Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CommentRepositoryDatabase) CreateSubComment(ctx context.Context, sub *comment.SubComment) (*comment.SubComment, error) {
	if err := conn(ctx).Omit("User").Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (repo *CommentRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	if err := conn(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (repo *CommentRepositoryDatabase) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := conn(ctx).
		Preload("User").
		Preload("SubComments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("SubComments.User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
