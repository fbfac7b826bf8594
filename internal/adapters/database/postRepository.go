package database

import (
	"context"
	"strings"
	"time"

	"board/internal/core/comment"
	"board/internal/core/favorite"
	"board/internal/core/notification"
	"board/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase implements PostRepository with gorm.
type PostRepositoryDatabase struct{}

// NewPostRepositoryDatabase creates a PostRepositoryDatabase.
func NewPostRepositoryDatabase() *PostRepositoryDatabase {
	return &PostRepositoryDatabase{}
}

// withListRelations preloads what the post views need.
func withListRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := conn(ctx).Omit("User", "Category").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := conn(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindByCategoryAndID(ctx context.Context, categoryID, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := conn(ctx).Where("id = ? AND category_id = ?", id, categoryID).First(&p).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindDetail(ctx context.Context, categoryID, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := withListRelations(conn(ctx)).Where("id = ? AND category_id = ?", id, categoryID).First(&p).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) ExistsByCategoryAndID(ctx context.Context, categoryID, id uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx).Model(&post.Post{}).Where("id = ? AND category_id = ?", id, categoryID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *PostRepositoryDatabase) IsOwner(ctx context.Context, categoryID, id, userID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx).Model(&post.Post{}).
		Where("id = ? AND category_id = ? AND user_id = ?", id, categoryID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	return conn(ctx).Model(&post.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"title":      p.Title,
		"contents":   p.Contents,
		"updated_at": time.Now(),
	}).Error
}

// ReplaceImages drops every image of the post and stores images in their place.
func (repo *PostRepositoryDatabase) ReplaceImages(ctx context.Context, postID uuid.UUID, images []post.Image) error {
	db := conn(ctx)
	if err := db.Where("post_id = ?", postID).Delete(&post.Image{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return db.Create(&images).Error
}

// Delete removes the post and every row hanging off it. Callers run it in a transaction.
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx)
	commentIDs := db.Model(&comment.Comment{}).Select("id").Where("post_id = ?", id)

	steps := []func() error{
		func() error {
			return db.Where("parent_comment_id IN (?)", commentIDs).Delete(&comment.SubComment{}).Error
		},
		func() error { return db.Where("post_id = ?", id).Delete(&comment.Comment{}).Error },
		func() error { return db.Where("post_id = ?", id).Delete(&favorite.Favorite{}).Error },
		func() error { return db.Where("post_id = ?", id).Delete(&notification.Notification{}).Error },
		func() error { return db.Where("post_id = ?", id).Delete(&notification.Queue{}).Error },
		func() error { return db.Where("post_id = ?", id).Delete(&post.Image{}).Error },
		func() error { return db.Where("id = ?", id).Delete(&post.Post{}).Error },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (repo *PostRepositoryDatabase) increment(ctx context.Context, id uuid.UUID, column string) error {
	return conn(ctx).Model(&post.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}

func (repo *PostRepositoryDatabase) IncreaseViewCount(ctx context.Context, id uuid.UUID) error {
	return repo.increment(ctx, id, "view_count")
}

func (repo *PostRepositoryDatabase) IncreaseFavoriteCount(ctx context.Context, id uuid.UUID) error {
	return repo.increment(ctx, id, "favorite_count")
}

func (repo *PostRepositoryDatabase) IncreaseCommentCount(ctx context.Context, id uuid.UUID) error {
	return repo.increment(ctx, id, "comment_count")
}

// DecreaseFavoriteCount never takes the counter below zero.
func (repo *PostRepositoryDatabase) DecreaseFavoriteCount(ctx context.Context, id uuid.UUID) error {
	return conn(ctx).Model(&post.Post{}).
		Where("id = ? AND favorite_count > 0", id).
		UpdateColumn("favorite_count", gorm.Expr("favorite_count - ?", 1)).Error
}

func (repo *PostRepositoryDatabase) FavoriteCount(ctx context.Context, id uuid.UUID) (int, error) {
	var p post.Post
	if err := conn(ctx).Select("favorite_count").Where("id = ?", id).First(&p).Error; err != nil {
		return 0, err
	}
	return p.FavoriteCount, nil
}

func (repo *PostRepositoryDatabase) FindLatestByCategory(ctx context.Context, categoryID uuid.UUID) ([]*post.Post, error) {
	var posts []*post.Post
	if err := withListRelations(conn(ctx)).
		Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindTopByCategorySince(ctx context.Context, categoryID uuid.UUID, since time.Time, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := withListRelations(conn(ctx)).
		Where("category_id = ? AND created_at >= ?", categoryID, since).
		Order("favorite_count DESC").
		Order("comment_count DESC").
		Order("view_count DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Search matches searchWord in the title or contents. A non-empty relationWord
// must match as well.
func (repo *PostRepositoryDatabase) Search(ctx context.Context, searchWord, relationWord string) ([]*post.Post, error) {
	q := withListRelations(conn(ctx))
	for _, word := range []string{searchWord, relationWord} {
		if word == "" {
			continue
		}
		pattern := likePattern(word)
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(contents) LIKE ?)", pattern, pattern)
	}

	var posts []*post.Post
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*post.Post, error) {
	var posts []*post.Post
	if err := withListRelations(conn(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(word string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(word)) + "%"
}
