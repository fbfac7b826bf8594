package database

import (
	"context"

	"board/internal/core/favorite"

	"github.com/gofrs/uuid"
	"gorm.io/gorm/clause"
)

// FavoriteRepositoryDatabase implements FavoriteRepository with gorm.
type FavoriteRepositoryDatabase struct{}

func NewFavoriteRepositoryDatabase() *FavoriteRepositoryDatabase {
	return &FavoriteRepositoryDatabase{}
}

func (repo *FavoriteRepositoryDatabase) Create(ctx context.Context, f *favorite.Favorite) (bool, error) {
	res := conn(ctx).Omit("User").Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (repo *FavoriteRepositoryDatabase) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	res := conn(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&favorite.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (repo *FavoriteRepositoryDatabase) Exists(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx).Model(&favorite.Favorite{}).Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FavoriteRepositoryDatabase) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*favorite.Favorite, error) {
	var favorites []*favorite.Favorite
	if err := conn(ctx).Preload("User").Where("post_id = ?", postID).Order("created_at ASC").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}
