package database

import (
	"context"
	"errors"

	"board/internal/core/apperror"
	"board/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository with gorm.
type UserRepositoryDatabase struct{}

// NewUserRepositoryDatabase creates a UserRepositoryDatabase.
func NewUserRepositoryDatabase() *UserRepositoryDatabase {
	return &UserRepositoryDatabase{}
}

// Create reports a taken username as apperror.ErrDuplicateUser.
func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := conn(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.KindDuplicateUser, err)
		}
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := conn(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := conn(ctx).Model(&user.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
