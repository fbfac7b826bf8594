package database

import (
	"context"

	"board/internal/core/category"

	"github.com/gofrs/uuid"
)

type CategoryRepositoryDatabase struct{}

func NewCategoryRepositoryDatabase() *CategoryRepositoryDatabase {
	return &CategoryRepositoryDatabase{}
}

func (repo *CategoryRepositoryDatabase) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	if err := conn(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *CategoryRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	var c category.Category
	if err := conn(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (repo *CategoryRepositoryDatabase) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var c category.Category
	if err := conn(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (repo *CategoryRepositoryDatabase) FindAll(ctx context.Context) ([]*category.Category, error) {
	var categories []*category.Category
	if err := conn(ctx).Order("created_at ASC").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
