package category

import (
	"context"

	"board/internal/core/category"

	"github.com/gofrs/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *category.Category) (*category.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
	FindByName(ctx context.Context, name string) (*category.Category, error)
	FindAll(ctx context.Context) ([]*category.Category, error)
}

type CategoryDTO struct {
	ID   string `json:"categoryId"`
	Name string `json:"categoryName"`
}
