package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// SubcategoryRepository define el puerto de persistencia para Subcategory (único por categoría + slug).
type SubcategoryRepository interface {
	Create(ctx context.Context, sub *entity.Subcategory) error
	Get(ctx context.Context, categorySlug, slug string) (*entity.Subcategory, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]*entity.Subcategory, error)
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categorySlug string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
