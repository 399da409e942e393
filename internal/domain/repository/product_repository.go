package repository

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get devuelven (nil, nil) cuando el registro no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByKod busca sin distinguir mayúsculas (Kod es único en esa forma).
	GetByKod(ctx context.Context, kod string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// DeleteAll vacía la tabla de productos y devuelve cuántos se eliminaron.
	DeleteAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categorySlug string) ([]*entity.Product, error)
	CountByCategory(ctx context.Context, categorySlug string) (int, error)
	CountBySubcategory(ctx context.Context, categorySlug, subcategorySlug string) (int, error)
}
