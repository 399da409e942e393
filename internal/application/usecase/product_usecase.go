package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ProductUseCase casos de uso de productos individuales (fuera del reemplazo masivo).
type ProductUseCase struct {
	tx      appcatalog.TxRunner
	cleaner *appcatalog.MediaCleaner
	media   appcatalog.MediaStore
	cache   appcatalog.CatalogCache
	log     *logger.Logger
	now     func() time.Time
}

// NewProductUseCase construye el caso de uso. media y cache pueden ser nil.
func NewProductUseCase(
	tx appcatalog.TxRunner,
	cleaner *appcatalog.MediaCleaner,
	media appcatalog.MediaStore,
	cache appcatalog.CatalogCache,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{tx: tx, cleaner: cleaner, media: media, cache: cache, log: log, now: time.Now}
}

// Create crea un producto en una categoría existente. Kod y Nazwa obligatorios; Kod único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	categorySlug := domcatalog.NormalizeSlug(in.CategorySlug)
	subcategorySlug := domcatalog.NormalizeSlug(in.SubcategorySlug)
	product := entity.ProductFromRow(uuid.New().String(), in.Row, categorySlug, uc.now())
	product.SubcategorySlug = subcategorySlug
	if product.Kod == "" {
		return nil, fmt.Errorf("%w: Kod es obligatorio", domain.ErrValidation)
	}
	if product.Nazwa == "" {
		return nil, fmt.Errorf("%w: Nazwa es obligatorio", domain.ErrValidation)
	}

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := requireCategory(ctx, repos, categorySlug); err != nil {
			return err
		}
		if subcategorySlug != "" {
			if err := requireSubcategory(ctx, repos, categorySlug, subcategorySlug); err != nil {
				return err
			}
		}
		existing, err := repos.Products.GetByKod(ctx, product.Kod)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: el producto %q ya existe", domain.ErrConflict, product.Kod)
		}
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	return &dto.CreateProductResponse{OK: true, Kod: product.Kod}, nil
}

// Update aplica solo las claves de la lista blanca; el resto se descarta sin error.
// Cambiar de categoría sin indicar subcategoría la limpia. Las imágenes reemplazadas se borran (best-effort).
func (uc *ProductUseCase) Update(ctx context.Context, kod string, updates map[string]string) (*dto.UpdateProductResponse, error) {
	applied := make(map[string]string, len(updates))
	for k, v := range updates {
		switch {
		case k == entity.FieldCategorySlug || k == entity.FieldSubcategorySlug:
			applied[k] = domcatalog.NormalizeSlug(v)
		case entity.IsUpdatableProductField(k):
			applied[k] = strings.TrimSpace(v)
		}
	}

	var (
		orphans []string
		stored  string
	)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByKod(ctx, kod)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, kod)
		}
		stored = p.Kod
		if len(applied) == 0 {
			return nil
		}
		oldImage, oldThumb := p.ImageStorageID, p.ThumbnailStorageID

		if v, ok := applied[entity.FieldNazwa]; ok && v == "" {
			return fmt.Errorf("%w: Nazwa no puede quedar vacío", domain.ErrValidation)
		}
		if cat, ok := applied[entity.FieldCategorySlug]; ok {
			if cat == "" {
				return fmt.Errorf("%w: categorySlug no puede quedar vacío", domain.ErrValidation)
			}
			if err := requireCategory(ctx, repos, cat); err != nil {
				return err
			}
			if _, sub := applied[entity.FieldSubcategorySlug]; !sub && cat != p.CategorySlug {
				applied[entity.FieldSubcategorySlug] = ""
			}
		}
		for k, v := range applied {
			p.Set(k, v)
		}
		if p.SubcategorySlug != "" {
			if err := requireSubcategory(ctx, repos, p.CategorySlug, p.SubcategorySlug); err != nil {
				return err
			}
		}
		p.UpdatedAt = uc.now()
		if err := repos.Products.Update(ctx, p); err != nil {
			return err
		}

		if oldImage != "" && oldImage != p.ImageStorageID {
			orphans = append(orphans, oldImage)
		}
		if oldThumb != "" && oldThumb != p.ThumbnailStorageID {
			orphans = append(orphans, oldThumb)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	media := uc.cleaner.DeleteAll(ctx, orphans)
	if len(applied) > 0 {
		invalidate(ctx, uc.cache, uc.log)
	}
	return &dto.UpdateProductResponse{OK: true, Kod: stored, Updated: applied, Media: media}, nil
}

// Delete elimina el producto y luego sus imágenes (best-effort).
func (uc *ProductUseCase) Delete(ctx context.Context, kod string) (*dto.DeleteProductResponse, error) {
	var (
		media  []string
		stored string
	)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByKod(ctx, kod)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, kod)
		}
		stored = p.Kod
		media = p.MediaIDs()
		return repos.Products.Delete(ctx, p.ID)
	})
	if err != nil {
		return nil, err
	}
	res := uc.cleaner.DeleteAll(ctx, media)
	invalidate(ctx, uc.cache, uc.log)
	return &dto.DeleteProductResponse{OK: true, Kod: stored, Media: res}, nil
}

// Get obtiene un producto por Kod.
func (uc *ProductUseCase) Get(ctx context.Context, kod string) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByKod(ctx, kod)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, kod)
		}
		resp := toProductResponse(p, uc.media)
		out = &resp
		return nil
	})
	return out, err
}

// List lista productos, opcionalmente filtrando por categoría.
func (uc *ProductUseCase) List(ctx context.Context, categorySlug string) (*dto.ProductListResponse, error) {
	var list []*entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if categorySlug == "" {
			list, err = repos.Products.ListAll(ctx)
		} else {
			list, err = repos.Products.ListByCategory(ctx, categorySlug)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p, uc.media))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

func requireCategory(ctx context.Context, repos repository.Repositories, slug string) error {
	c, err := repos.Categories.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: categoría %q", domain.ErrNotFound, slug)
	}
	return nil
}

func requireSubcategory(ctx context.Context, repos repository.Repositories, categorySlug, slug string) error {
	s, err := repos.Subcategories.Get(ctx, categorySlug, slug)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: subcategoría %q en %q", domain.ErrNotFound, slug, categorySlug)
	}
	return nil
}
