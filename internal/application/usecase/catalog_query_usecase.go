package usecase

import (
	"context"
	"fmt"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const catalogCacheKey = "catalog:all"

// CatalogQueryUseCase lectura pública del catálogo (categorías con sus productos), cacheada.
type CatalogQueryUseCase struct {
	tx    appcatalog.TxRunner
	media appcatalog.MediaStore
	cache appcatalog.CatalogCache
	log   *logger.Logger
}

// NewCatalogQueryUseCase construye el caso de uso. media y cache pueden ser nil.
func NewCatalogQueryUseCase(tx appcatalog.TxRunner, media appcatalog.MediaStore, cache appcatalog.CatalogCache, log *logger.Logger) *CatalogQueryUseCase {
	return &CatalogQueryUseCase{tx: tx, media: media, cache: cache, log: log}
}

// Catalog devuelve todas las categorías en orden de presentación con sus productos.
func (uc *CatalogQueryUseCase) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	if uc.cache != nil {
		var cached dto.CatalogResponse
		hit, err := uc.cache.Get(ctx, catalogCacheKey, &cached)
		if err != nil {
			uc.log.Warn().Err(err).Msg("caché del catálogo no disponible")
		} else if hit {
			return &cached, nil
		}
	}

	out := &dto.CatalogResponse{}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		cats, err := repos.Categories.List(ctx)
		if err != nil {
			return err
		}
		products, err := repos.Products.ListAll(ctx)
		if err != nil {
			return err
		}
		byCategory := make(map[string][]*entity.Product, len(cats))
		for _, p := range products {
			byCategory[p.CategorySlug] = append(byCategory[p.CategorySlug], p)
		}
		domcatalog.SortCategories(cats)
		out.Categories = make([]dto.CatalogCategory, 0, len(cats))
		for _, c := range cats {
			out.Categories = append(out.Categories, uc.catalogCategory(c, byCategory[c.Slug]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, catalogCacheKey, out); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo guardar el catálogo en caché")
		}
	}
	return out, nil
}

// Category devuelve una categoría con sus productos.
func (uc *CatalogQueryUseCase) Category(ctx context.Context, slug string) (*dto.CatalogCategory, error) {
	all, err := uc.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	slug = domcatalog.NormalizeSlug(slug)
	for i := range all.Categories {
		if all.Categories[i].Category.Slug == slug {
			return &all.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("%w: categoría %q", domain.ErrNotFound, slug)
}

func (uc *CatalogQueryUseCase) catalogCategory(c *entity.Category, products []*entity.Product) dto.CatalogCategory {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p, uc.media))
	}
	return dto.CatalogCategory{Category: toCategoryResponse(c, len(items)), Products: items}
}
