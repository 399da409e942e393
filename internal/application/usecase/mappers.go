package usecase

import (
	"context"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func toProductResponse(p *entity.Product, media appcatalog.MediaStore) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:                 p.ID,
		Kod:                p.Kod,
		Nazwa:              p.Nazwa,
		CenaNetto:          p.CenaNetto,
		JednostkaMiary:     p.JednostkaMiary,
		StawkaVAT:          p.StawkaVAT,
		Opis:               p.Opis,
		Attributes:         p.Attributes,
		CategorySlug:       p.CategorySlug,
		SubcategorySlug:    p.SubcategorySlug,
		ImageStorageID:     p.ImageStorageID,
		ThumbnailStorageID: p.ThumbnailStorageID,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if media != nil {
		if p.ImageStorageID != "" {
			out.ImageURL = media.PublicURL(p.ImageStorageID)
		}
		if p.ThumbnailStorageID != "" {
			out.ThumbnailURL = media.PublicURL(p.ThumbnailStorageID)
		}
	}
	return out
}

func toCategoryResponse(c *entity.Category, productCount int) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		TitleKey:     c.TitleKey,
		DisplayName:  c.DisplayName,
		CreatedAt:    c.CreatedAt,
		AdminCreated: c.IsAdminCreated(),
		ProductCount: productCount,
	}
}

func toSubcategoryResponse(s *entity.Subcategory) dto.SubcategoryResponse {
	return dto.SubcategoryResponse{
		ID:           s.ID,
		CategorySlug: s.CategorySlug,
		Slug:         s.Slug,
		DisplayName:  s.DisplayName,
		Order:        s.Order,
	}
}

// invalidate invalida la caché pública tras una mutación; un fallo solo se registra.
func invalidate(ctx context.Context, cache appcatalog.CatalogCache, log *logger.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar la caché del catálogo")
	}
}
