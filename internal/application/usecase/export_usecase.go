package usecase

import (
	"context"
	"fmt"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
)

// ExportUseCase exportaciones públicas del catálogo (cennik PDF y feed XML).
type ExportUseCase struct {
	query *CatalogQueryUseCase
	pdf   appcatalog.PriceListRenderer
	feed  appcatalog.FeedRenderer
}

func NewExportUseCase(query *CatalogQueryUseCase, pdf appcatalog.PriceListRenderer, feed appcatalog.FeedRenderer) *ExportUseCase {
	return &ExportUseCase{query: query, pdf: pdf, feed: feed}
}

func (uc *ExportUseCase) PriceList(ctx context.Context) ([]byte, error) {
	catalog, err := uc.query.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.RenderPriceList(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("generar cennik: %w", err)
	}
	return out, nil
}

func (uc *ExportUseCase) Feed(ctx context.Context) ([]byte, error) {
	catalog, err := uc.query.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.feed.RenderFeed(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("generar feed: %w", err)
	}
	return out, nil
}
