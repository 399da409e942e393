package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// ReplaceCatalogUseCase reemplaza el catálogo completo a partir de secciones clasificadas,
// conservando las imágenes por Kod y las categorías creadas por administradores.
// Todo el reemplazo corre en una sola transacción: si algo falla, el catálogo anterior queda intacto.
type ReplaceCatalogUseCase struct {
	tx      TxRunner
	cleaner *MediaCleaner
	cache   CatalogCache
	log     *logger.Logger
	now     func() time.Time
}

// NewReplaceCatalogUseCase construye el caso de uso. cache puede ser nil.
func NewReplaceCatalogUseCase(tx TxRunner, cleaner *MediaCleaner, cache CatalogCache, log *logger.Logger) *ReplaceCatalogUseCase {
	return &ReplaceCatalogUseCase{tx: tx, cleaner: cleaner, cache: cache, log: log, now: time.Now}
}

type preservedMedia struct {
	image     string
	thumbnail string
}

// Replace ejecuta el reemplazo:
//  1. guarda en memoria los ids de imagen de los productos actuales, por Kod
//  2. elimina todos los productos
//  3. poda las categorías de reglas que ya no aparecen y actualiza/crea las de las secciones
//  4. inserta cada ítem con su categoría (override por fila o slug de la sección) y sus imágenes recuperadas
//
// Tras el commit borra (best-effort) las imágenes de productos que no volvieron.
// Una lista vacía deja el catálogo sin productos y solo con las categorías de administrador.
func (uc *ReplaceCatalogUseCase) Replace(ctx context.Context, sections []entity.Section) (*dto.ReplaceCatalogResponse, error) {
	for i, s := range sections {
		if strings.TrimSpace(s.Slug) == "" {
			return nil, fmt.Errorf("%w: la sección #%d no tiene slug", domain.ErrValidation, i)
		}
	}

	out := &dto.ReplaceCatalogResponse{OK: true, SectionsCount: len(sections)}
	var orphanMedia []string

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Products.ListAll(ctx)
		if err != nil {
			return err
		}
		preserved := make(map[string]preservedMedia)
		for _, p := range existing {
			if p.HasMedia() {
				preserved[entity.NormalizeKod(p.Kod)] = preservedMedia{image: p.ImageStorageID, thumbnail: p.ThumbnailStorageID}
			}
		}

		removed, err := repos.Products.DeleteAll(ctx)
		if err != nil {
			return err
		}
		out.ProductsRemoved = removed

		known, deleted, err := uc.syncCategories(ctx, repos, sections)
		if err != nil {
			return err
		}
		out.CategoriesDeleted = deleted

		now := uc.now()
		seen := make(map[string]struct{})
		for _, section := range sections {
			for _, item := range section.Items {
				p, err := productFromRow(item, section.Slug, now)
				if err != nil {
					return err
				}
				key := entity.NormalizeKod(p.Kod)
				if _, dup := seen[key]; dup {
					return fmt.Errorf("%w: el Kod %q aparece más de una vez", domain.ErrConflict, p.Kod)
				}
				seen[key] = struct{}{}
				if _, ok := known[p.CategorySlug]; !ok {
					return fmt.Errorf("%w: categoría %q del producto %q", domain.ErrNotFound, p.CategorySlug, p.Kod)
				}
				if m, ok := preserved[key]; ok {
					if m.image != "" {
						p.ImageStorageID = m.image
					}
					if m.thumbnail != "" {
						p.ThumbnailStorageID = m.thumbnail
					}
					delete(preserved, key)
					out.ImagesPreserved++
				}
				if err := repos.Products.Create(ctx, p); err != nil {
					return err
				}
				out.ProductsCount++
			}
		}

		for _, m := range preserved {
			if m.image != "" {
				orphanMedia = append(orphanMedia, m.image)
			}
			if m.thumbnail != "" {
				orphanMedia = append(orphanMedia, m.thumbnail)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int("sections", len(sections)).Msg("reemplazo de catálogo abortado")
		return nil, err
	}

	out.Media = uc.cleaner.DeleteAll(ctx, orphanMedia)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché del catálogo")
		}
	}
	uc.log.Info().
		Int("sections", out.SectionsCount).
		Int("products", out.ProductsCount).
		Int64("removed", out.ProductsRemoved).
		Int("images_preserved", out.ImagesPreserved).
		Int("categories_deleted", out.CategoriesDeleted).
		Msg("catálogo reemplazado")
	return out, nil
}

// syncCategories poda las categorías de reglas ausentes (y sus subcategorías), actualiza TitleKey/Position
// de las presentes y crea las que faltan. Devuelve el conjunto de slugs vigentes.
func (uc *ReplaceCatalogUseCase) syncCategories(
	ctx context.Context,
	repos repository.Repositories,
	sections []entity.Section,
) (map[string]struct{}, int, error) {
	inSections := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		inSections[s.Slug] = struct{}{}
	}

	existing, err := repos.Categories.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	bySlug := make(map[string]*entity.Category, len(existing))
	deleted := 0
	for _, c := range existing {
		if _, keep := inSections[c.Slug]; !keep && !c.IsAdminCreated() {
			if _, err := repos.Subcategories.DeleteByCategory(ctx, c.Slug); err != nil {
				return nil, 0, err
			}
			if err := repos.Categories.Delete(ctx, c.ID); err != nil {
				return nil, 0, err
			}
			deleted++
			continue
		}
		bySlug[c.Slug] = c
	}

	upserted := make(map[string]struct{}, len(sections))
	for i, s := range sections {
		if _, done := upserted[s.Slug]; done {
			continue
		}
		upserted[s.Slug] = struct{}{}
		if c, ok := bySlug[s.Slug]; ok {
			c.TitleKey = s.TitleKey
			c.Position = i
			if err := repos.Categories.Update(ctx, c); err != nil {
				return nil, 0, err
			}
			continue
		}
		c := &entity.Category{ID: uuid.New().String(), Slug: s.Slug, TitleKey: s.TitleKey, Position: i}
		if err := repos.Categories.Create(ctx, c); err != nil {
			return nil, 0, err
		}
		bySlug[s.Slug] = c
	}

	known := make(map[string]struct{}, len(bySlug))
	for slug := range bySlug {
		known[slug] = struct{}{}
	}
	return known, deleted, nil
}

// productFromRow arma el producto de un ítem de sección. La categoría es el override de la fila o el slug de la sección.
func productFromRow(row entity.Row, sectionSlug string, now time.Time) (*entity.Product, error) {
	category := strings.TrimSpace(row.Get(entity.FieldCategorySlug))
	if category == "" {
		category = sectionSlug
	}
	p := entity.ProductFromRow(uuid.New().String(), row, category, now)
	if p.Kod == "" {
		return nil, fmt.Errorf("%w: fila sin Kod en la sección %q", domain.ErrValidation, sectionSlug)
	}
	return p, nil
}
