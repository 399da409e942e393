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

// CategoryUseCase administración de categorías.
type CategoryUseCase struct {
	tx    appcatalog.TxRunner
	cache appcatalog.CatalogCache
	log   *logger.Logger
	now   func() time.Time
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(tx appcatalog.TxRunner, cache appcatalog.CatalogCache, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{tx: tx, cache: cache, log: log, now: time.Now}
}

// Create crea una categoría de administrador (con displayName y createdAt).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	slug := domcatalog.NormalizeSlug(in.Slug)
	if !domcatalog.IsValidSlug(slug) {
		return nil, fmt.Errorf("%w: slug %q: solo minúsculas, dígitos, guion y guion bajo", domain.ErrValidation, in.Slug)
	}
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: displayName es obligatorio", domain.ErrValidation)
	}
	now := uc.now()
	category := &entity.Category{ID: uuid.New().String(), Slug: slug, TitleKey: slug, DisplayName: &name, CreatedAt: &now}

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Categories.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: la categoría %q ya existe", domain.ErrConflict, slug)
		}
		return repos.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	resp := toCategoryResponse(category, 0)
	return &resp, nil
}

// Delete elimina una categoría vacía junto con sus subcategorías.
func (uc *CategoryUseCase) Delete(ctx context.Context, slug string) error {
	slug = domcatalog.NormalizeSlug(slug)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		c, err := repos.Categories.GetBySlug(ctx, slug)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: categoría %q", domain.ErrNotFound, slug)
		}
		n, err := repos.Products.CountByCategory(ctx, slug)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: la categoría %q tiene %d productos", domain.ErrConflict, slug, n)
		}
		if _, err := repos.Subcategories.DeleteByCategory(ctx, slug); err != nil {
			return err
		}
		return repos.Categories.Delete(ctx, c.ID)
	})
	if err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

// SetCategories reemplaza todas las categorías (sin excepción para las de administrador) y todas las
// subcategorías. Exige confirmación explícita. Si algún producto queda sin categoría se revierte todo;
// los productos pierden su subcategoría.
func (uc *CategoryUseCase) SetCategories(ctx context.Context, in dto.SetCategoriesRequest) (*dto.SetCategoriesResponse, error) {
	if !in.ConfirmDestruction {
		return nil, fmt.Errorf("%w: setCategories borra todas las categorías; envíe confirmDestruction=true", domain.ErrConfirmationRequired)
	}
	if len(in.Categories) == 0 {
		return nil, fmt.Errorf("%w: la lista de categorías está vacía", domain.ErrValidation)
	}

	now := uc.now()
	next := make([]*entity.Category, 0, len(in.Categories))
	seen := make(map[string]struct{}, len(in.Categories))
	for i, c := range in.Categories {
		slug := domcatalog.NormalizeSlug(c.Slug)
		if !domcatalog.IsValidSlug(slug) {
			return nil, fmt.Errorf("%w: slug %q inválido", domain.ErrValidation, c.Slug)
		}
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%w: slug %q repetido", domain.ErrValidation, slug)
		}
		seen[slug] = struct{}{}
		cat := &entity.Category{ID: uuid.New().String(), Slug: slug, TitleKey: strings.TrimSpace(c.TitleKey), Position: i}
		if cat.TitleKey == "" {
			cat.TitleKey = slug
		}
		if c.DisplayName != nil && strings.TrimSpace(*c.DisplayName) != "" {
			name := strings.TrimSpace(*c.DisplayName)
			created := now.Add(time.Duration(i))
			cat.DisplayName = &name
			cat.CreatedAt = &created
		}
		next = append(next, cat)
	}

	out := &dto.SetCategoriesResponse{OK: true}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		products, err := repos.Products.ListAll(ctx)
		if err != nil {
			return err
		}
		missing := 0
		for _, p := range products {
			if _, ok := seen[p.CategorySlug]; !ok {
				missing++
			}
		}
		if missing > 0 {
			return fmt.Errorf("%w: %d productos quedarían sin categoría", domain.ErrConflict, missing)
		}

		for _, p := range products {
			if p.SubcategorySlug == "" {
				continue
			}
			p.SubcategorySlug = ""
			p.UpdatedAt = now
			if err := repos.Products.Update(ctx, p); err != nil {
				return err
			}
			out.ProductsDetached++
		}
		if out.SubcategoriesDeleted, err = repos.Subcategories.DeleteAll(ctx); err != nil {
			return err
		}
		if out.Deleted, err = repos.Categories.DeleteAll(ctx); err != nil {
			return err
		}
		for _, c := range next {
			if err := repos.Categories.Create(ctx, c); err != nil {
				return err
			}
			out.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	uc.log.Warn().
		Int64("deleted", out.Deleted).
		Int("created", out.Created).
		Int("products_detached", out.ProductsDetached).
		Msg("categorías reemplazadas por completo")
	return out, nil
}

// List categorías para mostrar (las de reglas por posición, luego las de administrador por fecha) con su conteo.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		cats, err := repos.Categories.List(ctx)
		if err != nil {
			return err
		}
		domcatalog.SortCategories(cats)
		out = make([]dto.CategoryResponse, 0, len(cats))
		for _, c := range cats {
			n, err := repos.Products.CountByCategory(ctx, c.Slug)
			if err != nil {
				return err
			}
			out = append(out, toCategoryResponse(c, n))
		}
		return nil
	})
	return out, err
}
