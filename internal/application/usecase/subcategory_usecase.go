package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const (
	slugSuffixLen      = 5
	slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxSlugAttempts    = 20
)

// SubcategoryUseCase registro de subcategorías por categoría.
type SubcategoryUseCase struct {
	tx     appcatalog.TxRunner
	cache  appcatalog.CatalogCache
	log    *logger.Logger
	suffix func() string
}

// NewSubcategoryUseCase construye el caso de uso. cache puede ser nil.
func NewSubcategoryUseCase(tx appcatalog.TxRunner, cache appcatalog.CatalogCache, log *logger.Logger) *SubcategoryUseCase {
	return &SubcategoryUseCase{tx: tx, cache: cache, log: log, suffix: randomSuffix}
}

// Create crea una subcategoría. Sin slug explícito se deriva del nombre y, si choca, se le agrega
// un sufijo aleatorio; un slug explícito que choca es ErrConflict.
func (uc *SubcategoryUseCase) Create(ctx context.Context, categorySlug string, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	categorySlug = domcatalog.NormalizeSlug(categorySlug)
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, fmt.Errorf("%w: displayName es obligatorio", domain.ErrValidation)
	}
	explicit := strings.TrimSpace(in.Slug) != ""
	var base string
	if explicit {
		base = domcatalog.NormalizeSlug(in.Slug)
		if !domcatalog.IsValidSlug(base) {
			return nil, fmt.Errorf("%w: slug %q inválido", domain.ErrValidation, in.Slug)
		}
	} else {
		base = domcatalog.SlugifyDisplayName(name)
		if base == "" {
			return nil, fmt.Errorf("%w: no se puede derivar un slug de %q", domain.ErrValidation, name)
		}
	}

	var created *entity.Subcategory
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := requireCategory(ctx, repos, categorySlug); err != nil {
			return err
		}
		slug, err := uc.freeSlug(ctx, repos, categorySlug, base, explicit)
		if err != nil {
			return err
		}
		siblings, err := repos.Subcategories.ListByCategory(ctx, categorySlug)
		if err != nil {
			return err
		}
		order := 0
		for _, s := range siblings {
			if s.Order >= order {
				order = s.Order + 1
			}
		}
		created = &entity.Subcategory{ID: uuid.New().String(), CategorySlug: categorySlug, Slug: slug, DisplayName: name, Order: order}
		return repos.Subcategories.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, uc.log)
	resp := toSubcategoryResponse(created)
	return &resp, nil
}

func (uc *SubcategoryUseCase) freeSlug(ctx context.Context, repos repository.Repositories, categorySlug, base string, explicit bool) (string, error) {
	existing, err := repos.Subcategories.Get(ctx, categorySlug, base)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return base, nil
	}
	if explicit {
		return "", fmt.Errorf("%w: la subcategoría %q ya existe en %q", domain.ErrConflict, base, categorySlug)
	}
	for i := 0; i < maxSlugAttempts; i++ {
		candidate := base + "-" + uc.suffix()
		existing, err := repos.Subcategories.Get(ctx, categorySlug, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no se encontró un slug libre para %q", domain.ErrConflict, base)
}

// Delete elimina una subcategoría que ningún producto usa.
func (uc *SubcategoryUseCase) Delete(ctx context.Context, categorySlug, slug string) error {
	categorySlug = domcatalog.NormalizeSlug(categorySlug)
	slug = domcatalog.NormalizeSlug(slug)
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		s, err := repos.Subcategories.Get(ctx, categorySlug, slug)
		if err != nil {
			return err
		}
		if s == nil {
			return fmt.Errorf("%w: subcategoría %q en %q", domain.ErrNotFound, slug, categorySlug)
		}
		n, err := repos.Products.CountBySubcategory(ctx, categorySlug, slug)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: la subcategoría %q está en uso por %d productos", domain.ErrConflict, slug, n)
		}
		return repos.Subcategories.Delete(ctx, s.ID)
	})
	if err != nil {
		return err
	}
	invalidate(ctx, uc.cache, uc.log)
	return nil
}

// List subcategorías de la categoría ordenadas; lista vacía si no hay.
func (uc *SubcategoryUseCase) List(ctx context.Context, categorySlug string) ([]dto.SubcategoryResponse, error) {
	out := []dto.SubcategoryResponse{}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		subs, err := repos.Subcategories.ListByCategory(ctx, domcatalog.NormalizeSlug(categorySlug))
		if err != nil {
			return err
		}
		for _, s := range subs {
			out = append(out, toSubcategoryResponse(s))
		}
		return nil
	})
	return out, err
}

func randomSuffix() string {
	b := make([]byte, slugSuffixLen)
	for i := range b {
		b[i] = slugSuffixAlphabet[rand.IntN(len(slugSuffixAlphabet))]
	}
	return string(b)
}
