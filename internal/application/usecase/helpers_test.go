package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memstore"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

type stubMedia struct {
	mu      sync.Mutex
	deleted []string
	failFor map[string]bool
}

func (s *stubMedia) PresignUpload(_ context.Context, storageID, contentType string, ttl time.Duration) (*appcatalog.UploadTarget, error) {
	return &appcatalog.UploadTarget{
		URL:       "https://blob.test/" + storageID + "?sig=x",
		Method:    "PUT",
		StorageID: storageID,
		Headers:   map[string]string{"Content-Type": contentType},
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (s *stubMedia) Delete(_ context.Context, storageID string) error {
	if s.failFor[storageID] {
		return errors.New("timeout")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, storageID)
	return nil
}

func (s *stubMedia) PublicURL(storageID string) string { return "https://cdn.test/" + storageID }

func (s *stubMedia) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

type env struct {
	store         *memstore.Store
	media         *stubMedia
	products      *usecase.ProductUseCase
	categories    *usecase.CategoryUseCase
	subcategories *usecase.SubcategoryUseCase
	images        *usecase.ImageUseCase
	query         *usecase.CatalogQueryUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memstore.New()
	media := &stubMedia{}
	log := logger.Nop()
	cleaner := appcatalog.NewMediaCleaner(media, log)
	products := usecase.NewProductUseCase(store, cleaner, media, nil, log)
	return &env{
		store:         store,
		media:         media,
		products:      products,
		categories:    usecase.NewCategoryUseCase(store, nil, log),
		subcategories: usecase.NewSubcategoryUseCase(store, nil, log),
		images:        usecase.NewImageUseCase(store, media, products, 0),
		query:         usecase.NewCatalogQueryUseCase(store, media, nil, log),
	}
}

func (e *env) category(t *testing.T, slug string) {
	t.Helper()
	require.NoError(t, e.store.Repositories().Categories.Create(context.Background(), &entity.Category{ID: "cat-" + slug, Slug: slug, TitleKey: "categories." + slug}))
}

func (e *env) subcategory(t *testing.T, categorySlug, slug string) {
	t.Helper()
	require.NoError(t, e.store.Repositories().Subcategories.Create(context.Background(), &entity.Subcategory{
		ID: "sub-" + categorySlug + "-" + slug, CategorySlug: categorySlug, Slug: slug, DisplayName: slug,
	}))
}

func (e *env) product(t *testing.T, p *entity.Product) {
	t.Helper()
	if p.ID == "" {
		p.ID = "p-" + p.Kod
	}
	require.NoError(t, e.store.Repositories().Products.Create(context.Background(), p))
}

func (e *env) get(t *testing.T, kod string) *entity.Product {
	t.Helper()
	p, err := e.store.Repositories().Products.GetByKod(context.Background(), kod)
	require.NoError(t, err)
	return p
}
