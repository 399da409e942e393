package memstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memstore"
)

func TestRun_ErrorDescartaLosCambios(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	require.NoError(t, s.Repositories().Products.Create(ctx, &entity.Product{ID: "1", Kod: "A"}))

	boom := errors.New("boom")
	err := s.Run(ctx, func(r repository.Repositories) error {
		if _, err := r.Products.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.Products.Create(ctx, &entity.Product{ID: "2", Kod: "B"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, err := s.Repositories().Products.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Kod)
}

func TestRun_PublicaAlTerminarSinError(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	require.NoError(t, s.Run(ctx, func(r repository.Repositories) error {
		return r.Categories.Create(ctx, &entity.Category{ID: "c", Slug: "tools"})
	}))
	got, err := s.Repositories().Categories.GetBySlug(ctx, "tools")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestProductRepo_KodUnicoSinDistinguirMayusculas(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()
	repo := s.Repositories().Products
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "1", Kod: "g-1", Attributes: map[string]string{"a": "1"}}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.Product{ID: "2", Kod: "G-1"}), domain.ErrConflict)

	p, err := repo.GetByKod(ctx, "G-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	p.Attributes["a"] = "mutado"

	again, err := repo.GetByKod(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "1", again.Attributes["a"], "el store devuelve copias")
}
