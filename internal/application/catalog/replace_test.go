package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memstore"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

type replaceFixture struct {
	store *memstore.Store
	media *fakeMediaStore
	cache *fakeCache
	uc    *catalog.ReplaceCatalogUseCase
}

func newReplaceFixture(t *testing.T) *replaceFixture {
	t.Helper()
	f := &replaceFixture{store: memstore.New(), media: &fakeMediaStore{}, cache: &fakeCache{}}
	f.uc = catalog.NewReplaceCatalogUseCase(f.store, catalog.NewMediaCleaner(f.media, logger.Nop()), f.cache, logger.Nop())
	return f
}

func (f *replaceFixture) seedCategory(t *testing.T, c *entity.Category) {
	t.Helper()
	require.NoError(t, f.store.Repositories().Categories.Create(context.Background(), c))
}

func (f *replaceFixture) seedProduct(t *testing.T, p *entity.Product) {
	t.Helper()
	require.NoError(t, f.store.Repositories().Products.Create(context.Background(), p))
}

func section(slug string, rows ...entity.Row) entity.Section {
	return entity.Section{Slug: slug, TitleKey: "categories." + slug, Items: rows}
}

func TestReplace_ConservaImagenPorKod(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	f.seedCategory(t, &entity.Category{ID: "c1", Slug: "gloves", TitleKey: "categories.gloves"})
	f.seedProduct(t, &entity.Product{ID: "p1", Kod: "G-1", Nazwa: "Rękawice", CategorySlug: "gloves", ImageStorageID: "img-A"})

	res, err := f.uc.Replace(ctx, []entity.Section{
		section("gloves", entity.Row{"Kod": "G-1", "Nazwa": "Rękawice nitrylowe"}),
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 1, res.SectionsCount)
	assert.Equal(t, 1, res.ProductsCount)
	assert.Equal(t, 1, res.ImagesPreserved)

	p, err := f.store.Repositories().Products.GetByKod(ctx, "G-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "img-A", p.ImageStorageID)
	assert.Equal(t, "Rękawice nitrylowe", p.Nazwa)
	assert.Empty(t, f.media.Deleted(), "la imagen conservada no se borra")
}

func TestReplace_KodSeNormalizaAlRecuperarImagen(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	f.seedCategory(t, &entity.Category{ID: "c1", Slug: "gloves"})
	f.seedProduct(t, &entity.Product{ID: "p1", Kod: "g-1", CategorySlug: "gloves", ImageStorageID: "img-A", ThumbnailStorageID: "th-A"})

	_, err := f.uc.Replace(ctx, []entity.Section{section("gloves", entity.Row{"Symbol": " G-1 ", "Nazwa": "x"})})
	require.NoError(t, err)

	p, err := f.store.Repositories().Products.GetByKod(ctx, "G-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "img-A", p.ImageStorageID)
	assert.Equal(t, "th-A", p.ThumbnailStorageID)
}

func TestReplace_IgnoraIdsDeImagenDeLaFila(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()

	_, err := f.uc.Replace(ctx, []entity.Section{
		section("tools", entity.Row{"Kod": "N-1", "Nazwa": "Młotek", entity.FieldImageStorageID: "forjado"}),
	})
	require.NoError(t, err)

	p, err := f.store.Repositories().Products.GetByKod(ctx, "N-1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Empty(t, p.ImageStorageID)
}

func TestReplace_BorraImagenesDeProductosQueNoVuelven(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	f.media.failFor = map[string]bool{"th-B": true}
	f.seedCategory(t, &entity.Category{ID: "c1", Slug: "gloves"})
	f.seedProduct(t, &entity.Product{ID: "p1", Kod: "G-1", CategorySlug: "gloves", ImageStorageID: "img-A"})
	f.seedProduct(t, &entity.Product{ID: "p2", Kod: "G-2", CategorySlug: "gloves", ImageStorageID: "img-B", ThumbnailStorageID: "th-B"})

	res, err := f.uc.Replace(ctx, []entity.Section{section("gloves", entity.Row{"Kod": "G-1", "Nazwa": "a"})})
	require.NoError(t, err, "un fallo de almacenamiento no hace fallar el reemplazo")
	assert.Equal(t, int64(2), res.ProductsRemoved)
	assert.Equal(t, 1, res.Media.Deleted)
	assert.Equal(t, 1, res.Media.Failed)
	assert.Equal(t, []string{"img-B"}, f.media.Deleted())
}

func TestReplace_ConservaCategoriasDeAdministrador(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	name := "Promociones"
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	f.seedCategory(t, &entity.Category{ID: "c-admin", Slug: "promo", DisplayName: &name, CreatedAt: &created})
	f.seedCategory(t, &entity.Category{ID: "c-old", Slug: "obsolete", TitleKey: "categories.obsolete"})
	require.NoError(t, f.store.Repositories().Subcategories.Create(ctx, &entity.Subcategory{ID: "s1", CategorySlug: "obsolete", Slug: "x", DisplayName: "X"}))

	res, err := f.uc.Replace(ctx, []entity.Section{section("tools", entity.Row{"Kod": "N-1", "Nazwa": "Klucz"})})
	require.NoError(t, err)
	assert.Equal(t, 1, res.CategoriesDeleted)

	repos := f.store.Repositories()
	promo, err := repos.Categories.GetBySlug(ctx, "promo")
	require.NoError(t, err)
	require.NotNil(t, promo, "la categoría de administrador sobrevive aunque quede vacía")
	n, err := repos.Products.CountByCategory(ctx, "promo")
	require.NoError(t, err)
	assert.Zero(t, n)

	obsolete, err := repos.Categories.GetBySlug(ctx, "obsolete")
	require.NoError(t, err)
	assert.Nil(t, obsolete)
	subs, err := repos.Subcategories.ListByCategory(ctx, "obsolete")
	require.NoError(t, err)
	assert.Empty(t, subs)

	tools, err := repos.Categories.GetBySlug(ctx, "tools")
	require.NoError(t, err)
	require.NotNil(t, tools)
	assert.False(t, tools.IsAdminCreated())
	assert.Equal(t, "categories.tools", tools.TitleKey)
}

func TestReplace_ActualizaTitleKeyYPosicion(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	f.seedCategory(t, &entity.Category{ID: "c1", Slug: "tools", TitleKey: "viejo", Position: 7})

	_, err := f.uc.Replace(ctx, []entity.Section{
		section("gloves", entity.Row{"Kod": "G-1"}),
		section("tools", entity.Row{"Kod": "N-1"}),
	})
	require.NoError(t, err)

	tools, err := f.store.Repositories().Categories.GetBySlug(ctx, "tools")
	require.NoError(t, err)
	assert.Equal(t, "c1", tools.ID)
	assert.Equal(t, "categories.tools", tools.TitleKey)
	assert.Equal(t, 1, tools.Position)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestReplace_OverrideDeCategoriaPorFila(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	name := "Promociones"
	f.seedCategory(t, &entity.Category{ID: "c-admin", Slug: "promo", DisplayName: &name})

	_, err := f.uc.Replace(ctx, []entity.Section{
		section("tools", entity.Row{"Kod": "N-1", entity.FieldCategorySlug: "promo"}),
	})
	require.NoError(t, err)

	p, err := f.store.Repositories().Products.GetByKod(ctx, "N-1")
	require.NoError(t, err)
	assert.Equal(t, "promo", p.CategorySlug)
}

func TestReplace_ErrorRevierteTodo(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	f.seedCategory(t, &entity.Category{ID: "c1", Slug: "gloves"})
	f.seedProduct(t, &entity.Product{ID: "p1", Kod: "G-1", CategorySlug: "gloves", ImageStorageID: "img-A"})

	cases := map[string]struct {
		sections []entity.Section
		target   error
	}{
		"kod duplicado": {
			sections: []entity.Section{section("gloves", entity.Row{"Kod": "G-1"}, entity.Row{"Kod": "g-1"})},
			target:   domain.ErrConflict,
		},
		"kod vacío": {
			sections: []entity.Section{section("gloves", entity.Row{"Kod": "G-1"}, entity.Row{"Nazwa": "sin código"})},
			target:   domain.ErrValidation,
		},
		"override a categoría inexistente": {
			sections: []entity.Section{section("gloves", entity.Row{"Kod": "G-1", entity.FieldCategorySlug: "nope"})},
			target:   domain.ErrNotFound,
		},
		"sección sin slug": {
			sections: []entity.Section{{Slug: " ", Items: []entity.Row{{"Kod": "G-1"}}}},
			target:   domain.ErrValidation,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Replace(ctx, tc.sections)
			assert.ErrorIs(t, err, tc.target)

			all, err := f.store.Repositories().Products.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1, "el catálogo anterior queda intacto")
			assert.Equal(t, "img-A", all[0].ImageStorageID)
			assert.Empty(t, f.media.Deleted())
		})
	}
}

func TestReplace_CamposPorAliasYExtras(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()

	_, err := f.uc.Replace(ctx, []entity.Section{section("paints", entity.Row{
		"Indeks":     "F-10",
		"Nazwa":      "Farba biała",
		"Cena netto": "19,99",
		"JM":         "szt",
		"Stawka VAT": "23",
		"Producent":  "Śnieżka",
	})})
	require.NoError(t, err)

	p, err := f.store.Repositories().Products.GetByKod(ctx, "F-10")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "19,99", p.CenaNetto)
	assert.Equal(t, "szt", p.JednostkaMiary)
	assert.Equal(t, "23", p.StawkaVAT)
	assert.Equal(t, map[string]string{"Producent": "Śnieżka"}, p.Attributes)
}

func TestReplace_SinSeccionesVaciaElCatalogo(t *testing.T) {
	f := newReplaceFixture(t)
	ctx := context.Background()
	name := "Promociones"
	f.seedCategory(t, &entity.Category{ID: "c-admin", Slug: "promo", DisplayName: &name})
	f.seedCategory(t, &entity.Category{ID: "c1", Slug: "gloves", TitleKey: "categories.gloves"})
	f.seedCategory(t, &entity.Category{ID: "c2", Slug: "tools", TitleKey: "categories.tools"})
	f.seedProduct(t, &entity.Product{ID: "p1", Kod: "G-1", CategorySlug: "gloves", ImageStorageID: "img-A"})
	f.seedProduct(t, &entity.Product{ID: "p2", Kod: "P-1", CategorySlug: "promo"})

	for _, sections := range [][]entity.Section{nil, {}} {
		res, err := f.uc.Replace(ctx, sections)
		require.NoError(t, err)
		assert.True(t, res.OK)
		assert.Zero(t, res.SectionsCount)
		assert.Zero(t, res.ProductsCount)
	}

	repos := f.store.Repositories()
	all, err := repos.Products.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	cats, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1, "solo sobrevive la categoría de administrador")
	assert.Equal(t, "promo", cats[0].Slug)
	assert.Equal(t, []string{"img-A"}, f.media.Deleted())
}
