package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func TestProductCreate_OK(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.subcategory(t, "gloves", "nitrile")

	res, err := e.products.Create(context.Background(), dto.CreateProductRequest{
		CategorySlug:    "gloves",
		SubcategorySlug: "nitrile",
		Row:             entity.Row{"Kod": "G-1", "Nazwa": "Rękawice", "Cena": "9.99", "Kolor": "niebieski"},
	})
	require.NoError(t, err)
	assert.Equal(t, &dto.CreateProductResponse{OK: true, Kod: "G-1"}, res)

	p := e.get(t, "G-1")
	require.NotNil(t, p)
	assert.Equal(t, "9.99", p.CenaNetto)
	assert.Equal(t, "nitrile", p.SubcategorySlug)
	assert.Equal(t, "niebieski", p.Attributes["Kolor"])
}

func TestProductCreate_Errores(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves"})
	ctx := context.Background()

	_, err := e.products.Create(ctx, dto.CreateProductRequest{CategorySlug: "gloves", Row: entity.Row{"Nazwa": "sin kod"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.products.Create(ctx, dto.CreateProductRequest{CategorySlug: "gloves", Row: entity.Row{"Kod": "G-2"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.products.Create(ctx, dto.CreateProductRequest{CategorySlug: "nope", Row: entity.Row{"Kod": "G-2", "Nazwa": "a"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.products.Create(ctx, dto.CreateProductRequest{CategorySlug: "gloves", SubcategorySlug: "nope", Row: entity.Row{"Kod": "G-2", "Nazwa": "a"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.products.Create(ctx, dto.CreateProductRequest{CategorySlug: "gloves", Row: entity.Row{"Kod": "G-1", "Nazwa": "otro"}})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "ya existe")
}

func TestProductUpdate_DescartaClavesFueraDeListaBlanca(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "viejo", CategorySlug: "gloves"})

	res, err := e.products.Update(context.Background(), "G-1", map[string]string{
		"Nazwa": "nuevo",
		"Kod":   "HACK",
		"id":    "otro-id",
		"admin": "true",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Nazwa": "nuevo"}, res.Updated)

	p := e.get(t, "G-1")
	require.NotNil(t, p)
	assert.Equal(t, "nuevo", p.Nazwa)
	assert.Equal(t, "p-G-1", p.ID)
	assert.Nil(t, e.get(t, "HACK"))
}

func TestProductUpdate_CambioDeCategoriaLimpiaSubcategoria(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.category(t, "tools")
	e.subcategory(t, "gloves", "nitrile")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves", SubcategorySlug: "nitrile"})

	res, err := e.products.Update(context.Background(), "G-1", map[string]string{"categorySlug": "tools"})
	require.NoError(t, err)
	assert.Equal(t, "", res.Updated["subcategorySlug"])

	p := e.get(t, "G-1")
	assert.Equal(t, "tools", p.CategorySlug)
	assert.Empty(t, p.SubcategorySlug)
}

func TestProductUpdate_ValidaReferencias(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves"})
	ctx := context.Background()

	_, err := e.products.Update(ctx, "G-1", map[string]string{"categorySlug": "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.products.Update(ctx, "G-1", map[string]string{"subcategorySlug": "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.products.Update(ctx, "G-1", map[string]string{"Nazwa": "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.products.Update(ctx, "X-9", map[string]string{"Nazwa": "a"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "gloves", e.get(t, "G-1").CategorySlug)
}

func TestProductUpdate_BorraImagenReemplazada(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves", ImageStorageID: "old", ThumbnailStorageID: "th"})

	res, err := e.products.Update(context.Background(), "G-1", map[string]string{"imageStorageId": "new"})
	require.NoError(t, err)
	assert.Equal(t, dto.MediaCleanupResult{Deleted: 1}, res.Media)
	assert.Equal(t, []string{"old"}, e.media.Deleted())
	assert.Equal(t, "th", e.get(t, "G-1").ThumbnailStorageID)
}

func TestProductDelete_BorraArchivosYToleraFallos(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.media.failFor = map[string]bool{"th": true}
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves", ImageStorageID: "img", ThumbnailStorageID: "th"})

	res, err := e.products.Delete(context.Background(), "g-1")
	require.NoError(t, err)
	assert.Equal(t, "G-1", res.Kod)
	assert.Equal(t, dto.MediaCleanupResult{Deleted: 1, Failed: 1}, res.Media)
	assert.Nil(t, e.get(t, "G-1"))

	_, err = e.products.Delete(context.Background(), "G-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductGetYList(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.category(t, "tools")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves", ImageStorageID: "img"})
	e.product(t, &entity.Product{Kod: "N-1", Nazwa: "y", CategorySlug: "tools"})
	ctx := context.Background()

	got, err := e.products.Get(ctx, "G-1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/img", got.ImageURL)

	_, err = e.products.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := e.products.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	tools, err := e.products.List(ctx, "tools")
	require.NoError(t, err)
	require.Len(t, tools.Items, 1)
	assert.Equal(t, "N-1", tools.Items[0].Kod)
}

func TestImageUpload_DosFases(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.product(t, &entity.Product{Kod: "G-1", Nazwa: "x", CategorySlug: "gloves", ImageStorageID: "old"})
	ctx := context.Background()

	target, err := e.images.RequestUpload(ctx, "G-1", dto.UploadURLRequest{ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "PUT", target.Method)
	assert.Regexp(t, `^products/g-1/images/[0-9a-f-]{36}\.png$`, target.StorageID)
	assert.Equal(t, "old", e.get(t, "G-1").ImageStorageID, "pedir destino no modifica el producto")

	res, err := e.images.AttachImage(ctx, "G-1", dto.AttachImageRequest{ImageStorageID: target.StorageID})
	require.NoError(t, err)
	assert.Equal(t, target.StorageID, res.Updated["imageStorageId"])
	assert.Equal(t, target.StorageID, e.get(t, "G-1").ImageStorageID)
	assert.Equal(t, []string{"old"}, e.media.Deleted())

	_, err = e.images.RequestUpload(ctx, "nope", dto.UploadURLRequest{ContentType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.images.RequestUpload(ctx, "G-1", dto.UploadURLRequest{ContentType: "application/pdf"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProduct_SlugsDeCategoriaSinDistinguirMayusculas(t *testing.T) {
	e := newEnv(t)
	e.category(t, "gloves")
	e.category(t, "paper")
	e.subcategory(t, "paper", "rolls")
	ctx := context.Background()

	_, err := e.products.Create(ctx, dto.CreateProductRequest{
		CategorySlug: " Gloves ",
		Row:          entity.Row{"Kod": "G-1", "Nazwa": "Rękawice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "gloves", e.get(t, "G-1").CategorySlug)

	res, err := e.products.Update(ctx, "G-1", map[string]string{
		entity.FieldCategorySlug:    "PAPER",
		entity.FieldSubcategorySlug: "Rolls",
	})
	require.NoError(t, err)
	assert.Equal(t, "paper", res.Updated[entity.FieldCategorySlug])
	p := e.get(t, "G-1")
	assert.Equal(t, "paper", p.CategorySlug)
	assert.Equal(t, "rolls", p.SubcategorySlug)
}
