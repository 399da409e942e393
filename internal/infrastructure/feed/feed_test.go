package feed

import (
	"context"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
)

func TestRenderFeed(t *testing.T) {
	name := "Rękawice"
	catalog := &dto.CatalogResponse{Categories: []dto.CatalogCategory{{
		Category: dto.CategoryResponse{Slug: "gloves", TitleKey: "categories.gloves", DisplayName: &name},
		Products: []dto.ProductResponse{
			{Kod: "RK 1", Nazwa: "Rękawice <nitrylowe>", CenaNetto: "12,50", StawkaVAT: "23", ImageURL: "https://cdn.test/a.jpg"},
			{Kod: "RK-2", Nazwa: "Bez ceny", CenaNetto: ""},
			{Kod: "RK-3", Nazwa: "Zwolnione", CenaNetto: "10", StawkaVAT: "zw"},
		},
	}}}

	out, err := NewGenerator("Sklep", "https://sklep.test/", "").RenderFeed(context.Background(), catalog)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	items := doc.FindElements("//item")
	require.Len(t, items, 2, "el producto sin precio no se publica")

	first := items[0]
	assert.Equal(t, "RK 1", first.SelectElement("g:id").Text())
	assert.Equal(t, "Rękawice <nitrylowe>", first.SelectElement("title").Text())
	assert.Equal(t, "https://sklep.test/produkty/RK%201", first.SelectElement("link").Text())
	assert.Equal(t, "15.38 PLN", first.SelectElement("g:price").Text())
	assert.Equal(t, "Rękawice", first.SelectElement("g:product_type").Text())
	assert.Equal(t, "https://cdn.test/a.jpg", first.SelectElement("g:image_link").Text())

	assert.Equal(t, "10.00 PLN", items[1].SelectElement("g:price").Text())
	assert.Nil(t, items[1].SelectElement("g:image_link"))
}
