package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func TestSortCategories_ReglasPrimeroLuegoAdministrador(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)
	name := "x"
	cats := []*entity.Category{
		{Slug: "promo-late", DisplayName: &name, CreatedAt: &late},
		{Slug: "tools", Position: 1},
		{Slug: "promo-early", DisplayName: &name, CreatedAt: &early},
		{Slug: "gloves", Position: 0},
	}

	catalog.SortCategories(cats)

	got := make([]string, 0, len(cats))
	for _, c := range cats {
		got = append(got, c.Slug)
	}
	assert.Equal(t, []string{"gloves", "tools", "promo-early", "promo-late"}, got)
}
