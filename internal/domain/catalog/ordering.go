package catalog

import (
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// SortCategories ordena para mostrar: primero las de reglas por Position, luego las de administrador
// por CreatedAt. Empates por slug.
func SortCategories(cats []*entity.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		a, b := cats[i], cats[j]
		aAdmin, bAdmin := a.CreatedAt != nil, b.CreatedAt != nil
		if aAdmin != bAdmin {
			return !aAdmin
		}
		if !aAdmin {
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.Slug < b.Slug
		}
		if !a.CreatedAt.Equal(*b.CreatedAt) {
			return a.CreatedAt.Before(*b.CreatedAt)
		}
		return a.Slug < b.Slug
	})
}
