package entity

import "time"

// Category categoría del catálogo.
// DisplayName presente = creada por un administrador (no se poda al reemplazar el catálogo).
// CreatedAt presente = creada por un administrador (se ordena después de las de reglas).
type Category struct {
	ID          string
	Slug        string // único
	TitleKey    string
	DisplayName *string
	CreatedAt   *time.Time
	Position    int // índice en el RuleSet para categorías de reglas
}

// IsAdminCreated indica si la categoría la creó un administrador.
func (c *Category) IsAdminCreated() bool {
	return c.DisplayName != nil
}

// Subcategory agrupación secundaria dentro de una categoría.
type Subcategory struct {
	ID           string
	CategorySlug string
	Slug         string // único dentro de CategorySlug
	DisplayName  string
	Order        int
}
