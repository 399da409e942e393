package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría de administrador.
type CreateCategoryRequest struct {
	Slug        string `json:"slug" validate:"required,max=100"`
	DisplayName string `json:"displayName" validate:"required,max=200"`
}

// CategoryInput elemento de SetCategories.
type CategoryInput struct {
	Slug        string  `json:"slug" validate:"required"`
	TitleKey    string  `json:"titleKey"`
	DisplayName *string `json:"displayName,omitempty"`
}

// SetCategoriesRequest reemplazo total de categorías (operación destructiva).
type SetCategoriesRequest struct {
	Categories         []CategoryInput `json:"categories"`
	ConfirmDestruction bool            `json:"confirmDestruction"`
}

// SetCategoriesResponse salida de SetCategories.
type SetCategoriesResponse struct {
	OK                   bool  `json:"ok"`
	Deleted              int64 `json:"deleted"`
	SubcategoriesDeleted int64 `json:"subcategoriesDeleted"`
	ProductsDetached     int   `json:"productsDetached"`
	Created              int   `json:"created"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string     `json:"id"`
	Slug         string     `json:"slug"`
	TitleKey     string     `json:"titleKey"`
	DisplayName  *string    `json:"displayName,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	AdminCreated bool       `json:"adminCreated"`
	ProductCount int        `json:"productCount"`
}

// CreateSubcategoryRequest entrada para crear una subcategoría. Slug opcional.
type CreateSubcategoryRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=200"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,max=100"`
}

// SubcategoryResponse salida de una subcategoría.
type SubcategoryResponse struct {
	ID           string `json:"id"`
	CategorySlug string `json:"categorySlug"`
	Slug         string `json:"slug"`
	DisplayName  string `json:"displayName"`
	Order        int    `json:"order"`
}

// OKResponse respuesta genérica.
type OKResponse struct {
	OK bool `json:"ok"`
}
