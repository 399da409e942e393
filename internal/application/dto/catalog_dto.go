package dto

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// MediaCleanupResult resultado de una limpieza de archivos. Los fallos se cuentan, no se propagan.
type MediaCleanupResult struct {
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// ClassifyRequest entrada para clasificar filas ya parseadas.
type ClassifyRequest struct {
	Rows        []entity.Row          `json:"rows" validate:"required"`
	Rules       []entity.CategoryRule `json:"rules,omitempty"`
	ExcludeKods []string              `json:"excludeKods,omitempty"`
}

// SectionSummary resumen de una sección para la vista previa.
type SectionSummary struct {
	Slug      string `json:"slug"`
	TitleKey  string `json:"titleKey"`
	ItemCount int    `json:"itemCount"`
}

// ClassifyResponse secciones clasificadas (para revisión antes de reemplazar).
type ClassifyResponse struct {
	Sections  []entity.Section `json:"sections"`
	Summary   []SectionSummary `json:"summary"`
	RowsTotal int              `json:"rowsTotal"`
	Excluded  int              `json:"excluded"`
	Skipped   int              `json:"skipped,omitempty"` // filas del archivo sin Kod
}

// ReplaceCatalogRequest secciones revisadas que reemplazan el catálogo.
// "sections" es obligatorio pero puede ser [] para vaciar el catálogo.
type ReplaceCatalogRequest struct {
	Sections []entity.Section `json:"sections" validate:"required,dive"`
}

// ReplaceCatalogResponse salida del reemplazo completo del catálogo.
type ReplaceCatalogResponse struct {
	OK                bool               `json:"ok"`
	SectionsCount     int                `json:"sectionsCount"`
	ProductsCount     int                `json:"productsCount"`
	ProductsRemoved   int64              `json:"productsRemoved"`
	ImagesPreserved   int                `json:"imagesPreserved"`
	CategoriesDeleted int                `json:"categoriesDeleted"`
	Media             MediaCleanupResult `json:"media"`
}

// CatalogCategory categoría con sus productos (vista pública).
type CatalogCategory struct {
	Category CategoryResponse  `json:"category"`
	Products []ProductResponse `json:"products"`
}

// CatalogResponse catálogo público completo.
type CatalogResponse struct {
	Categories []CatalogCategory `json:"categories"`
}
