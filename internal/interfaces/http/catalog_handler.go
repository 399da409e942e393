package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// CatalogHandler lectura pública del catálogo y sus exportaciones.
type CatalogHandler struct {
	query  *usecase.CatalogQueryUseCase
	export *usecase.ExportUseCase
}

func NewCatalogHandler(query *usecase.CatalogQueryUseCase, export *usecase.ExportUseCase) *CatalogHandler {
	return &CatalogHandler{query: query, export: export}
}

// Catalog godoc
// @Summary      Catálogo público
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) Catalog(c *fiber.Ctx) error {
	out, err := h.query.Catalog(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Category godoc
// @Summary      Categoría pública con sus productos
// @Tags         catalog
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Success      200   {object}  dto.CatalogCategory
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{slug} [get]
func (h *CatalogHandler) Category(c *fiber.Ctx) error {
	out, err := h.query.Category(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PriceList godoc
// @Summary      Cennik en PDF
// @Tags         catalog
// @Produce      application/pdf
// @Success      200
// @Router       /api/catalog/price-list.pdf [get]
func (h *CatalogHandler) PriceList(c *fiber.Ctx) error {
	out, err := h.export.PriceList(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cennik.pdf"`)
	return c.Send(out)
}

// Feed godoc
// @Summary      Feed XML de productos
// @Tags         catalog
// @Produce      application/xml
// @Success      200
// @Router       /api/catalog/feed.xml [get]
func (h *CatalogHandler) Feed(c *fiber.Ctx) error {
	out, err := h.export.Feed(c.UserContext())
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
