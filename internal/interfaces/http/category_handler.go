package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// CategoryHandler categorías y subcategorías (administración).
type CategoryHandler struct {
	categories    *usecase.CategoryUseCase
	subcategories *usecase.SubcategoryUseCase
}

func NewCategoryHandler(categories *usecase.CategoryUseCase, subcategories *usecase.SubcategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categories: categories, subcategories: subcategories}
}

// List godoc
// @Summary      Listar categorías
// @Tags         admin-categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/admin/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría de administrador
// @Tags         admin-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "slug, displayName"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetCategories godoc
// @Summary      Reemplazar todas las categorías (destructivo)
// @Description  Requiere confirmDestruction=true; sin ella responde 428.
// @Tags         admin-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetCategoriesRequest  true  "Categorías"
// @Success      200   {object}  dto.SetCategoriesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      428   {object}  dto.ErrorResponse
// @Router       /api/admin/categories [put]
func (h *CategoryHandler) SetCategories(c *fiber.Ctx) error {
	var in dto.SetCategoriesRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.categories.SetCategories(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría vacía
// @Tags         admin-categories
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Slug"
// @Success      200   {object}  dto.OKResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{slug} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("slug")); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// ListSubcategories godoc
// @Summary      Listar subcategorías
// @Tags         admin-categories
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Success      200   {array}  dto.SubcategoryResponse
// @Router       /api/admin/categories/{slug}/subcategories [get]
func (h *CategoryHandler) ListSubcategories(c *fiber.Ctx) error {
	out, err := h.subcategories.List(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateSubcategory godoc
// @Summary      Crear subcategoría
// @Tags         admin-categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Param        body  body  dto.CreateSubcategoryRequest  true  "displayName, slug opcional"
// @Success      201   {object}  dto.SubcategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{slug}/subcategories [post]
func (h *CategoryHandler) CreateSubcategory(c *fiber.Ctx) error {
	var in dto.CreateSubcategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.subcategories.Create(c.UserContext(), c.Params("slug"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteSubcategory godoc
// @Summary      Eliminar subcategoría sin productos
// @Tags         admin-categories
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Slug de la categoría"
// @Param        sub   path  string  true  "Slug de la subcategoría"
// @Success      200   {object}  dto.OKResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/categories/{slug}/subcategories/{sub} [delete]
func (h *CategoryHandler) DeleteSubcategory(c *fiber.Ctx) error {
	if err := h.subcategories.Delete(c.UserContext(), c.Params("slug"), c.Params("sub")); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}
