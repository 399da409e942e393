package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// ProductHandler productos e imágenes (administración). Los productos se identifican por Kod.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	images *usecase.ImageUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, images *usecase.ImageUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, images: images}
}

// kodParam Kod de la ruta, decodificado (los códigos pueden traer espacios o barras escapadas).
func kodParam(c *fiber.Ctx) (string, error) {
	kod, err := url.PathUnescape(c.Params("kod"))
	if err != nil || kod == "" {
		return "", fmt.Errorf("%w: kod inválido", domain.ErrValidation)
	}
	return kod, nil
}

// Create godoc
// @Summary      Crear producto
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Categoría y fila del producto"
// @Success      201   {object}  dto.CreateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener producto por Kod
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Param        kod  path  string  true  "Kod"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{kod} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	kod, err := kodParam(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), kod)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por slug de categoría"
// @Success      200       {object}  dto.ProductListResponse
// @Router       /api/admin/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar campos de un producto
// @Description  Solo se aplican los campos de la lista blanca; el resto se descarta.
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kod   path  string                    true  "Kod"
// @Param        body  body  dto.ProductUpdateFields  true  "Campos a actualizar"
// @Success      200   {object}  dto.UpdateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{kod} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	kod, err := kodParam(c)
	if err != nil {
		return err
	}
	var in dto.ProductUpdateFields
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), kod, in.Updates())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         admin-products
// @Security     Bearer
// @Produce      json
// @Param        kod  path  string  true  "Kod"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/products/{kod} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	kod, err := kodParam(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Delete(c.UserContext(), kod)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RequestUpload godoc
// @Summary      Pedir URL de subida de imagen (fase 1)
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kod   path  string                true  "Kod"
// @Param        body  body  dto.UploadURLRequest  true  "contentType, kind"
// @Success      200   {object}  dto.UploadURLResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{kod}/image/upload-url [post]
func (h *ProductHandler) RequestUpload(c *fiber.Ctx) error {
	kod, err := kodParam(c)
	if err != nil {
		return err
	}
	var in dto.UploadURLRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.images.RequestUpload(c.UserContext(), kod, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AttachImage godoc
// @Summary      Asociar imagen subida al producto (fase 2)
// @Tags         admin-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kod   path  string                  true  "Kod"
// @Param        body  body  dto.AttachImageRequest  true  "imageStorageId, thumbnailStorageId"
// @Success      200   {object}  dto.UpdateProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{kod}/image [put]
func (h *ProductHandler) AttachImage(c *fiber.Ctx) error {
	kod, err := kodParam(c)
	if err != nil {
		return err
	}
	var in dto.AttachImageRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.images.AttachImage(c.UserContext(), kod, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
