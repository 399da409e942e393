package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
)

// ImportHandler vista previa de clasificación y reemplazo completo del catálogo.
type ImportHandler struct {
	importer    *appcatalog.ImportUseCase
	replace     *appcatalog.ReplaceCatalogUseCase
	maxUploadMB int
}

func NewImportHandler(importer *appcatalog.ImportUseCase, replace *appcatalog.ReplaceCatalogUseCase, maxUploadMB int) *ImportHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &ImportHandler{importer: importer, replace: replace, maxUploadMB: maxUploadMB}
}

// Classify godoc
// @Summary      Clasificar productos (vista previa, sin persistir)
// @Description  multipart: file (CSV) y rules opcional (YAML/JSON). JSON: dto.ClassifyRequest.
// @Tags         admin-catalog
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Success      200  {object}  dto.ClassifyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/catalog/classify [post]
func (h *ImportHandler) Classify(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return h.classifyUpload(c)
	}
	var in dto.ClassifyRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.importer.ClassifyRows(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *ImportHandler) classifyUpload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: falta el archivo 'file'", domain.ErrValidation)
	}
	file, err := h.open(fh)
	if err != nil {
		return err
	}
	defer file.Close()

	var rules []byte
	if rh, err := c.FormFile("rules"); err == nil {
		rf, err := h.open(rh)
		if err != nil {
			return err
		}
		defer rf.Close()
		if rules, err = io.ReadAll(rf); err != nil {
			return fmt.Errorf("leer reglas: %w", err)
		}
	}

	out, err := h.importer.ClassifyFile(c.UserContext(), file, rules)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *ImportHandler) open(fh *multipart.FileHeader) (multipart.File, error) {
	if fh.Size > int64(h.maxUploadMB)*1024*1024 {
		return nil, fmt.Errorf("%w: %s supera %d MB", domain.ErrValidation, fh.Filename, h.maxUploadMB)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
	}
	return f, nil
}

// Rules godoc
// @Summary      Reglas de clasificación por defecto
// @Tags         admin-catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.RuleSet
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/catalog/rules [get]
func (h *ImportHandler) Rules(c *fiber.Ctx) error {
	rs := h.importer.Rules()
	if rs == nil {
		return fmt.Errorf("%w: no hay reglas configuradas", domain.ErrNotFound)
	}
	return c.JSON(rs)
}

// Replace godoc
// @Summary      Reemplazar el catálogo con secciones revisadas
// @Tags         admin-catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplaceCatalogRequest  true  "Secciones"
// @Success      200   {object}  dto.ReplaceCatalogResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/catalog/replace [post]
func (h *ImportHandler) Replace(c *fiber.Ctx) error {
	var in dto.ReplaceCatalogRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.replace.Replace(c.UserContext(), in.Sections)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
