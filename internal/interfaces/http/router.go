package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Query         *usecase.CatalogQueryUseCase
	Export        *usecase.ExportUseCase
	Import        *appcatalog.ImportUseCase
	Replace       *appcatalog.ReplaceCatalogUseCase
	CategoryUC    *usecase.CategoryUseCase
	SubcategoryUC *usecase.SubcategoryUseCase
	ProductUC     *usecase.ProductUseCase
	ImageUC       *usecase.ImageUseCase
	JWTSecret     string
	MaxUploadMB   int
	Limiter       *RateLimiter
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público, con límite por IP)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", deps.Limiter.Handler(), authHandler.Login)

	// Catálogo público
	catalogHandler := NewCatalogHandler(deps.Query, deps.Export)
	catalog := api.Group("/catalog", deps.Limiter.Handler())
	catalog.Get("/", catalogHandler.Catalog)
	catalog.Get("/categories/:slug", catalogHandler.Category)
	catalog.Get("/price-list.pdf", catalogHandler.PriceList)
	catalog.Get("/feed.xml", catalogHandler.Feed)

	// Administración (Bearer + rol admin)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleAdmin))

	importHandler := NewImportHandler(deps.Import, deps.Replace, deps.MaxUploadMB)
	admin.Get("/catalog/rules", importHandler.Rules)
	admin.Post("/catalog/classify", importHandler.Classify)
	admin.Post("/catalog/replace", importHandler.Replace)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.SubcategoryUC)
	categories := admin.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/", categoryHandler.SetCategories)
	categories.Delete("/:slug", categoryHandler.Delete)
	categories.Get("/:slug/subcategories", categoryHandler.ListSubcategories)
	categories.Post("/:slug/subcategories", categoryHandler.CreateSubcategory)
	categories.Delete("/:slug/subcategories/:sub", categoryHandler.DeleteSubcategory)

	productHandler := NewProductHandler(deps.ProductUC, deps.ImageUC)
	products := admin.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:kod", productHandler.Get)
	products.Patch("/:kod", productHandler.Update)
	products.Delete("/:kod", productHandler.Delete)
	products.Post("/:kod/image/upload-url", productHandler.RequestUpload)
	products.Put("/:kod/image", productHandler.AttachImage)
}
