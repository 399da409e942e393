package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/Catalogo-api/internal/application/auth"
	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/cache"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/feed"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/rules"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var tx appcatalog.TxRunner
	switch cfg.DB.Driver {
	case "memory":
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		tx = memstore.New()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("aplicar esquema")
			}
		}
		tx = postgres.NewTxRunner(pool)
	}

	media, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de imágenes")
	}
	if media == nil {
		log.Warn().Msg("STORAGE_DRIVER=none: la subida de imágenes queda deshabilitada")
	}

	var catalogCache appcatalog.CatalogCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			// sin caché el catálogo se sigue sirviendo desde la BD
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, caché desactivada")
		} else {
			defer rc.Close()
			catalogCache = rc
		}
	}

	ruleSet, err := rules.Load(cfg.Catalog.RulesPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatal().Err(err).Str("path", cfg.Catalog.RulesPath).Msg("reglas de clasificación")
		}
		log.Warn().Str("path", cfg.Catalog.RulesPath).Msg("sin reglas por defecto; cada clasificación debe traer las suyas")
		ruleSet = nil
	} else {
		log.Info().Int("rules", len(ruleSet.Categories)).Msg("reglas de clasificación cargadas")
	}

	cleaner := appcatalog.NewMediaCleaner(media, log)
	productUC := usecase.NewProductUseCase(tx, cleaner, media, catalogCache, log)
	queryUC := usecase.NewCatalogQueryUseCase(tx, media, catalogCache, log)
	exportUC := usecase.NewExportUseCase(
		queryUC,
		infrapdf.NewPriceListGenerator(cfg.Catalog.StoreName, cfg.Catalog.CurrencyCode),
		feed.NewGenerator(cfg.Catalog.StoreName, cfg.Catalog.SiteURL, cfg.Catalog.CurrencyCode),
	)
	reader := csvimport.RowReader{Options: csvimport.Options{
		Encoding:  cfg.Catalog.CSVEncoding,
		Delimiter: cfg.Catalog.CSVDelimiter,
	}}
	authUC := auth.NewAuthUseCase(
		auth.Credentials{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		log,
	)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		BodyLimitMB:  cfg.HTTP.BodyLimitMB,
		AllowOrigins: cfg.HTTP.AllowOrigins,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Catalogo API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Query:         queryUC,
		Export:        exportUC,
		Import:        appcatalog.NewImportUseCase(ruleSet, reader, rules.Parse),
		Replace:       appcatalog.NewReplaceCatalogUseCase(tx, cleaner, catalogCache, log),
		CategoryUC:    usecase.NewCategoryUseCase(tx, catalogCache, log),
		SubcategoryUC: usecase.NewSubcategoryUseCase(tx, catalogCache, log),
		ProductUC:     productUC,
		ImageUC:       usecase.NewImageUseCase(tx, media, productUC, cfg.Storage.UploadTTL),
		JWTSecret:     cfg.JWT.Secret,
		MaxUploadMB:   cfg.Catalog.MaxUploadMB,
		Limiter:       httpRouter.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
