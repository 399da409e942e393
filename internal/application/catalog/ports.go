package catalog

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; ninguna escritura parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// UploadTarget destino de subida de corta duración (primera fase del handshake de imágenes).
type UploadTarget struct {
	URL       string
	Method    string
	StorageID string
	Headers   map[string]string
	ExpiresAt time.Time
}

// MediaStore almacenamiento de archivos (imágenes de producto).
type MediaStore interface {
	PresignUpload(ctx context.Context, storageID, contentType string, ttl time.Duration) (*UploadTarget, error)
	Delete(ctx context.Context, storageID string) error
	PublicURL(storageID string) string
}

// CatalogCache caché de lecturas públicas del catálogo; se invalida tras cada mutación.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

// PriceListRenderer genera el cennik en PDF a partir del catálogo público.
type PriceListRenderer interface {
	RenderPriceList(ctx context.Context, catalog *dto.CatalogResponse) ([]byte, error)
}

// FeedRenderer genera el feed XML de productos.
type FeedRenderer interface {
	RenderFeed(ctx context.Context, catalog *dto.CatalogResponse) ([]byte, error)
}

// RowReader lee un archivo exportado como filas sin clasificar. skipped cuenta las filas sin Kod.
type RowReader interface {
	ReadRows(r io.Reader) (rows []entity.Row, skipped int, err error)
}

// RuleParser decodifica un archivo de reglas enviado junto a la importación.
type RuleParser func(data []byte) (*entity.RuleSet, error)
