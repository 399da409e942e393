// Package storage adaptadores de almacenamiento de imágenes (S3 y MinIO) para el catálogo.
package storage

import (
	"context"
	"fmt"
	"strings"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/pkg/config"
)

// New construye el MediaStore configurado. Con driver "none" devuelve nil (sin imágenes).
func New(ctx context.Context, cfg config.StorageConfig) (appcatalog.MediaStore, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Store(ctx, cfg)
	case "minio":
		return NewMinioStore(cfg)
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %s", cfg.Driver)
	}
}

// publicURL une la base pública con el id de almacenamiento.
func publicURL(base, storageID string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(storageID, "/")
}
