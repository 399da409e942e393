package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// DefaultUploadTTL vigencia de la URL de subida si no se configura otra.
const DefaultUploadTTL = 15 * time.Minute

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageUseCase subida de imágenes en dos fases: pedir destino firmado y luego asociar al producto.
// Entre ambas fases el producto puede no tener imagen.
type ImageUseCase struct {
	tx       appcatalog.TxRunner
	media    appcatalog.MediaStore
	products *ProductUseCase
	ttl      time.Duration
}

// NewImageUseCase construye el caso de uso. ttl <= 0 usa DefaultUploadTTL.
func NewImageUseCase(tx appcatalog.TxRunner, media appcatalog.MediaStore, products *ProductUseCase, ttl time.Duration) *ImageUseCase {
	if ttl <= 0 {
		ttl = DefaultUploadTTL
	}
	return &ImageUseCase{tx: tx, media: media, products: products, ttl: ttl}
}

// RequestUpload genera un id de almacenamiento nuevo y su URL de subida de corta duración.
func (uc *ImageUseCase) RequestUpload(ctx context.Context, kod string, in dto.UploadURLRequest) (*dto.UploadURLResponse, error) {
	if uc.media == nil {
		return nil, domain.ErrStorageUnavailable
	}
	ext, ok := imageExtensions[in.ContentType]
	if !ok {
		return nil, fmt.Errorf("%w: tipo de contenido %q no admitido", domain.ErrValidation, in.ContentType)
	}

	var stored string
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByKod(ctx, kod)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %q", domain.ErrNotFound, kod)
		}
		stored = p.Kod
		return nil
	})
	if err != nil {
		return nil, err
	}

	folder := "images"
	if in.Kind == "thumbnail" {
		folder = "thumbnails"
	}
	storageID := fmt.Sprintf("products/%s/%s/%s%s", storageKey(stored), folder, uuid.New().String(), ext)
	target, err := uc.media.PresignUpload(ctx, storageID, in.ContentType, uc.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return &dto.UploadURLResponse{
		UploadURL: target.URL,
		Method:    target.Method,
		StorageID: target.StorageID,
		Headers:   target.Headers,
		ExpiresAt: target.ExpiresAt,
	}, nil
}

// AttachImage fase final: asocia los ids subidos; las imágenes anteriores se borran.
func (uc *ImageUseCase) AttachImage(ctx context.Context, kod string, in dto.AttachImageRequest) (*dto.UpdateProductResponse, error) {
	image := strings.TrimSpace(in.ImageStorageID)
	if image == "" {
		return nil, fmt.Errorf("%w: imageStorageId es obligatorio", domain.ErrValidation)
	}
	updates := map[string]string{entity.FieldImageStorageID: image}
	if thumb := strings.TrimSpace(in.ThumbnailStorageID); thumb != "" {
		updates[entity.FieldThumbnailStorageID] = thumb
	}
	return uc.products.Update(ctx, kod, updates)
}

// storageKey convierte un Kod en un segmento de ruta seguro.
func storageKey(kod string) string {
	key := domcatalog.SlugifyDisplayName(kod)
	if key == "" {
		return "kod"
	}
	return key
}
