package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/pkg/config"
)

var _ appcatalog.MediaStore = (*MinioStore)(nil)

// MinioStore imágenes en MinIO (despliegues sin AWS).
type MinioStore struct {
	api        *minio.Client
	bucket     string
	publicBase string
}

// NewMinioStore crea el cliente. Endpoint es host:puerto, sin esquema.
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente minio: %w", err)
	}
	base := cfg.PublicBaseURL
	if base == "" {
		base = publicURL(api.EndpointURL().String(), cfg.Bucket)
	}
	return &MinioStore{api: api, bucket: cfg.Bucket, publicBase: base}, nil
}

func (s *MinioStore) PresignUpload(ctx context.Context, storageID, contentType string, ttl time.Duration) (*appcatalog.UploadTarget, error) {
	u, err := s.api.PresignedPutObject(ctx, s.bucket, storageID, ttl)
	if err != nil {
		return nil, fmt.Errorf("presign put object: %w", err)
	}
	return &appcatalog.UploadTarget{
		URL:       u.String(),
		Method:    http.MethodPut,
		StorageID: storageID,
		Headers:   map[string]string{"Content-Type": contentType},
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (s *MinioStore) Delete(ctx context.Context, storageID string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, storageID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", storageID, err)
	}
	return nil
}

func (s *MinioStore) PublicURL(storageID string) string {
	return publicURL(s.publicBase, storageID)
}
