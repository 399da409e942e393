package catalog_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/Catalogo-api/internal/application/catalog"
)

// fakeMediaStore registra los borrados y falla para los ids indicados.
type fakeMediaStore struct {
	mu      sync.Mutex
	deleted []string
	failFor map[string]bool
}

func (f *fakeMediaStore) PresignUpload(_ context.Context, storageID, _ string, ttl time.Duration) (*catalog.UploadTarget, error) {
	return &catalog.UploadTarget{URL: "https://blob.test/" + storageID, Method: "PUT", StorageID: storageID, ExpiresAt: time.Now().Add(ttl)}, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, storageID string) error {
	if f.failFor[storageID] {
		return errors.New("storage no disponible")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, storageID)
	return nil
}

func (f *fakeMediaStore) PublicURL(storageID string) string { return "https://cdn.test/" + storageID }

func (f *fakeMediaStore) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// fakeCache cuenta las invalidaciones.
type fakeCache struct {
	invalidations int
}

func (c *fakeCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (c *fakeCache) Set(context.Context, string, any) error         { return nil }
func (c *fakeCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}
