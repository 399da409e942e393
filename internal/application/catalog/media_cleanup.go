package catalog

import (
	"context"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

// maxConcurrentDeletes límite de borrados simultáneos contra el almacenamiento.
const maxConcurrentDeletes = 8

// MediaCleaner borra archivos huérfanos en paralelo, tolerando fallos individuales.
// Se invoca después de la mutación en BD; su resultado nunca hace fallar la operación.
type MediaCleaner struct {
	store MediaStore
	log   *logger.Logger
}

// NewMediaCleaner construye el limpiador. store puede ser nil (sin almacenamiento configurado).
func NewMediaCleaner(store MediaStore, log *logger.Logger) *MediaCleaner {
	return &MediaCleaner{store: store, log: log}
}

// DeleteAll lanza un borrado por id y espera a que terminen todos.
func (c *MediaCleaner) DeleteAll(ctx context.Context, storageIDs []string) dto.MediaCleanupResult {
	if c == nil || c.store == nil || len(storageIDs) == 0 {
		return dto.MediaCleanupResult{}
	}
	var deleted, failed atomic.Int64
	p := pool.New().WithMaxGoroutines(maxConcurrentDeletes)
	for _, id := range storageIDs {
		if id == "" {
			continue
		}
		p.Go(func() {
			if err := c.store.Delete(ctx, id); err != nil {
				failed.Add(1)
				c.log.Warn().Err(err).Str("storage_id", id).Msg("no se pudo borrar el archivo")
				return
			}
			deleted.Add(1)
		})
	}
	p.Wait()

	res := dto.MediaCleanupResult{Deleted: int(deleted.Load()), Failed: int(failed.Load())}
	if res.Failed > 0 {
		c.log.Warn().Int("deleted", res.Deleted).Int("failed", res.Failed).Msg("limpieza de archivos con fallos")
	}
	return res
}
