package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ appcatalog.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción serializable, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Una FK diferida que falla en el COMMIT o un conflicto de serialización se informan como ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: modificación concurrente, reintente", domain.ErrConflict)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		switch {
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: referencias inconsistentes al confirmar: %v", domain.ErrConflict, err)
		case isSerializationFailure(err):
			return fmt.Errorf("%w: modificación concurrente, reintente", domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Repositories arma los repositorios sobre un Querier (pool o tx).
func Repositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Products:      NewProductRepository(q),
		Categories:    NewCategoryRepository(q),
		Subcategories: NewSubcategoryRepository(q),
	}
}
