package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo subcategorías sobre PostgreSQL; (category_slug, slug) es único.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

func (r *SubcategoryRepo) Create(ctx context.Context, s *entity.Subcategory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO subcategories (id, category_slug, slug, display_name, sort_order)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.CategorySlug, s.Slug, s.DisplayName, s.Order,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la subcategoría %q ya existe en %q", domain.ErrConflict, s.Slug, s.CategorySlug)
		}
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) Get(ctx context.Context, categorySlug, slug string) (*entity.Subcategory, error) {
	var s entity.Subcategory
	err := r.q.QueryRow(ctx, `
		SELECT id, category_slug, slug, display_name, sort_order
		FROM subcategories WHERE category_slug = $1 AND slug = $2`, categorySlug, slug,
	).Scan(&s.ID, &s.CategorySlug, &s.Slug, &s.DisplayName, &s.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

func (r *SubcategoryRepo) ListByCategory(ctx context.Context, categorySlug string) ([]*entity.Subcategory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, category_slug, slug, display_name, sort_order
		FROM subcategories WHERE category_slug = $1 ORDER BY sort_order, slug`, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	list := []*entity.Subcategory{}
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.CategorySlug, &s.Slug, &s.DisplayName, &s.Order); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SubcategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

func (r *SubcategoryRepo) DeleteByCategory(ctx context.Context, categorySlug string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM subcategories WHERE category_slug = $1`, categorySlug)
	if err != nil {
		return 0, fmt.Errorf("delete subcategories by category: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *SubcategoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM subcategories`)
	if err != nil {
		return 0, fmt.Errorf("delete all subcategories: %w", err)
	}
	return cmd.RowsAffected(), nil
}
