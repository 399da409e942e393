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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, kod, nazwa, cena_netto, jednostka_miary, stawka_vat, opis, attributes,
	category_slug, subcategory_slug, image_storage_id, thumbnail_storage_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. Kod duplicado (sin distinguir mayúsculas) -> ErrConflict.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.Kod, p.Nazwa, p.CenaNetto, p.JednostkaMiary, p.StawkaVAT, p.Opis, attrs,
		p.CategorySlug, nullable(p.SubcategorySlug), nullable(p.ImageStorageID), nullable(p.ThumbnailStorageID),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el producto %q ya existe", domain.ErrConflict, p.Kod)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByKod obtiene un producto por Kod sin distinguir mayúsculas.
func (r *ProductRepo) GetByKod(ctx context.Context, kod string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE upper(kod) = upper(btrim($1))`, kod)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos modificables de un producto existente.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]string{}
	}
	_, err := r.q.Exec(ctx, `
		UPDATE products SET nazwa = $2, cena_netto = $3, jednostka_miary = $4, stawka_vat = $5, opis = $6,
			attributes = $7, category_slug = $8, subcategory_slug = $9, image_storage_id = $10,
			thumbnail_storage_id = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Nazwa, p.CenaNetto, p.JednostkaMiary, p.StawkaVAT, p.Opis, attrs,
		p.CategorySlug, nullable(p.SubcategorySlug), nullable(p.ImageStorageID), nullable(p.ThumbnailStorageID),
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// DeleteAll vacía la tabla de productos.
func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, fmt.Errorf("delete all products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ListAll lista todos los productos ordenados por Kod.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY kod`)
}

// ListByCategory lista los productos de una categoría.
func (r *ProductRepo) ListByCategory(ctx context.Context, categorySlug string) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE category_slug = $1 ORDER BY kod`, categorySlug)
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categorySlug string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products WHERE category_slug = $1`, categorySlug).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) CountBySubcategory(ctx context.Context, categorySlug, subcategorySlug string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM products WHERE category_slug = $1 AND subcategory_slug = $2`,
		categorySlug, subcategorySlug,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products by subcategory: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p                 entity.Product
		sub, image, thumb *string
	)
	err := row.Scan(
		&p.ID, &p.Kod, &p.Nazwa, &p.CenaNetto, &p.JednostkaMiary, &p.StawkaVAT, &p.Opis, &p.Attributes,
		&p.CategorySlug, &sub, &image, &thumb, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SubcategorySlug = deref(sub)
	p.ImageStorageID = deref(image)
	p.ThumbnailStorageID = deref(thumb)
	return &p, nil
}
