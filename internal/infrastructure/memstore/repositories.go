package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)
)

// ProductRepo productos en memoria. Kod único sin distinguir mayúsculas.
type ProductRepo struct{ v *view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		for _, existing := range st.products {
			if entity.NormalizeKod(existing.Kod) == entity.NormalizeKod(p.Kod) {
				return fmt.Errorf("%w: Kod %q", domain.ErrConflict, p.Kod)
			}
		}
		st.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r *ProductRepo) GetByKod(_ context.Context, kod string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if entity.NormalizeKod(p.Kod) == entity.NormalizeKod(kod) {
				out = cloneProduct(p)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return nil
		}
		st.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) DeleteAll(_ context.Context) (int64, error) {
	var n int64
	err := r.v.with(func(st *state) error {
		n = int64(len(st.products))
		st.products = make(map[string]*entity.Product)
		return nil
	})
	return n, err
}

func (r *ProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	return r.list(func(*entity.Product) bool { return true })
}

func (r *ProductRepo) ListByCategory(_ context.Context, categorySlug string) ([]*entity.Product, error) {
	return r.list(func(p *entity.Product) bool { return p.CategorySlug == categorySlug })
}

func (r *ProductRepo) CountByCategory(ctx context.Context, categorySlug string) (int, error) {
	list, err := r.ListByCategory(ctx, categorySlug)
	return len(list), err
}

func (r *ProductRepo) CountBySubcategory(_ context.Context, categorySlug, subcategorySlug string) (int, error) {
	list, err := r.list(func(p *entity.Product) bool {
		return p.CategorySlug == categorySlug && p.SubcategorySlug == subcategorySlug
	})
	return len(list), err
}

func (r *ProductRepo) list(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if keep(p) {
				out = append(out, cloneProduct(p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Kod < out[j].Kod })
	return out, err
}

// CategoryRepo categorías en memoria. Slug único.
type CategoryRepo struct{ v *view }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.v.with(func(st *state) error {
		for _, existing := range st.categories {
			if existing.Slug == c.Slug {
				return fmt.Errorf("%w: categoría %q", domain.ErrConflict, c.Slug)
			}
		}
		st.categories[c.ID] = cloneCategory(c)
		return nil
	})
}

func (r *CategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.with(func(st *state) error {
		for _, c := range st.categories {
			if c.Slug == slug {
				out = cloneCategory(c)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.v.with(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			st.categories[c.ID] = cloneCategory(c)
		}
		return nil
	})
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		delete(st.categories, id)
		return nil
	})
}

func (r *CategoryRepo) DeleteAll(_ context.Context) (int64, error) {
	var n int64
	err := r.v.with(func(st *state) error {
		n = int64(len(st.categories))
		st.categories = make(map[string]*entity.Category)
		return nil
	})
	return n, err
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.with(func(st *state) error {
		for _, c := range st.categories {
			out = append(out, cloneCategory(c))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, err
}

// SubcategoryRepo subcategorías en memoria. (CategorySlug, Slug) único.
type SubcategoryRepo struct{ v *view }

func (r *SubcategoryRepo) Create(_ context.Context, s *entity.Subcategory) error {
	return r.v.with(func(st *state) error {
		for _, existing := range st.subcategories {
			if existing.CategorySlug == s.CategorySlug && existing.Slug == s.Slug {
				return fmt.Errorf("%w: subcategoría %q en %q", domain.ErrConflict, s.Slug, s.CategorySlug)
			}
		}
		cp := *s
		st.subcategories[s.ID] = &cp
		return nil
	})
}

func (r *SubcategoryRepo) Get(_ context.Context, categorySlug, slug string) (*entity.Subcategory, error) {
	var out *entity.Subcategory
	err := r.v.with(func(st *state) error {
		for _, s := range st.subcategories {
			if s.CategorySlug == categorySlug && s.Slug == slug {
				cp := *s
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *SubcategoryRepo) ListByCategory(_ context.Context, categorySlug string) ([]*entity.Subcategory, error) {
	out := []*entity.Subcategory{}
	err := r.v.with(func(st *state) error {
		for _, s := range st.subcategories {
			if s.CategorySlug == categorySlug {
				cp := *s
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Slug < out[j].Slug
	})
	return out, err
}

func (r *SubcategoryRepo) Delete(_ context.Context, id string) error {
	return r.v.with(func(st *state) error {
		delete(st.subcategories, id)
		return nil
	})
}

func (r *SubcategoryRepo) DeleteByCategory(_ context.Context, categorySlug string) (int64, error) {
	var n int64
	err := r.v.with(func(st *state) error {
		for id, s := range st.subcategories {
			if s.CategorySlug == categorySlug {
				delete(st.subcategories, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *SubcategoryRepo) DeleteAll(_ context.Context) (int64, error) {
	var n int64
	err := r.v.with(func(st *state) error {
		n = int64(len(st.subcategories))
		st.subcategories = make(map[string]*entity.Subcategory)
		return nil
	})
	return n, err
}
