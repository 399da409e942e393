// Package memstore implementa los repositorios del catálogo en memoria.
// Se usa en tests y en desarrollo (STORE_DRIVER=memory). Run ejecuta la función sobre una copia
// del estado bajo un mutex y solo la publica si no hubo error (todo o nada, serializable).
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

type state struct {
	products      map[string]*entity.Product     // por ID
	categories    map[string]*entity.Category    // por ID
	subcategories map[string]*entity.Subcategory // por ID
}

func newState() *state {
	return &state{
		products:      make(map[string]*entity.Product),
		categories:    make(map[string]*entity.Category),
		subcategories: make(map[string]*entity.Subcategory),
	}
}

func (s *state) clone() *state {
	c := newState()
	for id, p := range s.products {
		c.products[id] = cloneProduct(p)
	}
	for id, cat := range s.categories {
		c.categories[id] = cloneCategory(cat)
	}
	for id, sub := range s.subcategories {
		cp := *sub
		c.subcategories[id] = &cp
	}
	return c
}

// Store estado en memoria compartido por los repositorios.
type Store struct {
	mu   sync.Mutex
	data *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState()}
}

// Repositories devuelve repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Repositories() repository.Repositories {
	v := &view{lock: s.mu.Lock, unlock: s.mu.Unlock, data: func() *state { return s.data }}
	return repository.Repositories{
		Products:      &ProductRepo{v: v},
		Categories:    &CategoryRepo{v: v},
		Subcategories: &SubcategoryRepo{v: v},
	}
}

// Run ejecuta fn sobre una copia del estado; si fn no devuelve error la copia reemplaza al estado.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	v := &view{lock: func() {}, unlock: func() {}, data: func() *state { return work }}
	repos := repository.Repositories{
		Products:      &ProductRepo{v: v},
		Categories:    &CategoryRepo{v: v},
		Subcategories: &SubcategoryRepo{v: v},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.data = work
	return nil
}

// view acceso al estado: con mutex (fuera de tx) o sin él (dentro de Run, que ya lo tiene).
type view struct {
	lock   func()
	unlock func()
	data   func() *state
}

func (v *view) with(fn func(st *state) error) error {
	v.lock()
	defer v.unlock()
	return fn(v.data())
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.Attributes != nil {
		cp.Attributes = make(map[string]string, len(p.Attributes))
		for k, v := range p.Attributes {
			cp.Attributes[k] = v
		}
	}
	return &cp
}

func cloneCategory(c *entity.Category) *entity.Category {
	cp := *c
	if c.DisplayName != nil {
		name := *c.DisplayName
		cp.DisplayName = &name
	}
	if c.CreatedAt != nil {
		t := *c.CreatedAt
		cp.CreatedAt = &t
	}
	return &cp
}
