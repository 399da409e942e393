package dto_test

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// El esquema público de actualización y la lista blanca del dominio no pueden divergir.
func TestProductUpdateFields_CoincideConListaBlanca(t *testing.T) {
	typ := reflect.TypeOf(dto.ProductUpdateFields{})
	var tags []string
	for i := 0; i < typ.NumField(); i++ {
		name, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		tags = append(tags, name)
	}
	allowed := append([]string(nil), entity.UpdatableProductFields...)
	sort.Strings(tags)
	sort.Strings(allowed)
	assert.Equal(t, allowed, tags)
}

func TestProductUpdateFields_UpdatesSoloPresentes(t *testing.T) {
	name, empty := "Klucz", ""
	got := dto.ProductUpdateFields{Nazwa: &name, SubcategorySlug: &empty}.Updates()
	assert.Equal(t, map[string]string{"Nazwa": "Klucz", "subcategorySlug": ""}, got)
	for k := range got {
		assert.True(t, entity.IsUpdatableProductField(k), k)
	}
}

func TestProductUpdateFields_CadaCampoEsAsignable(t *testing.T) {
	p := &entity.Product{}
	for _, f := range entity.UpdatableProductFields {
		assert.True(t, p.Set(f, "v"), f)
	}
	assert.False(t, p.Set(entity.FieldKod, "v"))
	assert.False(t, entity.IsUpdatableProductField("id"))
}
