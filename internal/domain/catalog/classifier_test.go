package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

func TestClassify_ExactaGanaAPrefijoYPalabras(t *testing.T) {
	rules := []entity.CategoryRule{
		{Slug: "prefix", KodPrefixes: []string{"SPEC"}, Keywords: []string{"special"}},
		{Slug: "exact", ExactKods: []string{"SPECIAL-001"}},
		{Slug: entity.OtherSlug},
	}
	assert.Equal(t, "exact", catalog.Classify(row("SPECIAL-001", "Special glove"), rules))
	assert.Equal(t, "prefix", catalog.Classify(row("SPECIAL-002", "Special glove"), rules))
}

func TestClassify_SinCoincidenciaVaAOther(t *testing.T) {
	rules := []entity.CategoryRule{
		{Slug: "gloves", Keywords: []string{"rękawice"}},
		{Slug: entity.OtherSlug},
		{Slug: "tools", KodPrefixes: []string{"NAR"}},
	}
	slug, score := catalog.ClassifyWithScore(row("ZZ-1", "Coś zupełnie innego"), rules)
	assert.Equal(t, entity.OtherSlug, slug)
	assert.Equal(t, catalog.OtherScore, score)
}

func TestClassify_EmpateGanaLaPrimeraRegla(t *testing.T) {
	a := entity.CategoryRule{Slug: "a", Keywords: []string{"glove"}}
	b := entity.CategoryRule{Slug: "b", Keywords: []string{"glove"}}
	r := row("G-1", "glove")

	for i := 0; i < 100; i++ {
		assert.Equal(t, "a", catalog.Classify(r, []entity.CategoryRule{a, b}))
		assert.Equal(t, "b", catalog.Classify(r, []entity.CategoryRule{b, a}))
	}
}

func TestClassify_EmpateEntreExactasGanaLaPrimera(t *testing.T) {
	rules := []entity.CategoryRule{
		{Slug: "first", ExactKods: []string{"K-1"}},
		{Slug: "second", ExactKods: []string{"k-1"}},
	}
	assert.Equal(t, "first", catalog.Classify(row("K-1", ""), rules))
}

func TestClassify_SinOtherNiCoincidenciaNoHayGanador(t *testing.T) {
	rules := []entity.CategoryRule{{Slug: "gloves", Keywords: []string{"rękawice"}}}
	assert.Equal(t, "", catalog.Classify(row("ZZ-1", "Łopata"), rules))
}

func TestClassify_ExactaGanaAunqueOtraReglaSupere1000(t *testing.T) {
	keywords := []string{"rękawice", "nitrylowe", "lateksowe", "winylowe", "bezpudrowe", "ochronne",
		"robocze", "medyczne", "jednorazowe", "niebieskie", "rozmiar"}
	gloves := entity.CategoryRule{Slug: "gloves", KodPrefixes: []string{"R", "RK", "RK-"}, Keywords: keywords}
	exact := entity.CategoryRule{Slug: "exact", ExactKods: []string{"rk-1"}}
	r := row("RK-1", "Rękawice nitrylowe lateksowe winylowe bezpudrowe ochronne robocze medyczne jednorazowe niebieskie rozmiar")

	require.Greater(t, catalog.Score(r, gloves), catalog.ExactMatchScore)

	for _, rules := range [][]entity.CategoryRule{{gloves, exact}, {exact, gloves}} {
		slug, score := catalog.ClassifyWithScore(r, rules)
		assert.Equal(t, "exact", slug)
		assert.Equal(t, catalog.ExactMatchScore, score)
	}
}

func TestClassify_UsaAliasDeKodYNazwa(t *testing.T) {
	rules := []entity.CategoryRule{
		{Slug: "gloves", Keywords: []string{"rękawice"}},
		{Slug: "paper", ExactKods: []string{"PAP-1"}},
		{Slug: entity.OtherSlug},
	}
	assert.Equal(t, "gloves", catalog.Classify(entity.Row{"Symbol": "X-1", "Nazwa towaru": "Rękawice"}, rules))
	assert.Equal(t, "paper", catalog.Classify(entity.Row{"Indeks": " pap-1 "}, rules))
}
