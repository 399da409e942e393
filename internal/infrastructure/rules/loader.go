// Package rules carga el conjunto de reglas de clasificación desde un archivo YAML o JSON.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Load lee y valida el archivo de reglas. JSON se acepta por ser YAML válido.
func Load(path string) (*entity.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer reglas %s: %w", path, err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse decodifica y normaliza un RuleSet. El orden de las reglas se conserva.
func Parse(data []byte) (*entity.RuleSet, error) {
	var rs entity.RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("%w: archivo de reglas inválido: %v", domain.ErrValidation, err)
	}
	for i := range rs.Categories {
		r := &rs.Categories[i]
		r.Slug = strings.TrimSpace(r.Slug)
		r.TitleKey = strings.TrimSpace(r.TitleKey)
		if r.TitleKey == "" {
			r.TitleKey = r.Slug
		}
		r.Keywords = compact(r.Keywords)
		r.KodPrefixes = compact(r.KodPrefixes)
		r.ExactKods = compact(r.ExactKods)
		if r.Slug != "" && !domcatalog.IsValidSlug(r.Slug) {
			return nil, fmt.Errorf("%w: slug de regla inválido %q", domain.ErrValidation, r.Slug)
		}
	}
	rs.ExcludeKods = compact(rs.ExcludeKods)
	if err := domcatalog.ValidateRules(rs.Categories); err != nil {
		return nil, err
	}
	return &rs, nil
}

// compact recorta y descarta vacíos.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
