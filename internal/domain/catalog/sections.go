package catalog

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ValidateRules verifica que la lista de reglas no esté vacía y que cada slug sea único y no vacío.
func ValidateRules(rules []entity.CategoryRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: la lista de reglas está vacía", domain.ErrValidation)
	}
	seen := make(map[string]struct{}, len(rules))
	for i, r := range rules {
		slug := strings.TrimSpace(r.Slug)
		if slug == "" {
			return fmt.Errorf("%w: la regla #%d no tiene slug", domain.ErrValidation, i)
		}
		if _, dup := seen[slug]; dup {
			return fmt.Errorf("%w: slug de regla duplicado %q", domain.ErrValidation, slug)
		}
		seen[slug] = struct{}{}
	}
	return nil
}

// BuildSections clasifica las filas y las agrupa en secciones, una por regla con al menos un ítem,
// en el mismo orden que las reglas. Las filas cuyo Kod está en excludeKods se descartan.
// Cada ítem es una copia de la fila con categorySlug asignado.
func BuildSections(rows []entity.Row, rules []entity.CategoryRule, excludeKods []string) ([]entity.Section, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(excludeKods))
	for _, k := range excludeKods {
		if n := entity.NormalizeKod(k); n != "" {
			excluded[n] = struct{}{}
		}
	}

	hasOther := false
	for _, r := range rules {
		if r.Slug == entity.OtherSlug {
			hasOther = true
			break
		}
	}

	buckets := make(map[string][]entity.Row, len(rules))
	for _, row := range rows {
		if _, skip := excluded[entity.NormalizeKod(row.Lookup(entity.FieldKod))]; skip {
			continue
		}
		slug := Classify(row, rules)
		if slug == "" {
			// sin ganador y sin regla comodín: por convención va a "other"
			slug = entity.OtherSlug
		}
		item := row.Clone()
		item[entity.FieldCategorySlug] = slug
		buckets[slug] = append(buckets[slug], item)
	}

	sections := make([]entity.Section, 0, len(buckets))
	for _, r := range rules {
		items := buckets[r.Slug]
		if len(items) == 0 {
			continue
		}
		sections = append(sections, entity.Section{Slug: r.Slug, TitleKey: r.TitleKey, Items: items})
	}
	if !hasOther {
		if items := buckets[entity.OtherSlug]; len(items) > 0 {
			sections = append(sections, entity.Section{Slug: entity.OtherSlug, TitleKey: entity.OtherSlug, Items: items})
		}
	}
	return sections, nil
}
