package catalog

import (
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ClassifyAndBuildSections clasifica las filas con las reglas recibidas y arma la vista previa.
// No hace E/S: las reglas siempre llegan como parámetro.
func ClassifyAndBuildSections(rows []entity.Row, rules []entity.CategoryRule, excludeKods []string) (*dto.ClassifyResponse, error) {
	sections, err := domcatalog.BuildSections(rows, rules, excludeKods)
	if err != nil {
		return nil, err
	}
	out := &dto.ClassifyResponse{
		Sections:  sections,
		Summary:   make([]dto.SectionSummary, 0, len(sections)),
		RowsTotal: len(rows),
	}
	classified := 0
	for _, s := range sections {
		out.Summary = append(out.Summary, dto.SectionSummary{Slug: s.Slug, TitleKey: s.TitleKey, ItemCount: len(s.Items)})
		classified += len(s.Items)
	}
	out.Excluded = len(rows) - classified
	return out, nil
}
