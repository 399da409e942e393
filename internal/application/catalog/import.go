package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// ImportUseCase vista previa de clasificación a partir de un archivo o de filas ya parseadas.
// Sin reglas en la petición se usan las reglas cargadas al arrancar.
type ImportUseCase struct {
	rules      *entity.RuleSet
	reader     RowReader
	parseRules RuleParser
}

// NewImportUseCase rules puede ser nil: entonces cada petición debe traer sus reglas.
func NewImportUseCase(rules *entity.RuleSet, reader RowReader, parseRules RuleParser) *ImportUseCase {
	return &ImportUseCase{rules: rules, reader: reader, parseRules: parseRules}
}

// Rules reglas por defecto (nil si no hay).
func (uc *ImportUseCase) Rules() *entity.RuleSet {
	return uc.rules
}

// ClassifyFile lee el archivo y clasifica sus filas. rulesFile vacío = reglas por defecto.
func (uc *ImportUseCase) ClassifyFile(_ context.Context, file io.Reader, rulesFile []byte) (*dto.ClassifyResponse, error) {
	rs := uc.rules
	if len(rulesFile) > 0 {
		parsed, err := uc.parseRules(rulesFile)
		if err != nil {
			return nil, err
		}
		rs = parsed
	}
	if rs == nil {
		return nil, fmt.Errorf("%w: no hay reglas de clasificación configuradas", domain.ErrValidation)
	}
	rows, skipped, err := uc.reader.ReadRows(file)
	if err != nil {
		return nil, err
	}
	out, err := ClassifyAndBuildSections(rows, rs.Categories, rs.ExcludeKods)
	if err != nil {
		return nil, err
	}
	out.Skipped = skipped
	return out, nil
}

// ClassifyRows clasifica filas enviadas en JSON. Las cabeceras alias se renombran al campo canónico,
// igual que al leer un CSV. Reglas y exclusiones vacías toman las por defecto.
func (uc *ImportUseCase) ClassifyRows(_ context.Context, in dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	rules, exclude := in.Rules, in.ExcludeKods
	if len(rules) == 0 && uc.rules != nil {
		rules = uc.rules.Categories
		if exclude == nil {
			exclude = uc.rules.ExcludeKods
		}
	}
	rows := make([]entity.Row, len(in.Rows))
	for i, r := range in.Rows {
		rows[i] = entity.CanonicalizeRow(r)
	}
	return ClassifyAndBuildSections(rows, rules, exclude)
}
