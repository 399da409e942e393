package catalog

import "github.com/jhoicas/Catalogo-api/internal/domain/entity"

// Classify devuelve el slug de la regla ganadora para la fila.
// Una coincidencia exacta de Kod gana siempre, sin importar cuánto puntúen las demás reglas;
// entre varias reglas exactas gana la listada antes.
// Solo un puntaje estrictamente mayor reemplaza al ganador: ante empate gana la regla listada antes.
// Si ninguna regla puntúa por encima de 0 y no hay regla "other", devuelve "" (sin ganador).
func Classify(row entity.Row, rules []entity.CategoryRule) string {
	slug, _ := ClassifyWithScore(row, rules)
	return slug
}

// ClassifyWithScore como Classify pero devuelve también el puntaje ganador.
func ClassifyWithScore(row entity.Row, rules []entity.CategoryRule) (string, float64) {
	for _, rule := range rules {
		if rule.Slug != entity.OtherSlug && IsExactMatch(row, rule) {
			return rule.Slug, ExactMatchScore
		}
	}

	var (
		bestSlug  string
		bestScore float64
	)
	for _, rule := range rules {
		s := Score(row, rule)
		if s > bestScore {
			bestScore = s
			bestSlug = rule.Slug
		}
	}
	return bestSlug, bestScore
}
