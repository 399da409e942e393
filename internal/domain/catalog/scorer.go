// Package catalog contiene el motor de clasificación del catálogo (servicios de dominio puros,
// sin E/S): puntuación de filas contra reglas, elección de categoría y armado de secciones.
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

// Pesos de puntuación.
const (
	OtherScore        = 0.1    // piso de la regla comodín; nunca gana a una coincidencia real
	ExactMatchScore   = 1000.0 // coincidencia exacta de Kod: anula cualquier otra señal
	prefixBaseScore   = 10.0
	keywordCharWeight = 5.0
	wholeWordBonus    = 50.0
)

// Score puntúa una fila contra una regla. Resultado >= 0.
//   - regla "other": OtherScore
//   - Kod en ExactKods: ExactMatchScore
//   - por cada prefijo de Kod que coincide: 10 + largo del prefijo
//   - por cada palabra clave contenida en Nazwa: largo*5, +50 si aparece como palabra completa
func Score(row entity.Row, rule entity.CategoryRule) float64 {
	if rule.Slug == entity.OtherSlug {
		return OtherScore
	}

	if IsExactMatch(row, rule) {
		return ExactMatchScore
	}
	kod := strings.ToLower(row.Lookup(entity.FieldKod))

	var score float64
	if kod != "" {
		for _, prefix := range rule.KodPrefixes {
			p := strings.ToLower(prefix)
			if p == "" {
				continue
			}
			if strings.HasPrefix(kod, p) {
				score += prefixBaseScore + float64(utf8.RuneCountInString(p))
			}
		}
	}

	name := strings.ToLower(row.Lookup(entity.FieldNazwa))
	if name != "" {
		for _, keyword := range rule.Keywords {
			kw := strings.ToLower(keyword)
			if kw == "" || !strings.Contains(name, kw) {
				continue
			}
			score += float64(utf8.RuneCountInString(kw)) * keywordCharWeight
			if containsWholeWord(name, kw) {
				score += wholeWordBonus
			}
		}
	}
	return score
}

// IsExactMatch indica si el Kod de la fila (trim, sin distinguir mayúsculas) está en ExactKods de la regla.
func IsExactMatch(row entity.Row, rule entity.CategoryRule) bool {
	kod := entity.NormalizeKod(row.Lookup(entity.FieldKod))
	if kod == "" {
		return false
	}
	for _, exact := range rule.ExactKods {
		if entity.NormalizeKod(exact) == kod {
			return true
		}
	}
	return false
}

// containsWholeWord indica si kw aparece en s delimitada por el inicio/fin o por un carácter que no es letra.
// Las letras con diacríticos (ą, ę, ł, ó...) cuentan como letras.
func containsWholeWord(s, kw string) bool {
	for offset := 0; offset <= len(s)-len(kw); {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(kw)
		if !letterBefore(s, start) && !letterAfter(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return false
}

func letterBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r)
}

func letterAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r)
}
