package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9_-]+$`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
	disallowedChars = regexp.MustCompile(`[^a-z0-9_-]`)
	hyphenRuns      = regexp.MustCompile(`-{2,}`)
)

// letras que no se descomponen en NFD (ł no es l + diacrítico).
var foldReplacer = strings.NewReplacer(
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ø", "o", "Ø", "O",
	"ß", "ss",
)

// FoldAccents convierte letras acentuadas a ASCII ("Rękawice" -> "Rekawice").
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, foldReplacer.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// SlugifyDisplayName deriva un slug de un nombre visible: "Gumowe Rękawice" -> "gumowe-rekawice".
func SlugifyDisplayName(displayName string) string {
	s := strings.ToLower(FoldAccents(strings.TrimSpace(displayName)))
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = disallowedChars.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeSlug recorta y pasa a minúsculas un slug ingresado por el administrador.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// IsValidSlug solo letras minúsculas, dígitos, guion y guion bajo.
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
