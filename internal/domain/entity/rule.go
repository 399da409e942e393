package entity

// OtherSlug slug de la categoría comodín.
const OtherSlug = "other"

// CategoryRule regla de clasificación de una categoría.
type CategoryRule struct {
	Slug        string   `json:"slug" yaml:"slug"`
	TitleKey    string   `json:"titleKey" yaml:"titleKey"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	KodPrefixes []string `json:"kodPrefixes" yaml:"kodPrefixes"`
	ExactKods   []string `json:"exactKods" yaml:"exactKods"`
}

// RuleSet reglas ordenadas + lista de códigos excluidos. El orden desempata.
type RuleSet struct {
	Categories  []CategoryRule `json:"categories" yaml:"categories"`
	ExcludeKods []string       `json:"excludeKods" yaml:"excludeKods"`
}

// Section salida del clasificador: filas asignadas a una categoría.
type Section struct {
	Slug     string `json:"slug"`
	TitleKey string `json:"titleKey"`
	Items    []Row  `json:"items"`
}
