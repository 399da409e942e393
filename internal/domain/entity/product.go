package entity

import "time"

// Product producto persistido: una fila clasificada más su categoría e imágenes.
// Kod es único en todo el catálogo.
type Product struct {
	ID                 string
	Kod                string
	Nazwa              string
	CenaNetto          string
	JednostkaMiary     string
	StawkaVAT          string
	Opis               string
	Attributes         map[string]string // columnas no canónicas del archivo
	CategorySlug       string
	SubcategorySlug    string // vacío si no tiene
	ImageStorageID     string
	ThumbnailStorageID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasMedia indica si el producto tiene imagen o miniatura.
func (p *Product) HasMedia() bool {
	return p.ImageStorageID != "" || p.ThumbnailStorageID != ""
}

// MediaIDs devuelve los ids de almacenamiento no vacíos.
func (p *Product) MediaIDs() []string {
	var ids []string
	if p.ImageStorageID != "" {
		ids = append(ids, p.ImageStorageID)
	}
	if p.ThumbnailStorageID != "" {
		ids = append(ids, p.ThumbnailStorageID)
	}
	return ids
}

// UpdatableProductFields lista blanca de campos modificables por UpdateProduct.
// La comparte el DTO público; cualquier otra clave se descarta en silencio.
var UpdatableProductFields = []string{
	FieldCategorySlug,
	FieldSubcategorySlug,
	FieldNazwa,
	FieldCenaNetto,
	FieldJednostkaMiary,
	FieldStawkaVAT,
	FieldOpis,
	FieldImageStorageID,
	FieldThumbnailStorageID,
}

// IsUpdatableProductField indica si la clave está en la lista blanca.
func IsUpdatableProductField(key string) bool {
	for _, f := range UpdatableProductFields {
		if f == key {
			return true
		}
	}
	return false
}

// Fields devuelve el producto como mapa de campos (canónicos + claves de control presentes).
func (p *Product) Fields() map[string]string {
	out := map[string]string{
		FieldKod:            p.Kod,
		FieldNazwa:          p.Nazwa,
		FieldCenaNetto:      p.CenaNetto,
		FieldJednostkaMiary: p.JednostkaMiary,
		FieldStawkaVAT:      p.StawkaVAT,
		FieldOpis:           p.Opis,
		FieldCategorySlug:   p.CategorySlug,
	}
	if p.SubcategorySlug != "" {
		out[FieldSubcategorySlug] = p.SubcategorySlug
	}
	if p.ImageStorageID != "" {
		out[FieldImageStorageID] = p.ImageStorageID
	}
	if p.ThumbnailStorageID != "" {
		out[FieldThumbnailStorageID] = p.ThumbnailStorageID
	}
	return out
}

// Set asigna un campo de la lista blanca. Devuelve false si la clave no es modificable.
func (p *Product) Set(key, value string) bool {
	switch key {
	case FieldCategorySlug:
		p.CategorySlug = value
	case FieldSubcategorySlug:
		p.SubcategorySlug = value
	case FieldNazwa:
		p.Nazwa = value
	case FieldCenaNetto:
		p.CenaNetto = value
	case FieldJednostkaMiary:
		p.JednostkaMiary = value
	case FieldStawkaVAT:
		p.StawkaVAT = value
	case FieldOpis:
		p.Opis = value
	case FieldImageStorageID:
		p.ImageStorageID = value
	case FieldThumbnailStorageID:
		p.ThumbnailStorageID = value
	default:
		return false
	}
	return true
}

// ProductFromRow arma un producto desde una fila resolviendo alias de columnas.
// Las claves de control de imagen se ignoran: las imágenes solo se asocian por el flujo de subida.
func ProductFromRow(id string, row Row, categorySlug string, now time.Time) *Product {
	return &Product{
		ID:             id,
		Kod:            row.Lookup(FieldKod),
		Nazwa:          row.Lookup(FieldNazwa),
		CenaNetto:      row.Lookup(FieldCenaNetto),
		JednostkaMiary: row.Lookup(FieldJednostkaMiary),
		StawkaVAT:      row.Lookup(FieldStawkaVAT),
		Opis:           row.Lookup(FieldOpis),
		Attributes:     row.Extras(),
		CategorySlug:   categorySlug,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
