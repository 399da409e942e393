package entity

import (
	"sort"
	"strings"
)

// Campos canónicos de una fila del archivo de productos.
const (
	FieldKod            = "Kod"
	FieldNazwa          = "Nazwa"
	FieldCenaNetto      = "CenaNetto"
	FieldJednostkaMiary = "JednostkaMiary"
	FieldStawkaVAT      = "StawkaVAT"
	FieldOpis           = "Opis"
)

// Claves de control que viajan junto a la fila (no son columnas del archivo).
const (
	FieldCategorySlug       = "categorySlug"
	FieldSubcategorySlug    = "subcategorySlug"
	FieldImageStorageID     = "imageStorageId"
	FieldThumbnailStorageID = "thumbnailStorageId"
)

// CanonicalFields lista los campos de producto en el orden de exportación.
var CanonicalFields = []string{
	FieldKod, FieldNazwa, FieldCenaNetto, FieldJednostkaMiary, FieldStawkaVAT, FieldOpis,
}

// FieldAliases nombres alternativos (exportaciones antiguas o de otros sistemas) por campo canónico.
// Es la única tabla de equivalencias: se consulta al ingerir el CSV y al insertar productos.
var FieldAliases = map[string][]string{
	FieldKod:            {"kod", "KOD", "Symbol", "Indeks", "Code"},
	FieldNazwa:          {"nazwa", "NAZWA", "Nazwa towaru", "Name"},
	FieldCenaNetto:      {"Cena", "Cena netto", "CenaNettoZl", "cena", "Price"},
	FieldJednostkaMiary: {"Jednostka", "JM", "j.m.", "Jm", "Unit"},
	FieldStawkaVAT:      {"VAT", "Stawka VAT", "Vat", "StawkaVat"},
	FieldOpis:           {"opis", "Description", "ProductDescription"},
}

// aliasIndex índice inverso alias (en minúsculas) -> campo canónico.
var aliasIndex = func() map[string]string {
	idx := make(map[string]string)
	for canonical, aliases := range FieldAliases {
		idx[strings.ToLower(canonical)] = canonical
		for _, a := range aliases {
			idx[strings.ToLower(a)] = canonical
		}
	}
	return idx
}()

// CanonicalFieldName devuelve el campo canónico para una cabecera; si no es conocida la devuelve recortada.
func CanonicalFieldName(header string) string {
	h := strings.TrimSpace(header)
	if c, ok := aliasIndex[strings.ToLower(h)]; ok {
		return c
	}
	return h
}

// IsCanonicalField indica si el nombre es un campo de producto declarado.
func IsCanonicalField(name string) bool {
	for _, f := range CanonicalFields {
		if f == name {
			return true
		}
	}
	return false
}

// Row una fila de producto sin clasificar. Las claves no conocidas se conservan tal cual.
type Row map[string]string

// Get devuelve el valor exacto de la clave (sin alias).
func (r Row) Get(key string) string {
	return r[key]
}

// Lookup devuelve el valor del campo canónico y, si falta o está vacío, el del primer alias presente.
func (r Row) Lookup(canonical string) string {
	if v, ok := r[canonical]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	for _, alias := range FieldAliases[canonical] {
		if v, ok := r[alias]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// CanonicalizeRow devuelve una copia con los alias renombrados a su campo canónico.
// Si varias columnas apuntan al mismo campo gana el primer valor no vacío: el campo canónico,
// luego los alias en el orden de FieldAliases, luego el resto por orden alfabético.
func CanonicalizeRow(r Row) Row {
	out := make(Row, len(r))
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		c := CanonicalFieldName(k)
		if !IsCanonicalField(c) {
			out[k] = r[k]
			continue
		}
		if _, seen := out[c]; !seen {
			out[c] = ""
		}
	}
	for _, f := range CanonicalFields {
		if _, present := out[f]; !present {
			continue
		}
		v := r.Lookup(f)
		if v == "" {
			for _, k := range keys {
				if CanonicalFieldName(k) == f && strings.TrimSpace(r[k]) != "" {
					v = strings.TrimSpace(r[k])
					break
				}
			}
		}
		out[f] = v
	}
	return out
}

// Clone copia la fila.
func (r Row) Clone() Row {
	out := make(Row, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Extras devuelve las claves que no son campos canónicos, alias ni claves de control.
func (r Row) Extras() map[string]string {
	out := make(map[string]string)
	for k, v := range r {
		switch k {
		case FieldCategorySlug, FieldSubcategorySlug, FieldImageStorageID, FieldThumbnailStorageID:
			continue
		}
		if _, known := aliasIndex[strings.ToLower(strings.TrimSpace(k))]; known {
			continue
		}
		out[k] = v
	}
	return out
}

// NormalizeKod normaliza un código para comparaciones (trim + mayúsculas).
func NormalizeKod(kod string) string {
	return strings.ToUpper(strings.TrimSpace(kod))
}
