package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeRow_RenombraAliasYConservaExtras(t *testing.T) {
	out := CanonicalizeRow(Row{"Symbol": " A-1 ", "nazwa towaru": "Worek", "Kolor": "x", FieldCategorySlug: "bags"})
	assert.Equal(t, Row{FieldKod: "A-1", FieldNazwa: "Worek", "Kolor": "x", FieldCategorySlug: "bags"}, out)
}

func TestCanonicalizeRow_GanaElPrimerValorNoVacio(t *testing.T) {
	assert.Equal(t, "K-1", CanonicalizeRow(Row{FieldKod: "K-1", "Symbol": "S-1"})[FieldKod], "el campo canónico manda")
	assert.Equal(t, "S-1", CanonicalizeRow(Row{FieldKod: " ", "Symbol": "S-1"})[FieldKod], "canónico vacío cede al alias")
	assert.Equal(t, "S-1", CanonicalizeRow(Row{"Symbol": "S-1", "Indeks": "I-1"})[FieldKod], "orden de FieldAliases")
	assert.Equal(t, "", CanonicalizeRow(Row{"Symbol": ""})[FieldKod], "la columna vacía se mantiene")
}
