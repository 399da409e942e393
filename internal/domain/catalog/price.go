package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParsePrice interpreta precios de exportaciones polacas: "1 234,50", "12.5", "9,99 zł".
func ParsePrice(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "PLN"), "zł")
	s = strings.NewReplacer(" ", "", "\u00a0", "").Replace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// ParseVATRate tasa de IVA en porcentaje. "zw" (exento) y "np" (no sujeto) valen 0.
func ParseVATRate(s string) (decimal.Decimal, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "zw", "np", "oo":
		return decimal.Zero, true
	}
	return ParsePrice(strings.TrimSuffix(s, "%"))
}

// GrossPrice precio bruto redondeado a grosze.
func GrossPrice(net, vatPercent decimal.Decimal) decimal.Decimal {
	return net.Mul(hundred.Add(vatPercent)).Div(hundred).Round(2)
}

// FormatPLN formato polaco: separador de miles espacio, coma decimal ("1 234,50").
func FormatPLN(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
