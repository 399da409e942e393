// Package pdf genera el cennik (lista de precios) del catálogo en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda                     │  CENNIK + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍA                                                  │
//	│  TABLA: Kod | Nazwa | J.m. | Netto | VAT | Brutto           │
//	│  ... una tabla por categoría no vacía                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos + moneda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 235, Green: 240, Blue: 245}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PriceListGenerator cennik con Maroto v2.
type PriceListGenerator struct {
	storeName string
	currency  string
	now       func() time.Time
}

// NewPriceListGenerator construye el generador.
func NewPriceListGenerator(storeName, currency string) *PriceListGenerator {
	if currency == "" {
		currency = "PLN"
	}
	return &PriceListGenerator{storeName: storeName, currency: currency, now: time.Now}
}

// RenderPriceList genera el PDF y devuelve sus bytes. Las categorías sin productos se omiten.
func (g *PriceListGenerator) RenderPriceList(_ context.Context, catalog *dto.CatalogResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cennik "+g.storeName, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	total := 0
	for _, c := range catalog.Categories {
		if len(c.Products) == 0 {
			continue
		}
		m.AddRows(row.New(4))
		m.AddRows(categoryRow(c.Category))
		m.AddRows(tableHeaderRow(g.currency))
		m.AddRows(productRows(c.Products)...)
		total += len(c.Products)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(total, g.currency))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cennik: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *PriceListGenerator) headerRow() core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("CENNIK", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Data: "+g.now().Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func categoryRow(c dto.CategoryResponse) core.Row {
	title := c.TitleKey
	if c.DisplayName != nil && *c.DisplayName != "" {
		title = *c.DisplayName
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1}),
	))
}

func tableHeaderRow(currency string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Kod", 2, align.Left),
		h("Nazwa", 5, align.Left),
		h("J.m.", 1, align.Center),
		h("Netto "+currency, 2, align.Right),
		h("VAT", 1, align.Center),
		h("Brutto", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorLight})
}

func productRows(products []dto.ProductResponse) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		net, gross, vat := PriceColumns(p)
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(p.Kod, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(p.Nazwa, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(p.JednostkaMiary, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(net, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(vat, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(gross, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func footerRow(total int, currency string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Produktów: %d. Ceny w %s; brutto obliczone ze stawki VAT.", total, currency),
			props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// PriceColumns textos de netto, brutto y VAT. Sin precio o tasa legibles se muestra "-".
func PriceColumns(p dto.ProductResponse) (net, gross, vat string) {
	net, gross, vat = "-", "-", nonEmpty(p.StawkaVAT, "-")
	n, ok := domcatalog.ParsePrice(p.CenaNetto)
	if !ok {
		return net, gross, vat
	}
	net = domcatalog.FormatPLN(n)
	rate, ok := domcatalog.ParseVATRate(p.StawkaVAT)
	if !ok {
		return net, gross, vat
	}
	return net, domcatalog.FormatPLN(domcatalog.GrossPrice(n, rate)), vat
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
