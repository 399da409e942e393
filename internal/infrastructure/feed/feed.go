// Package feed genera el feed XML de productos (RSS 2.0 con espacio de nombres g: de Google Merchant).
package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	domcatalog "github.com/jhoicas/Catalogo-api/internal/domain/catalog"
)

const nsGoogle = "http://base.google.com/ns/1.0"

// Generator feed de productos. Los productos sin precio legible no se publican.
type Generator struct {
	title    string
	siteURL  string
	currency string
}

// NewGenerator siteURL es la base para los enlaces de producto.
func NewGenerator(title, siteURL, currency string) *Generator {
	if currency == "" {
		currency = "PLN"
	}
	return &Generator{title: title, siteURL: strings.TrimRight(siteURL, "/"), currency: currency}
}

// RenderFeed devuelve el documento XML indentado.
func (g *Generator) RenderFeed(_ context.Context, catalog *dto.CatalogResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", nsGoogle)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(g.title)
	channel.CreateElement("link").SetText(g.siteURL)
	channel.CreateElement("description").SetText("Katalog produktów " + g.title)

	for _, c := range catalog.Categories {
		productType := c.Category.TitleKey
		if c.Category.DisplayName != nil && *c.Category.DisplayName != "" {
			productType = *c.Category.DisplayName
		}
		for _, p := range c.Products {
			g.addItem(channel, p, productType)
		}
	}

	doc.Indent(2)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("feed: escribir xml: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) addItem(channel *etree.Element, p dto.ProductResponse, productType string) {
	net, ok := domcatalog.ParsePrice(p.CenaNetto)
	if !ok {
		return
	}
	price := net
	if rate, ok := domcatalog.ParseVATRate(p.StawkaVAT); ok {
		price = domcatalog.GrossPrice(net, rate)
	}

	item := channel.CreateElement("item")
	item.CreateElement("g:id").SetText(p.Kod)
	item.CreateElement("title").SetText(p.Nazwa)
	if p.Opis != "" {
		item.CreateElement("description").SetText(p.Opis)
	}
	item.CreateElement("link").SetText(g.siteURL + "/produkty/" + url.PathEscape(p.Kod))
	if p.ImageURL != "" {
		item.CreateElement("g:image_link").SetText(p.ImageURL)
	}
	item.CreateElement("g:price").SetText(price.StringFixed(2) + " " + g.currency)
	item.CreateElement("g:product_type").SetText(productType)
	item.CreateElement("g:availability").SetText("in stock")
	item.CreateElement("g:condition").SetText("new")
	if p.JednostkaMiary != "" {
		item.CreateElement("g:unit_pricing_measure").SetText(p.JednostkaMiary)
	}
}
