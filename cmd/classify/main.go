// classify clasifica un export CSV de productos con un archivo de reglas, sin tocar la BD.
//
// Uso: go run ./cmd/classify [--rules config/rules.yaml] [--encoding auto] [--delimiter ";"] [--out secciones.json] productos.csv
//
// Imprime un resumen por sección; con --out escribe las secciones en JSON,
// lista para enviarse a POST /api/admin/catalog/replace tras revisarla.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	appcatalog "github.com/jhoicas/Catalogo-api/internal/application/catalog"
	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/csvimport"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/rules"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func main() {
	rulesPath := pflag.StringP("rules", "r", "config/rules.yaml", "archivo de reglas (YAML o JSON)")
	encoding := pflag.StringP("encoding", "e", "auto", "codificación del CSV: auto | utf-8 | windows-1250 | iso-8859-2")
	delimiter := pflag.StringP("delimiter", "d", "", "separador del CSV (vacío = detectar)")
	outPath := pflag.StringP("out", "o", "", "escribir las secciones en JSON")
	verbose := pflag.BoolP("verbose", "v", false, "log de depuración")
	pflag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(os.Stderr, level)

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: classify [flags] productos.csv")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	ruleSet, err := rules.Load(*rulesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *rulesPath).Msg("reglas de clasificación")
	}
	log.Debug().Int("rules", len(ruleSet.Categories)).Msg("reglas cargadas")

	in, err := os.Open(pflag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer in.Close()

	reader := csvimport.RowReader{Options: csvimport.Options{Encoding: *encoding, Delimiter: *delimiter}}
	uc := appcatalog.NewImportUseCase(ruleSet, reader, rules.Parse)
	out, err := uc.ClassifyFile(context.Background(), in, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("clasificar")
	}

	printSummary(os.Stdout, out)

	if *outPath != "" {
		if err := writeJSON(*outPath, out); err != nil {
			log.Fatal().Err(err).Str("path", *outPath).Msg("escribir salida")
		}
		log.Info().Str("path", *outPath).Msg("clasificación escrita")
	}
}

func printSummary(w io.Writer, out *dto.ClassifyResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SECCIÓN\tTÍTULO\tPRODUCTOS")
	for _, s := range out.Summary {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.Slug, s.TitleKey, s.ItemCount)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nfilas: %d  excluidas: %d  sin Kod: %d\n", out.RowsTotal, out.Excluded, out.Skipped)
}

func writeJSON(path string, out *dto.ClassifyResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.ReplaceCatalogRequest{Sections: out.Sections}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
