// Package csvimport lee exportaciones CSV de productos (sistemas contables polacos) como filas sin clasificar.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Options codificación y separador. Vacíos = detectar.
type Options struct {
	Encoding  string // utf-8 | windows-1250 | iso-8859-2 | auto
	Delimiter string
}

// Result filas leídas con cabeceras canónicas.
type Result struct {
	Headers   []string
	Rows      []entity.Row
	Skipped   int // filas sin Kod
	Delimiter rune
}

// Read decodifica el archivo completo y devuelve una fila por registro con Kod.
func Read(r io.Reader, opts Options) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	text, err := decode(raw, opts.Encoding)
	if err != nil {
		return nil, err
	}

	delim, err := delimiter(opts.Delimiter, text)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: el archivo csv está vacío", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: cabecera csv: %v", domain.ErrValidation, err)
	}

	res := &Result{Headers: make([]string, len(header)), Delimiter: delim}
	hasKod := false
	for i, h := range header {
		res.Headers[i] = entity.CanonicalFieldName(strings.Trim(h, "\"\ufeff "))
		if res.Headers[i] == entity.FieldKod {
			hasKod = true
		}
	}
	if !hasKod {
		return nil, fmt.Errorf("%w: el csv no tiene columna Kod (cabeceras: %s)", domain.ErrValidation, strings.Join(res.Headers, ", "))
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %v", domain.ErrValidation, line, err)
		}
		row := make(entity.Row, len(res.Headers))
		for i, h := range res.Headers {
			if h == "" {
				continue
			}
			// columnas repetidas (Kod y Symbol): gana el primer valor no vacío
			if cur := row[h]; cur != "" {
				continue
			}
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		if row.Lookup(entity.FieldKod) == "" {
			res.Skipped++
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// decode pasa el contenido a UTF-8. En modo auto, lo que no es UTF-8 válido se trata como windows-1250.
func decode(raw []byte, name string) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	var enc encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		if utf8.Valid(raw) {
			return raw, nil
		}
		enc = charmap.Windows1250
	case "utf-8", "utf8":
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("%w: el archivo no es UTF-8 válido", domain.ErrValidation)
		}
		return raw, nil
	case "windows-1250", "cp1250":
		enc = charmap.Windows1250
	case "iso-8859-2", "latin2":
		enc = charmap.ISO8859_2
	default:
		return nil, fmt.Errorf("%w: codificación no soportada %q", domain.ErrValidation, name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("%w: decodificar csv: %v", domain.ErrValidation, err)
	}
	return out, nil
}

// delimiter usa el configurado o elige el más frecuente en la primera línea entre ; , y tab.
func delimiter(configured string, text []byte) (rune, error) {
	if configured != "" {
		if configured == `\t` {
			return '\t', nil
		}
		r, size := utf8.DecodeRuneInString(configured)
		if size != len(configured) || r == '"' || r == '\n' || r == '\r' {
			return 0, fmt.Errorf("%w: separador inválido %q", domain.ErrValidation, configured)
		}
		return r, nil
	}
	first := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	best, bestCount := ';', -1
	for _, c := range []rune{';', ',', '\t'} {
		if n := bytes.Count(first, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best, nil
}

// RowReader adapta Read al puerto de importación con opciones fijas.
type RowReader struct {
	Options Options
}

func (r RowReader) ReadRows(in io.Reader) ([]entity.Row, int, error) {
	res, err := Read(in, r.Options)
	if err != nil {
		return nil, 0, err
	}
	return res.Rows, res.Skipped, nil
}
