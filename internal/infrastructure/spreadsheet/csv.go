package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/pkg/numfmt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var csvHeader = []string{
	"Nome", "Divisao", "Unidade Logistica", "Unidade de Saida",
	"Saldo Atual", "Peso Unitario", "Valor Unitario (R$)",
}

// LogisticUnits unidad logística (embalaje) y unidad de salida (consumo) de un producto.
func LogisticUnits(unit string) (logistic, output string) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch {
	case u == "sc" || strings.Contains(u, "saco"):
		return "Saco", "kg"
	case u == "l" || u == "litro":
		return "Litro", "L"
	case u == "kg" || u == "quilo":
		return "Quilo", "kg"
	}
	return unit, unit
}

// WriteCSV exporta la lista de productos separada por ";" y codificada en Latin-1,
// el formato que abre la planilla en PT-BR sin romper los acentos.
func WriteCSV(w io.Writer, products []entity.Product) error {
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	cw := csv.NewWriter(enc.Writer(w))
	cw.Comma = ';'
	cw.UseCRLF = true

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("encabezado csv: %w", err)
	}
	for _, p := range products {
		logistic, output := LogisticUnits(p.Unit)
		rec := []string{
			strings.ReplaceAll(p.Name, ";", ","),
			strings.ReplaceAll(p.Category, ";", ","),
			logistic,
			output,
			numfmt.Comma(p.Stock, 2),
			numfmt.Comma(inventory.EffectiveUnitWeight(&p), 2),
			numfmt.Comma(p.Price, 2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("fila csv %q: %w", p.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
