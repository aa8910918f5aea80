// Package spreadsheet lee y escribe planillas del inventario (XLSX y CSV).
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/bulkimport"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/xuri/excelize/v2"
)

// SheetName nombre de la hoja exportada.
const SheetName = "Estoque"

var reportHeader = []interface{}{
	"Produto", "Categoria", "Localização", "Estoque Atual", "Unidade",
	"Custo Unitário", "Valor Total", "Status", "Lote", "Validade",
}

// ReadXLSX lee la primera hoja con las columnas en el orden de importación.
// Una fila de encabezado al inicio se ignora, igual que las filas vacías.
func ReadXLSX(r io.Reader) ([]bulkimport.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer planilla: %w", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: planilla inválida: %v", domain.ErrParse, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: la planilla no tiene hojas", domain.ErrParse)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: leer hoja %s: %v", domain.ErrParse, sheet, err)
	}

	var out []bulkimport.RawRow
	for i, cols := range rows {
		if i == 0 && bulkimport.IsHeader(cols) {
			continue
		}
		if strings.TrimSpace(strings.Join(cols, "")) == "" {
			continue
		}
		out = append(out, bulkimport.FromColumns(cols))
	}
	return out, nil
}

// WriteXLSX escribe el relatório de inventario en una hoja.
func WriteXLSX(w io.Writer, products []entity.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &reportHeader); err != nil {
		return fmt.Errorf("encabezado: %w", err)
	}
	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		location := p.Location
		if location == "" {
			location = "N/A"
		}
		row := []interface{}{
			p.Name,
			p.Category,
			location,
			p.Stock.Round(2).InexactFloat64(),
			p.Unit,
			p.Price.Round(2).InexactFloat64(),
			inventory.StockValue(p.Stock, p.Price).Round(2).InexactFloat64(),
			strings.ToUpper(p.Status),
			p.Batch,
			p.ExpirationDate,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("escribir planilla: %w", err)
	}
	return nil
}

// Codec expone las funciones del paquete para inyectarlas en los casos de uso.
type Codec struct{}

// ReadRows lee filas de importación de una planilla XLSX.
func (Codec) ReadRows(r io.Reader) ([]bulkimport.RawRow, error) { return ReadXLSX(r) }

// WriteXLSX ver WriteXLSX.
func (Codec) WriteXLSX(w io.Writer, products []entity.Product) error { return WriteXLSX(w, products) }

// WriteCSV ver WriteCSV.
func (Codec) WriteCSV(w io.Writer, products []entity.Product) error { return WriteCSV(w, products) }
