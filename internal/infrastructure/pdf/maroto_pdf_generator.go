// Package pdf genera la ficha de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Fazenda               │  FICHA DE INVENTÁRIO + Data │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Itens | Atenção | Valor total                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | Categoria | Local | Estoque | Un | ...    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de conferência + legenda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 22, Green: 101, Blue: 52}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa appinv.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInventoryPDF genera la ficha y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInventoryPDF(_ context.Context, sheet appinv.Sheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de Inventário", true).
		WithAuthor(sheet.FarmName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(sheet)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(sheet)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(sheet appinv.Sheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(sheet.FarmName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestão de insumos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA DE INVENTÁRIO", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Gerado em: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(sheet appinv.Sheet) core.Row {
	box := func(label, value string, color *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		box("ITENS", fmt.Sprintf("%d", sheet.Stats.TotalItems), colorPrimary),
		box("EM ATENÇÃO", fmt.Sprintf("%d", sheet.Stats.AttentionItems), colorAlert),
		box("VALOR TOTAL", numfmt.Money(sheet.Stats.TotalValue, sheet.Currency), colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 3, align.Left),
		h("Categoria", 2, align.Left),
		h("Local", 1, align.Left),
		h("Estoque", 1, align.Right),
		h("Un", 1, align.Center),
		h("Custo", 1, align.Right),
		h("Valor", 2, align.Right),
		h("Status", 1, align.Center),
	)
}

func tableRows(sheet appinv.Sheet) []core.Row {
	result := make([]core.Row, 0, len(sheet.Products))
	for _, p := range sheet.Products {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		status := col.New(1).Add(text.New(strings.ToUpper(p.Status), props.Text{
			Size: 7.5, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: statusColor(p),
		}))
		result = append(result, row.New(6).Add(
			cell(p.Name, 3, align.Left),
			cell(p.Category, 2, align.Left),
			cell(nonEmpty(p.Location, "N/A"), 1, align.Left),
			cell(numfmt.Comma(p.Stock, 2), 1, align.Right),
			cell(p.Unit, 1, align.Center),
			cell(numfmt.Comma(p.Price, 2), 1, align.Right),
			cell(numfmt.Money(inventory.StockValue(p.Stock, p.Price), sheet.Currency), 2, align.Right),
			status,
		))
	}
	return result
}

func statusColor(p entity.Product) *props.Color {
	if p.Status == entity.StatusLow {
		return colorAlert
	}
	return colorPrimary
}

// footerRows: QR con el resumen para conferencia en campo.
func footerRows(sheet appinv.Sheet) []core.Row {
	summary := fmt.Sprintf("AGROGEST|%s|%s|%d itens|%s",
		sheet.FarmName,
		sheet.GeneratedAt.Format("2006-01-02T15:04"),
		sheet.Stats.TotalItems,
		sheet.Stats.TotalValue.StringFixed(2),
	)
	rows := []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(summary, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Conferência de inventário", props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary,
				}),
				text.New("Escaneie o código para conferir totais e data desta ficha.", props.Text{
					Size: 8, Top: 10, Left: 3, Color: colorGray,
				}),
			),
		),
	}
	for _, chunk := range splitEvery(summary, 90) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// splitEvery divide s en trozos de max n bytes.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
