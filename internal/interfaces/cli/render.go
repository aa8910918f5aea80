package cli

import (
	"fmt"
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/pkg/numfmt"
)

var tierLabel = map[string]string{
	inventory.TierZero:     "Zerado",
	inventory.TierCritical: "Crítico",
	inventory.TierLow:      "Baixo",
	inventory.TierOK:       "OK",
}

// AuditMarkdown relatório de auditoria em tabela markdown.
func AuditMarkdown(farm string, r inventory.AuditReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Auditoria de estoque: %s\n\n", farm)
	fmt.Fprintf(&b, "Zerados: **%d** · Críticos: **%d** · Baixos: **%d** · OK: **%d**\n\n",
		r.Counts[inventory.TierZero], r.Counts[inventory.TierCritical], r.Counts[inventory.TierLow], r.Counts[inventory.TierOK])
	if len(r.Lines) == 0 {
		b.WriteString("_Nenhum produto cadastrado._\n")
		return b.String()
	}
	b.WriteString("| Produto | Categoria | Estoque | Mínimo | Nível |\n")
	b.WriteString("|---|---|---:|---:|---|\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "| %s | %s | %s %s | %s | %s |\n",
			cell(l.Name), cell(l.Category), numfmt.Comma(l.Stock, 2), l.Unit, numfmt.Comma(l.MinStock, 2), tierLabel[l.Tier])
	}
	return b.String()
}

// ReconcileMarkdown produtos cujo estoque diverge da soma do livro.
func ReconcileMarkdown(checked int, drifts []inventory.Drift) string {
	var b strings.Builder
	b.WriteString("# Conciliação do livro de movimentos\n\n")
	fmt.Fprintf(&b, "%d produtos verificados, %d com divergência.\n\n", checked, len(drifts))
	if len(drifts) == 0 {
		return b.String()
	}
	b.WriteString("| ID | Produto | Estoque | Soma do livro | Diferença | Movimentos |\n")
	b.WriteString("|---:|---|---:|---:|---:|---:|\n")
	for _, d := range drifts {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %d |\n",
			d.ProductID, cell(d.ProductName), numfmt.Comma(d.Stock, 2), numfmt.Comma(d.LedgerSum, 2), numfmt.Comma(d.Drift, 2), d.Movements)
	}
	return b.String()
}

// cell escapa el separador de columnas.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
