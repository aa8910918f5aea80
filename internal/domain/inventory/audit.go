package inventory

import (
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Niveles del relatório de auditoria. No se almacenan en el producto.
const (
	TierZero     = "zero"
	TierCritical = "critical"
	TierLow      = "low"
	TierOK       = "ok"
)

// AuditLine clasificación de un producto en la auditoria de estoque.
type AuditLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"minStock"`
	Tier      string          `json:"tier"`
}

// AuditReport agrupa los productos por nivel.
type AuditReport struct {
	Lines  []AuditLine    `json:"lines"`
	Counts map[string]int `json:"counts"`
}

// Tier clasifica: zero (stock == 0), critical (stock <= minStock/2), low (stock <= minStock), ok.
func Tier(stock, minStock decimal.Decimal) string {
	switch {
	case stock.IsZero():
		return TierZero
	case stock.LessThanOrEqual(minStock.Div(decimal.NewFromInt(2))):
		return TierCritical
	case stock.LessThanOrEqual(minStock):
		return TierLow
	default:
		return TierOK
	}
}

// Audit clasifica todos los productos en el orden recibido.
func Audit(products []entity.Product) AuditReport {
	r := AuditReport{Counts: map[string]int{TierZero: 0, TierCritical: 0, TierLow: 0, TierOK: 0}}
	for _, p := range products {
		tier := Tier(p.Stock, p.MinStock)
		r.Counts[tier]++
		r.Lines = append(r.Lines, AuditLine{
			ProductID: p.ID,
			Name:      p.Name,
			Category:  p.Category,
			Unit:      p.Unit,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			Tier:      tier,
		})
	}
	return r
}
