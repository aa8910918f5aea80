package inventory

import (
	"sort"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Drift diferencia entre el stock registrado y la suma de movimientos de un producto.
type Drift struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Stock       decimal.Decimal `json:"stock"`
	LedgerSum   decimal.Decimal `json:"ledgerSum"`
	Drift       decimal.Decimal `json:"drift"`
	Movements   int             `json:"movements"`
}

// LedgerTotals suma de realChange y cantidad de movimientos por producto.
type LedgerTotals struct {
	Sum   decimal.Decimal
	Count int
}

// SumLedger agrupa los movimientos por producto.
func SumLedger(movements []entity.StockMovement) map[int64]LedgerTotals {
	out := make(map[int64]LedgerTotals)
	for _, m := range movements {
		t := out[m.ProductID]
		t.Sum = t.Sum.Add(m.RealChange)
		t.Count++
		out[m.ProductID] = t
	}
	return out
}

// Reconcile compara el stock de cada producto con sus totales del libro.
// Solo devuelve los productos con drift distinto de cero, ordenados por id.
func Reconcile(products []entity.Product, totals map[int64]LedgerTotals) []Drift {
	var out []Drift
	for _, p := range products {
		t := totals[p.ID]
		d := p.Stock.Sub(t.Sum)
		if d.IsZero() {
			continue
		}
		out = append(out, Drift{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			LedgerSum:   t.Sum,
			Drift:       d,
			Movements:   t.Count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
