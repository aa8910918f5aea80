package inventory

import (
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Filter criterios de búsqueda del inventario. Listas vacías no filtran.
type Filter struct {
	Search     string
	Categories []string
	Statuses   []string
	Locations  []string
}

// Match indica si el producto cumple todos los criterios.
func (f Filter) Match(p entity.Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		hay := strings.ToLower(p.Name + "\x00" + p.Batch + "\x00" + p.Location)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	return in(f.Categories, p.Category) && in(f.Statuses, p.Status) && in(f.Locations, p.Location)
}

func in(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// Apply devuelve los productos que cumplen el filtro.
func (f Filter) Apply(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Stats indicadores del inventario.
type Stats struct {
	TotalItems     int             `json:"totalItems"`
	AttentionItems int             `json:"attentionItems"`
	TotalValue     decimal.Decimal `json:"totalValue"`
}

// ComputeStats calcula total de itens, itens que no están ok y valor total.
func ComputeStats(products []entity.Product) Stats {
	s := Stats{TotalItems: len(products), TotalValue: decimal.Zero}
	for _, p := range products {
		if p.Status != entity.StatusOK {
			s.AttentionItems++
		}
		s.TotalValue = s.TotalValue.Add(StockValue(p.Stock, p.Price))
	}
	return s
}
