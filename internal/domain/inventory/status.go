package inventory

import (
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DeriveStatus estado almacenado: low si stock <= minStock, ok en otro caso.
func DeriveStatus(stock, minStock decimal.Decimal) string {
	if stock.LessThanOrEqual(minStock) {
		return entity.StatusLow
	}
	return entity.StatusOK
}

// Refresh recalcula el estado del producto a partir de su stock.
func Refresh(p *entity.Product) {
	p.Status = DeriveStatus(p.Stock, p.MinStock)
}
