package inventory

import "github.com/shopspring/decimal"

// UnitPrice precio por unidad del producto a partir del costo total de una entrada.
// Devuelve ok=false cuando la cantidad o el costo no permiten calcularlo.
func UnitPrice(totalCost, normalizedQty decimal.Decimal) (decimal.Decimal, bool) {
	if !totalCost.IsPositive() || !normalizedQty.IsPositive() {
		return decimal.Zero, false
	}
	return totalCost.Div(normalizedQty), true
}

// StockValue valor del inventario: Σ stock × price.
func StockValue(stock, price decimal.Decimal) decimal.Decimal {
	return stock.Mul(price)
}
