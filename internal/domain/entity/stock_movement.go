package entity

import "github.com/shopspring/decimal"

// Tipos de movimiento.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StockMovement evento del libro de movimientos (solo se agrega, nunca se edita).
// Quantity está en QuantityUnit; RealChange es el delta con signo ya normalizado a la unidad del producto.
type StockMovement struct {
	ID           int64            `json:"id"`
	ProductID    int64            `json:"productId"`
	ProductName  string           `json:"productName"`
	Type         string           `json:"type"`
	Quantity     decimal.Decimal  `json:"quantity"`
	QuantityUnit string           `json:"quantityUnit"`
	RealChange   decimal.Decimal  `json:"realChange"`
	Date         string           `json:"date"`
	Reason       string           `json:"reason"`
	User         string           `json:"user"`
	Batch        string           `json:"batch,omitempty"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	AppID        *int64           `json:"appId,omitempty"`
}
