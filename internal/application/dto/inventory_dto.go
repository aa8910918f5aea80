package dto

import (
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/pkg/numfmt"
)

// AdjustStockRequest ajuste de stock de un producto.
// Quantity y Cost aceptan número o texto con separador local.
type AdjustStockRequest struct {
	Type        string      `json:"type"` // in | out
	Quantity    numfmt.Flex `json:"quantity" swaggertype:"string"`
	Unit        string      `json:"unit"`
	Reason      string      `json:"reason"`
	Operator    string      `json:"user"`
	Batch       string      `json:"batch"`
	Cost        numfmt.Flex `json:"cost" swaggertype:"string"`
	UpdatePrice bool        `json:"updatePrice"`
	Date        string      `json:"date"`
	AppID       *int64      `json:"appId"`
}

// AdjustStockResponse producto actualizado, movimiento registrado y avisos.
type AdjustStockResponse struct {
	Product  entity.Product       `json:"product"`
	Movement entity.StockMovement `json:"movement"`
	Warnings []string             `json:"warnings"`
}

// ReconciliationResponse productos cuyo stock no coincide con la suma del libro.
type ReconciliationResponse struct {
	Checked int               `json:"checked"`
	Drifts  []inventory.Drift `json:"drifts"`
}

// StatsResponse indicadores del inventario con el valor formateado en la moneda del usuario.
type StatsResponse struct {
	inventory.Stats
	TotalValueFormatted string `json:"totalValueFormatted"`
}
