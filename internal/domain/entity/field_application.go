package entity

import "github.com/shopspring/decimal"

// Estados de una aplicación en campo.
const (
	ApplicationPlanned   = "planned"
	ApplicationCompleted = "completed"
)

// AppliedProduct insumo usado en una aplicación. TotalQuantity está en la unidad del producto.
type AppliedProduct struct {
	ProductID      int64           `json:"productId"`
	ProductName    string          `json:"productName"`
	Dose           decimal.Decimal `json:"dose"`
	DoseUnit       string          `json:"doseUnit"`
	NormalizedDose decimal.Decimal `json:"normalizedDose"`
	Unit           string          `json:"unit"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
}

// Weather condiciones registradas durante la aplicación.
type Weather struct {
	Temp     string `json:"temp,omitempty"`
	Humidity string `json:"humidity,omitempty"`
	Wind     string `json:"wind,omitempty"`
}

// FieldApplication aplicación de insumos en un talhão.
type FieldApplication struct {
	ID              int64            `json:"id"`
	Date            string           `json:"date"`
	PlotID          int64            `json:"plotId"`
	PlotName        string           `json:"plotName"`
	Target          string           `json:"target"`
	Status          string           `json:"status"`
	AreaApplied     decimal.Decimal  `json:"areaApplied"`
	TotalCost       decimal.Decimal  `json:"totalCost"`
	SprayVolume     *decimal.Decimal `json:"sprayVolume,omitempty"`
	Operator        string           `json:"operator,omitempty"`
	Equipment       string           `json:"equipment,omitempty"`
	Weather         *Weather         `json:"weather,omitempty"`
	AppliedProducts []AppliedProduct `json:"appliedProducts"`
	Observations    string           `json:"observations,omitempty"`
}

func (a *FieldApplication) GetID() int64   { return a.ID }
func (a *FieldApplication) SetID(id int64) { a.ID = id }
func (a *FieldApplication) Label() string  { return a.PlotName }
