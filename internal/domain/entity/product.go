package entity

import "github.com/shopspring/decimal"

// Status de stock almacenado en el producto.
const (
	StatusOK  = "ok"
	StatusLow = "low"
)

// Product insumo del inventario de la fazenda.
// Stock está expresado en Unit; UnitWeight convierte Unit a la unidad física base.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Stock          decimal.Decimal `json:"stock"`
	Unit           string          `json:"unit"`
	UnitWeight     decimal.Decimal `json:"unitWeight"`
	MinStock       decimal.Decimal `json:"minStock"`
	Price          decimal.Decimal `json:"price"`
	Status         string          `json:"status"`
	Location       string          `json:"location"`
	Batch          string          `json:"batch,omitempty"`
	ExpirationDate string          `json:"expirationDate,omitempty"`
}

func (p *Product) GetID() int64   { return p.ID }
func (p *Product) SetID(id int64) { p.ID = id }
func (p *Product) Label() string  { return p.Name }

// Categorías sugeridas para insumos.
var ProductCategories = []string{
	"Fertilizantes",
	"Sementes",
	"Defensivos",
	"Combustível",
	"Peças",
	"Medicamentos",
	"Ração",
	"Outros",
}
