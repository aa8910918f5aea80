package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentSuggestion producto a reponer con la cantidad sugerida de compra.
type ReplenishmentSuggestion struct {
	Priority      int             `json:"priority"`
	ProductID     int64           `json:"productId"`
	ProductName   string          `json:"productName"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinStock      decimal.Decimal `json:"minStock"`
	IdealStock    decimal.Decimal `json:"idealStock"`
	SuggestedQty  decimal.Decimal `json:"suggestedQty"`
	UnitCost      decimal.Decimal `json:"unitCost"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
}

// ReplenishmentUseCase lista de compra de los insumos en estado low.
type ReplenishmentUseCase struct {
	uow repository.UnitOfWork
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(uow repository.UnitOfWork) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{uow: uow}
}

var idealFactor = decimal.RequireFromString("1.5")

// GenerateList devuelve los productos con stock <= minStock. El stock ideal es 1,5 × minStock;
// la prioridad va del mayor déficit relativo al menor.
func (uc *ReplenishmentUseCase) GenerateList(ctx context.Context, userID string) ([]ReplenishmentSuggestion, error) {
	var products []entity.Product
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		products = r.Products.List()
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]ReplenishmentSuggestion, 0)
	for _, p := range products {
		if p.Stock.GreaterThan(p.MinStock) || !p.MinStock.IsPositive() {
			continue
		}
		ideal := p.MinStock.Mul(idealFactor)
		qty := ideal.Sub(p.Stock)
		out = append(out, ReplenishmentSuggestion{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Category:      p.Category,
			Unit:          p.Unit,
			CurrentStock:  p.Stock,
			MinStock:      p.MinStock,
			IdealStock:    ideal,
			SuggestedQty:  qty,
			UnitCost:      p.Price,
			EstimatedCost: qty.Mul(p.Price).Round(2),
		})
	}

	// déficit relativo: (min - stock) / min; desempate por costo estimado
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		da := a.MinStock.Sub(a.CurrentStock).Div(a.MinStock)
		db := b.MinStock.Sub(b.CurrentStock).Div(b.MinStock)
		if !da.Equal(db) {
			return da.GreaterThan(db)
		}
		return a.EstimatedCost.GreaterThan(b.EstimatedCost)
	})
	for i := range out {
		out[i].Priority = i + 1
	}
	return out, nil
}
