package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// WarningNegativeStock se informa cuando una salida deja el stock negativo.
const WarningNegativeStock = "negative_stock"

// Adjustment orden de ajuste de stock ya interpretada.
type Adjustment struct {
	Type        string
	Quantity    decimal.Decimal // en Unit; el signo sale de Type
	Unit        string          // vacío = unidad del producto
	Reason      string
	Operator    string
	Batch       string
	Cost        *decimal.Decimal
	UpdatePrice bool
	Date        string
	AppID       *int64
}

// Outcome resultado de aplicar un ajuste sobre el producto.
type Outcome struct {
	Movement entity.StockMovement
	Warnings []string
}

// Validate rechaza tipos desconocidos y cantidades no positivas.
func (a Adjustment) Validate() error {
	if a.Type != entity.MovementIn && a.Type != entity.MovementOut {
		return fmt.Errorf("tipo %q: %w", a.Type, domain.ErrInvalidQuantity)
	}
	if !a.Quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	return nil
}

// Apply muta el producto (stock, status y, si corresponde, price) y construye el movimiento.
// No toca el producto si el ajuste es inválido.
func Apply(p *entity.Product, a Adjustment, movementID int64, now time.Time) (Outcome, error) {
	if err := a.Validate(); err != nil {
		return Outcome{}, err
	}

	normalized := Normalize(p, a.Quantity, a.Unit)
	realChange := normalized
	if a.Type == entity.MovementOut {
		realChange = normalized.Neg()
	}

	p.Stock = p.Stock.Add(realChange)
	Refresh(p)

	if a.Type == entity.MovementIn && a.UpdatePrice && a.Cost != nil {
		if price, ok := UnitPrice(*a.Cost, normalized); ok {
			p.Price = price
		}
	}

	unit := a.Unit
	if unit == "" {
		unit = p.Unit
	}
	out := Outcome{
		Movement: entity.StockMovement{
			ID:           movementID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			Type:         a.Type,
			Quantity:     a.Quantity,
			QuantityUnit: unit,
			RealChange:   realChange,
			Date:         MovementDate(a.Date, now),
			Reason:       a.Reason,
			User:         a.Operator,
			Batch:        a.Batch,
			Cost:         a.Cost,
			AppID:        a.AppID,
		},
	}
	if p.Stock.IsNegative() {
		out.Warnings = append(out.Warnings, WarningNegativeStock)
	}
	return out, nil
}

// MovementDate completa la fecha del movimiento: vacía = ahora; solo fecha = fecha + hora actual.
func MovementDate(date string, now time.Time) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return now.Format(time.RFC3339)
	}
	if strings.Contains(date, "T") {
		return date
	}
	return date + "T" + now.Format("15:04:05")
}

// ActivityFor entrada del feed correspondiente a un movimiento.
func ActivityFor(m entity.StockMovement, id int64, now time.Time) entity.Activity {
	a := entity.Activity{
		ID:     id,
		Action: "Entrada de estoque",
		Target: fmt.Sprintf("%s (%s %s)", m.ProductName, m.Quantity.String(), m.QuantityUnit),
		Time:   now.Format(time.RFC3339),
		Type:   entity.KindIncome,
	}
	if m.Type == entity.MovementOut {
		a.Action = "Saída de estoque"
		a.Type = entity.KindExpense
	}
	return a
}
