package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// DefaultOperator operador de los movimientos cuando no hay nombre configurado.
const DefaultOperator = "Sistema"

// Result resultado de ApplyStockAdjustment.
type Result struct {
	Product  entity.Product
	Movement entity.StockMovement
	Warnings []string
}

// AdjustStockUseCase aplica ajustes de stock: muta el producto y agrega el movimiento
// y la actividad en una sola unidad de trabajo del usuario.
type AdjustStockUseCase struct {
	uow repository.UnitOfWork
	log *logger.Logger
	now func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(uow repository.UnitOfWork, log *logger.Logger) *AdjustStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustStockUseCase{uow: uow, log: log, now: time.Now}
}

// ToAdjustment interpreta la petición HTTP. Cantidad no numérica => ErrInvalidQuantity.
func ToAdjustment(in dto.AdjustStockRequest) (inventory.Adjustment, error) {
	qty, err := in.Quantity.Decimal()
	if err != nil {
		return inventory.Adjustment{}, fmt.Errorf("quantity %q: %w", in.Quantity, domain.ErrInvalidQuantity)
	}
	adj := inventory.Adjustment{
		Type:        in.Type,
		Quantity:    qty,
		Unit:        in.Unit,
		Reason:      in.Reason,
		Operator:    in.Operator,
		Batch:       in.Batch,
		UpdatePrice: in.UpdatePrice,
		Date:        in.Date,
		AppID:       in.AppID,
	}
	if !in.Cost.IsZero() {
		cost, err := in.Cost.Decimal()
		if err != nil {
			return inventory.Adjustment{}, fmt.Errorf("cost %q: %w", in.Cost, domain.ErrInvalidInput)
		}
		adj.Cost = &cost
	}
	return adj, adj.Validate()
}

// Execute valida, aplica y persiste el ajuste. Stock negativo se permite con aviso.
func (uc *AdjustStockUseCase) Execute(ctx context.Context, userID string, productID int64, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	adj, err := ToAdjustment(in)
	if err != nil {
		return nil, err
	}
	var res *Result
	err = uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		var err error
		res, err = ApplyStockAdjustment(r, productID, adj, uc.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(res.Warnings) > 0 {
		uc.log.User(userID).Warn().
			Int64("product_id", productID).
			Str("product", res.Product.Name).
			Str("stock", res.Product.Stock.String()).
			Strs("warnings", res.Warnings).
			Msg("ajuste de estoque com avisos")
	}
	return &dto.AdjustStockResponse{Product: res.Product, Movement: res.Movement, Warnings: nonNil(res.Warnings)}, nil
}

// ApplyStockAdjustment aplica un ajuste dentro de una unidad de trabajo abierta por el caller.
// Actualiza producto, libro y feed; no confirma nada por sí mismo.
func ApplyStockAdjustment(r *repository.Repos, productID int64, adj inventory.Adjustment, now time.Time) (*Result, error) {
	if err := adj.Validate(); err != nil {
		return nil, err
	}
	p, err := r.Products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("produto %d: %w", productID, domain.ErrNotFound)
	}
	if adj.Operator == "" {
		adj.Operator = Operator(r)
	}
	out, err := inventory.Apply(p, adj, r.IDs.Next(), now)
	if err != nil {
		return nil, err
	}
	if err := r.Products.Update(p); err != nil {
		return nil, err
	}
	r.Movements.Append(out.Movement)
	r.Activities.Add(inventory.ActivityFor(out.Movement, r.IDs.Next(), now))
	return &Result{Product: *p, Movement: out.Movement, Warnings: out.Warnings}, nil
}

// Operator nombre del usuario configurado o DefaultOperator.
func Operator(r *repository.Repos) string {
	if s := r.Settings.Get(); s != nil && s.UserName != "" {
		return s.UserName
	}
	return DefaultOperator
}

// Compensate revierte el efecto neto que los movimientos de una aplicación tuvieron en el stock,
// agregando movimientos inversos (el libro nunca se edita). Productos ya borrados se omiten.
func Compensate(r *repository.Repos, appID int64, reason string, now time.Time) ([]entity.StockMovement, error) {
	net := make(map[int64]decimal.Decimal)
	for _, m := range r.Movements.ListByApp(appID) {
		net[m.ProductID] = net[m.ProductID].Add(m.RealChange)
	}
	ids := make([]int64, 0, len(net))
	for id, v := range net {
		if !v.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []entity.StockMovement
	for _, id := range ids {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		adj := inventory.Adjustment{
			Type:     entity.MovementIn,
			Quantity: net[id].Abs(),
			Reason:   reason,
			AppID:    &appID,
		}
		if net[id].IsPositive() {
			adj.Type = entity.MovementOut
		}
		res, err := ApplyStockAdjustment(r, id, adj, now)
		if err != nil {
			return nil, err
		}
		out = append(out, res.Movement)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
