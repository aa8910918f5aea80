package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// Motivo del movimiento inicial al cadastrar un producto con stock.
const ReasonInitialBalance = "Saldo inicial de implantação"

// ProductUseCase CRUD del registro de productos.
// El stock se modifica por ajustes; la edición directa se permite pero no pasa por el libro.
type ProductUseCase struct {
	uow repository.UnitOfWork
	log *logger.Logger
	now func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(uow repository.UnitOfWork, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{uow: uow, log: log, now: time.Now}
}

// List devuelve los productos que cumplen el filtro.
func (uc *ProductUseCase) List(ctx context.Context, userID string, f inventory.Filter) ([]entity.Product, error) {
	var out []entity.Product
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = f.Apply(r.Products.List())
		return nil
	})
	return out, err
}

// GetByID devuelve el producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID string, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

// Create registra el producto y, si tiene stock inicial, un movimiento de entrada con ese saldo.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.ProductRequest) (*entity.Product, error) {
	p, err := toProduct(in)
	if err != nil {
		return nil, err
	}
	if p.Stock.IsNegative() {
		return nil, fmt.Errorf("stock inicial %s negativo: %w", p.Stock, domain.ErrInvalidInput)
	}
	now := uc.now()
	err = uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		p.ID = r.IDs.Next()
		if err := r.Products.Create(p); err != nil {
			return err
		}
		r.Activities.Add(activity(r, "Cadastrou novo insumo", p.Name, entity.KindNeutral, now))
		if p.Stock.IsPositive() {
			r.Movements.Append(entity.StockMovement{
				ID:           r.IDs.Next(),
				ProductID:    p.ID,
				ProductName:  p.Name,
				Type:         entity.MovementIn,
				Quantity:     p.Stock,
				QuantityUnit: p.Unit,
				RealChange:   p.Stock,
				Date:         now.Format(time.RFC3339),
				Reason:       ReasonInitialBalance,
				User:         Operator(r),
				Batch:        p.Batch,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.User(userID).Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("produto cadastrado")
	return p, nil
}

// Update reemplaza el registro completo. El status se vuelve a derivar.
func (uc *ProductUseCase) Update(ctx context.Context, userID string, id int64, in dto.ProductRequest) (*entity.Product, error) {
	p, err := toProduct(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	now := uc.now()
	err = uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		if err := r.Products.Update(p); err != nil {
			return err
		}
		r.Activities.Add(activity(r, "Atualizou registro técnico", p.Name, entity.KindNeutral, now))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete quita el producto del registro. Sus movimientos permanecen en el libro.
func (uc *ProductUseCase) Delete(ctx context.Context, userID string, id int64) error {
	now := uc.now()
	return uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		p, err := r.Products.GetByID(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := r.Products.Delete(id); err != nil {
			return err
		}
		r.Activities.Add(activity(r, "Removeu do inventário", p.Name, entity.KindNeutral, now))
		return nil
	})
}

// Movements historial de un producto, del más reciente al más antiguo.
func (uc *ProductUseCase) Movements(ctx context.Context, userID string, id int64) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = r.Movements.ListByProduct(id)
		return nil
	})
	return out, err
}

func toProduct(in dto.ProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name: %w", domain.ErrInvalidInput)
	}
	p := &entity.Product{
		Name:           name,
		Category:       strings.TrimSpace(in.Category),
		Unit:           strings.TrimSpace(in.Unit),
		Location:       strings.TrimSpace(in.Location),
		Batch:          strings.TrimSpace(in.Batch),
		ExpirationDate: strings.TrimSpace(in.ExpirationDate),
	}
	if p.Category == "" {
		p.Category = entity.ProductCategories[0]
	}
	if p.Unit == "" {
		p.Unit = "kg"
	}
	fields := []struct {
		name string
		raw  interface{ Decimal() (decimal.Decimal, error) }
		dst  *decimal.Decimal
		zero bool
	}{
		{"stock", in.Stock, &p.Stock, in.Stock.IsZero()},
		{"unitWeight", in.UnitWeight, &p.UnitWeight, in.UnitWeight.IsZero()},
		{"minStock", in.MinStock, &p.MinStock, in.MinStock.IsZero()},
		{"price", in.Price, &p.Price, in.Price.IsZero()},
	}
	for _, f := range fields {
		if f.zero {
			continue
		}
		v, err := f.raw.Decimal()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, domain.ErrInvalidInput)
		}
		*f.dst = v
	}
	if p.MinStock.IsNegative() || p.Price.IsNegative() {
		return nil, fmt.Errorf("minStock e price não podem ser negativos: %w", domain.ErrInvalidInput)
	}
	if !p.UnitWeight.IsPositive() {
		p.UnitWeight = decimal.NewFromInt(1)
	}
	inventory.Refresh(p)
	return p, nil
}

func activity(r *repository.Repos, action, target, kind string, now time.Time) entity.Activity {
	return entity.Activity{
		ID:     r.IDs.Next(),
		Action: action,
		Target: target,
		Time:   now.Format(time.RFC3339),
		Type:   kind,
	}
}
