package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/logger"
)

// FieldApplicationUseCase aplicaciones en campo. Una aplicación completed da baja
// a los insumos aplicados con movimientos de salida que llevan su appId.
type FieldApplicationUseCase struct {
	*RecordUseCase[entity.FieldApplication, *entity.FieldApplication]
	uow repository.UnitOfWork
	log *logger.Logger
}

// NewFieldApplicationUseCase construye el caso de uso.
func NewFieldApplicationUseCase(uow repository.UnitOfWork, log *logger.Logger) *FieldApplicationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	base := NewRecordUseCase[entity.FieldApplication](uow, "aplicação",
		func(r *repository.Repos) repository.RecordRepository[entity.FieldApplication] { return r.FieldApplications })
	return &FieldApplicationUseCase{RecordUseCase: base, uow: uow, log: log}
}

// Create registra la aplicación y, si está completed, la salida de cada insumo.
func (uc *FieldApplicationUseCase) Create(ctx context.Context, userID string, app *entity.FieldApplication) (*entity.FieldApplication, []string, error) {
	var warnings []string
	now := uc.now()
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		if err := resolvePlot(r, app); err != nil {
			return err
		}
		app.ID = r.IDs.Next()
		if err := r.FieldApplications.Create(app); err != nil {
			return err
		}
		if app.Status == entity.ApplicationCompleted {
			w, err := consume(r, app, now)
			if err != nil {
				return err
			}
			warnings = w
		}
		r.Activities.Add(entity.Activity{
			ID:     r.IDs.Next(),
			Action: "Registrou aplicação",
			Target: fmt.Sprintf("%d produtos no %s", len(app.AppliedProducts), app.PlotName),
			Time:   now.Format(time.RFC3339),
			Type:   entity.KindNeutral,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	uc.warn(userID, app.ID, warnings)
	return app, nonNil(warnings), nil
}

// Update reemplaza la aplicación. Si cambió algo que afecta el stock (insumos, status,
// fecha, operador o talhão) revierte lo consumido con movimientos inversos y vuelve a dar baja.
func (uc *FieldApplicationUseCase) Update(ctx context.Context, userID string, id int64, app *entity.FieldApplication) (*entity.FieldApplication, []string, error) {
	var warnings []string
	now := uc.now()
	app.ID = id
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		old, err := r.FieldApplications.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := resolvePlot(r, app); err != nil {
			return err
		}
		if stockRelevantChange(old, app) {
			if _, err := appinv.Compensate(r, id, "Estorno aplicação: "+old.PlotName, now); err != nil {
				return err
			}
			if app.Status == entity.ApplicationCompleted {
				if warnings, err = consume(r, app, now); err != nil {
					return err
				}
			}
		}
		if err := r.FieldApplications.Update(app); err != nil {
			return err
		}
		r.Activities.Add(entity.Activity{
			ID:     r.IDs.Next(),
			Action: "Editou aplicação",
			Target: fmt.Sprintf("%d produtos no %s", len(app.AppliedProducts), app.PlotName),
			Time:   now.Format(time.RFC3339),
			Type:   entity.KindNeutral,
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	uc.warn(userID, id, warnings)
	return app, nonNil(warnings), nil
}

// Delete borra la aplicación y devuelve al stock lo que había consumido.
func (uc *FieldApplicationUseCase) Delete(ctx context.Context, userID string, id int64) error {
	now := uc.now()
	return uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		old, err := r.FieldApplications.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if _, err := appinv.Compensate(r, id, "Estorno aplicação: "+old.PlotName, now); err != nil {
			return err
		}
		if err := r.FieldApplications.Delete(id); err != nil {
			return err
		}
		r.Activities.Add(entity.Activity{
			ID:     r.IDs.Next(),
			Action: "Excluiu aplicação",
			Target: fmt.Sprintf("Aplicação no %s removida", old.PlotName),
			Time:   now.Format(time.RFC3339),
			Type:   entity.KindNeutral,
		})
		return nil
	})
}

func (uc *FieldApplicationUseCase) warn(userID string, appID int64, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	uc.log.User(userID).Warn().Int64("app_id", appID).Strs("warnings", warnings).Msg("aplicação deixou estoque negativo")
}

// resolvePlot completa PlotName a partir del talhão referenciado.
func resolvePlot(r *repository.Repos, app *entity.FieldApplication) error {
	if strings.TrimSpace(app.PlotName) == "" && app.PlotID != 0 {
		plot, err := r.Plots.GetByID(app.PlotID)
		if err != nil {
			return err
		}
		if plot != nil {
			app.PlotName = plot.Name
		}
	}
	if strings.TrimSpace(app.PlotName) == "" {
		return fmt.Errorf("talhão obrigatório: %w", domain.ErrInvalidInput)
	}
	if app.Status == "" {
		app.Status = entity.ApplicationCompleted
	}
	if app.Status != entity.ApplicationCompleted && app.Status != entity.ApplicationPlanned {
		return fmt.Errorf("status %q: %w", app.Status, domain.ErrInvalidInput)
	}
	return nil
}

// consume da baja a cada insumo aplicado.
func consume(r *repository.Repos, app *entity.FieldApplication, now time.Time) ([]string, error) {
	var warnings []string
	appID := app.ID
	for _, ap := range app.AppliedProducts {
		res, err := appinv.ApplyStockAdjustment(r, ap.ProductID, inventory.Adjustment{
			Type:     entity.MovementOut,
			Quantity: ap.TotalQuantity,
			Unit:     ap.Unit,
			Reason:   "Aplicação: " + app.PlotName,
			Operator: app.Operator,
			Date:     app.Date,
			AppID:    &appID,
		}, now)
		if err != nil {
			return nil, fmt.Errorf("insumo %d (%s): %w", ap.ProductID, ap.ProductName, err)
		}
		warnings = append(warnings, res.Warnings...)
	}
	return warnings, nil
}

func stockRelevantChange(old, cur *entity.FieldApplication) bool {
	if old.Status != cur.Status || old.Date != cur.Date || old.Operator != cur.Operator || old.PlotID != cur.PlotID {
		return true
	}
	if len(old.AppliedProducts) != len(cur.AppliedProducts) {
		return true
	}
	for i, a := range old.AppliedProducts {
		b := cur.AppliedProducts[i]
		if a.ProductID != b.ProductID || a.Unit != b.Unit || !a.TotalQuantity.Equal(b.TotalQuantity) {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
