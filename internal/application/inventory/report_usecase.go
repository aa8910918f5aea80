package inventory

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/numfmt"
)

// Formatos de exportación del inventario.
const (
	ExportXLSX = "xlsx"
	ExportCSV  = "csv"
	ExportPDF  = "pdf"
)

// ReportUseCase relatórios de solo lectura sobre registro y libro.
type ReportUseCase struct {
	uow      repository.UnitOfWork
	summer   repository.LedgerSummer
	sheets   SheetCodec
	pdf      PDFGenerator
	defaults entity.SettingsDefaults
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso. summer puede ser nil: la suma del libro
// se calcula entonces en memoria.
func NewReportUseCase(
	uow repository.UnitOfWork,
	summer repository.LedgerSummer,
	sheets SheetCodec,
	pdf PDFGenerator,
	defaults entity.SettingsDefaults,
) *ReportUseCase {
	return &ReportUseCase{uow: uow, summer: summer, sheets: sheets, pdf: pdf, defaults: defaults, now: time.Now}
}

// Movements libro completo del usuario, del más reciente al más antiguo.
func (uc *ReportUseCase) Movements(ctx context.Context, userID string) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = r.Movements.List()
		return nil
	})
	return out, err
}

// Activities feed de actividades recientes.
func (uc *ReportUseCase) Activities(ctx context.Context, userID string) ([]entity.Activity, error) {
	var out []entity.Activity
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = r.Activities.List()
		return nil
	})
	return out, err
}

// Stats indicadores de los productos filtrados.
func (uc *ReportUseCase) Stats(ctx context.Context, userID string, f inventory.Filter) (*dto.StatsResponse, error) {
	var out dto.StatsResponse
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out.Stats = inventory.ComputeStats(f.Apply(r.Products.List()))
		out.TotalValueFormatted = numfmt.Money(out.TotalValue, uc.currency(r))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Audit clasificación de todos los productos por nivel de stock.
func (uc *ReportUseCase) Audit(ctx context.Context, userID string) (*inventory.AuditReport, error) {
	var out inventory.AuditReport
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = inventory.Audit(r.Products.List())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Reconciliation compara el stock de cada producto con la suma de su libro.
func (uc *ReportUseCase) Reconciliation(ctx context.Context, userID string) (*dto.ReconciliationResponse, error) {
	var (
		products []entity.Product
		totals   map[int64]inventory.LedgerTotals
	)
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		products = r.Products.List()
		if uc.summer == nil {
			totals = inventory.SumLedger(r.Movements.List())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.summer != nil {
		totals, err = uc.summer.SumLedger(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("somar livro: %w", err)
		}
	}
	drifts := inventory.Reconcile(products, totals)
	if drifts == nil {
		drifts = []inventory.Drift{}
	}
	return &dto.ReconciliationResponse{Checked: len(products), Drifts: drifts}, nil
}

// Export escribe los productos filtrados en w en el formato pedido.
func (uc *ReportUseCase) Export(ctx context.Context, userID, format string, f inventory.Filter, w io.Writer) error {
	var (
		products []entity.Product
		settings entity.Settings
	)
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		products = f.Apply(r.Products.List())
		if s := r.Settings.Get(); s != nil {
			settings = *s
		}
		return nil
	})
	if err != nil {
		return err
	}
	settings = settings.Normalize(uc.defaults)

	switch format {
	case ExportXLSX:
		return uc.sheets.WriteXLSX(w, products)
	case ExportCSV:
		return uc.sheets.WriteCSV(w, products)
	case ExportPDF:
		doc, err := uc.pdf.GenerateInventoryPDF(ctx, Sheet{
			FarmName:    settings.FarmName,
			Currency:    settings.Currency,
			GeneratedAt: uc.now(),
			Products:    products,
			Stats:       inventory.ComputeStats(products),
		})
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	}
	return fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
}

func (uc *ReportUseCase) currency(r *repository.Repos) string {
	if s := r.Settings.Get(); s != nil && s.Currency != "" {
		return s.Currency
	}
	return uc.defaults.Currency
}
