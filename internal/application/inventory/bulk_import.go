package inventory

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/bulkimport"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/logger"
)

// ReasonBulkImport motivo del movimiento inicial de los productos importados en lote.
const ReasonBulkImport = "Implantação em massa"

// BulkImportUseCase importación en lote: vista previa y confirmación.
type BulkImportUseCase struct {
	uow    repository.UnitOfWork
	parser InvoiceParser
	sheets SheetCodec
	log    *logger.Logger
	now    func() time.Time
}

// NewBulkImportUseCase construye el caso de uso.
func NewBulkImportUseCase(uow repository.UnitOfWork, parser InvoiceParser, sheets SheetCodec, log *logger.Logger) *BulkImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &BulkImportUseCase{uow: uow, parser: parser, sheets: sheets, log: log, now: time.Now}
}

// Source contenido a importar. Data se usa para xlsx y xml; Text para el texto pegado.
type Source struct {
	Format string
	Text   string
	Data   []byte
}

// Preview interpreta el origen, normaliza las filas y marca los conflictos.
// No modifica nada.
func (uc *BulkImportUseCase) Preview(ctx context.Context, userID string, src Source, def *dto.BulkDefaults) (*dto.BulkPreviewResponse, error) {
	out := &dto.BulkPreviewResponse{}
	switch strings.ToLower(strings.TrimSpace(src.Format)) {
	case "", dto.BulkFormatText:
		out.Rows = bulkimport.ParseTabular(src.Text)
	case dto.BulkFormatXLSX:
		rows, err := uc.sheets.ReadRows(bytes.NewReader(src.Data))
		if err != nil {
			return nil, err
		}
		out.Rows = rows
	case dto.BulkFormatXML:
		data := src.Data
		if len(data) == 0 {
			data = []byte(src.Text)
		}
		inv, err := uc.parser.Parse(data)
		if err != nil {
			return nil, err
		}
		out.Rows = inv.Rows
		out.Fingerprint = inv.Fingerprint
		out.InvoiceNumber = inv.Number
	default:
		return nil, fmt.Errorf("formato %q: %w", src.Format, domain.ErrInvalidInput)
	}

	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out.Candidates = bulkimport.Normalize(out.Rows, defaults(def), uc.now())
		out.Conflicts = bulkimport.DetectConflicts(out.Candidates, names(r.Products.List()))
		if out.Fingerprint != "" {
			out.AlreadyImported = r.Imports.Has(out.Fingerprint)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, c := range out.Candidates {
		if len(c.Errors) > 0 {
			out.Invalid++
		}
	}
	if out.Rows == nil {
		out.Rows = []bulkimport.RawRow{}
	}
	return out, nil
}

// Commit crea un producto por fila y su movimiento inicial, todo en un solo commit.
// Cualquier conflicto (duplicado, ya registrado, nota ya importada) devuelve ErrConflict sin tocar nada.
func (uc *BulkImportUseCase) Commit(ctx context.Context, userID string, in dto.BulkCommitRequest) (*dto.BulkCommitResponse, error) {
	now := uc.now()
	out := &dto.BulkCommitResponse{IDs: []int64{}}
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		cands := bulkimport.Normalize(in.Rows, defaults(in.Defaults), now)
		if len(cands) == 0 {
			return fmt.Errorf("nenhuma linha com nome: %w", domain.ErrInvalidInput)
		}
		if n := bulkimport.DetectConflicts(cands, names(r.Products.List())); n > 0 {
			return fmt.Errorf("%d itens em conflito: %w", n, domain.ErrConflict)
		}
		for _, c := range cands {
			if len(c.Errors) > 0 {
				return fmt.Errorf("linha %d: %s: %w", c.Row, strings.Join(c.Errors, "; "), domain.ErrInvalidInput)
			}
		}
		if in.Fingerprint != "" && r.Imports.Has(in.Fingerprint) {
			return fmt.Errorf("nota fiscal já importada: %w", domain.ErrConflict)
		}

		operator := Operator(r)
		for _, c := range cands {
			p := c.ToProduct(r.IDs.Next())
			if err := r.Products.Create(&p); err != nil {
				return err
			}
			out.Created++
			out.IDs = append(out.IDs, p.ID)
			if !p.Stock.IsPositive() {
				continue
			}
			r.Movements.Append(entity.StockMovement{
				ID:           r.IDs.Next(),
				ProductID:    p.ID,
				ProductName:  p.Name,
				Type:         entity.MovementIn,
				Quantity:     p.Stock,
				QuantityUnit: p.Unit,
				RealChange:   p.Stock,
				Date:         now.Format(time.RFC3339),
				Reason:       ReasonBulkImport,
				User:         operator,
				Batch:        p.Batch,
			})
			out.Movements++
		}
		if in.Fingerprint != "" {
			r.Imports.Add(entity.ImportedInvoice{Fingerprint: in.Fingerprint, Number: in.InvoiceNumber, ImportedAt: now})
		}
		r.Activities.Add(activity(r, "Implantação Massiva Concluída",
			fmt.Sprintf("%d novos insumos registrados", out.Created), entity.KindNeutral, now))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.User(userID).Info().Int("created", out.Created).Int("movements", out.Movements).Msg("implantação em massa")
	return out, nil
}

func defaults(d *dto.BulkDefaults) bulkimport.Defaults {
	if d == nil {
		return bulkimport.DefaultDefaults
	}
	return bulkimport.Defaults{Category: d.Category, Unit: d.Unit, UnitWeight: d.UnitWeight}
}

func names(products []entity.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
