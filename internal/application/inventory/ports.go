package inventory

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/agrogest-api/internal/domain/bulkimport"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
)

// InvoiceParser lee los ítems de una NF-e.
type InvoiceParser interface {
	Parse(data []byte) (*bulkimport.Invoice, error)
}

// SheetCodec lee filas de importación y escribe el inventario en planillas.
type SheetCodec interface {
	ReadRows(r io.Reader) ([]bulkimport.RawRow, error)
	WriteXLSX(w io.Writer, products []entity.Product) error
	WriteCSV(w io.Writer, products []entity.Product) error
}

// Sheet datos de la ficha de inventario en PDF.
type Sheet struct {
	FarmName    string
	Currency    string
	GeneratedAt time.Time
	Products    []entity.Product
	Stats       inventory.Stats
}

// PDFGenerator genera la ficha de inventario.
type PDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, sheet Sheet) ([]byte, error)
}
