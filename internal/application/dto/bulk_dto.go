package dto

import "github.com/jhoicas/agrogest-api/internal/domain/bulkimport"

// Formatos de origen de la importación en lote.
const (
	BulkFormatText = "text"
	BulkFormatXLSX = "xlsx"
	BulkFormatXML  = "xml"
)

// BulkDefaults valores del lote cuando la fila y la inferencia no los definen.
type BulkDefaults struct {
	Category   string `json:"category"`
	Unit       string `json:"unit"`
	UnitWeight string `json:"unitWeight"`
}

// BulkPreviewRequest texto pegado (TSV) o contenido de archivo.
type BulkPreviewRequest struct {
	Format   string        `json:"format"`
	Text     string        `json:"text"`
	Defaults *BulkDefaults `json:"defaults"`
}

// BulkPreviewResponse candidatos normalizados y conflictos detectados.
type BulkPreviewResponse struct {
	Rows            []bulkimport.RawRow    `json:"rows"`
	Candidates      []bulkimport.Candidate `json:"candidates"`
	Conflicts       int                    `json:"conflicts"`
	Invalid         int                    `json:"invalid"`
	Fingerprint     string                 `json:"fingerprint,omitempty"`
	InvoiceNumber   string                 `json:"invoiceNumber,omitempty"`
	AlreadyImported bool                   `json:"alreadyImported"`
}

// BulkCommitRequest filas (ya revisadas) a registrar. Se normalizan de nuevo en el servidor.
type BulkCommitRequest struct {
	Rows          []bulkimport.RawRow `json:"rows"`
	Defaults      *BulkDefaults       `json:"defaults"`
	Fingerprint   string              `json:"fingerprint"`
	InvoiceNumber string              `json:"invoiceNumber"`
}

// BulkCommitResponse productos creados.
type BulkCommitResponse struct {
	Created   int     `json:"created"`
	Movements int     `json:"movements"`
	IDs       []int64 `json:"ids"`
}
