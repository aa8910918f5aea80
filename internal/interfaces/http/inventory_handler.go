package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
)

// exportContentTypes content type por formato de exportación.
var exportContentTypes = map[string]string{
	appinv.ExportXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	appinv.ExportCSV:  "text/csv; charset=ISO-8859-1",
	appinv.ExportPDF:  "application/pdf",
}

// InventoryHandler reportes del inventario, exportaciones e importación en lote (protegido).
type InventoryHandler struct {
	reports       *appinv.ReportUseCase
	bulk          *appinv.BulkImportUseCase
	replenishment *appinv.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(reports *appinv.ReportUseCase, bulk *appinv.BulkImportUseCase, replenishment *appinv.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{reports: reports, bulk: bulk, replenishment: replenishment}
}

// Movements godoc
// @Summary      Libro de movimientos
// @Description  Del más reciente al más antiguo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.StockMovement
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.reports.Movements(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activities godoc
// @Summary      Feed de actividades
// @Description  Las 20 más recientes.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Activity
// @Router       /api/activities [get]
func (h *InventoryHandler) Activities(c *fiber.Ctx) error {
	out, err := h.reports.Activities(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Indicadores del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Nome, lote ou local"
// @Param        category  query  string  false  "Categorias separadas por vírgula"
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/inventory/stats [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	f, err := queryFilter(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.reports.Stats(c.UserContext(), GetUserID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Audit godoc
// @Summary      Auditoría de stock por nivel (zero, critical, low, ok)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  inventory.AuditReport
// @Router       /api/inventory/audit [get]
func (h *InventoryHandler) Audit(c *fiber.Ctx) error {
	out, err := h.reports.Audit(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconciliation godoc
// @Summary      Conciliación stock vs. libro
// @Description  Productos cuyo stock difiere de la suma de realChange de sus movimientos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationResponse
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	out, err := h.reports.Reconciliation(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o por debajo del mínimo con la cantidad sugerida hasta 1,5 × mínimo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  inventory.ReplenishmentSuggestion
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateList(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        format    path   string  true   "xlsx, csv o pdf"
// @Param        search    query  string  false  "Nome, lote ou local"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/export.{format} [get]
func (h *InventoryHandler) Export(c *fiber.Ctx) error {
	format := strings.ToLower(c.Params("format"))
	contentType, ok := exportContentTypes[format]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato deve ser xlsx, csv ou pdf"})
	}
	f, err := queryFilter(c)
	if err != nil {
		return badBody(c)
	}
	var buf bytes.Buffer
	if err := h.reports.Export(c.UserContext(), GetUserID(c), format, f, &buf); err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("inventario_%s.%s", time.Now().Format("2006-01-02"), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(buf.Bytes())
}

// BulkPreview godoc
// @Summary      Vista previa de importación en lote
// @Description  JSON {format,text,defaults} para texto pegado o NF-e en texto, o multipart
//
//	con el campo file (xlsx o xml) más format y defaults (JSON) opcionales.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        body  body  dto.BulkPreviewRequest  false  "texto pegado"
// @Success      200   {object}  dto.BulkPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk/preview [post]
func (h *InventoryHandler) BulkPreview(c *fiber.Ctx) error {
	var (
		src appinv.Source
		def *dto.BulkDefaults
	)
	if fh, err := c.FormFile("file"); err == nil {
		file, err := fh.Open()
		if err != nil {
			return badBody(c)
		}
		defer file.Close()
		if src.Data, err = io.ReadAll(file); err != nil {
			return badBody(c)
		}
		src.Format = c.FormValue("format")
		if src.Format == "" {
			src.Format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
		}
		if raw := c.FormValue("defaults"); raw != "" {
			def = &dto.BulkDefaults{}
			if err := json.Unmarshal([]byte(raw), def); err != nil {
				return badBody(c)
			}
		}
	} else {
		var in dto.BulkPreviewRequest
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		src = appinv.Source{Format: in.Format, Text: in.Text}
		def = in.Defaults
	}
	out, err := h.bulk.Preview(c.UserContext(), GetUserID(c), src, def)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkCommit godoc
// @Summary      Confirmar importación en lote
// @Description  Cualquier conflicto bloquea la importación completa (409).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkCommitRequest  true  "filas revisadas"
// @Success      201   {object}  dto.BulkCommitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/bulk/commit [post]
func (h *InventoryHandler) BulkCommit(c *fiber.Ctx) error {
	var in dto.BulkCommitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.bulk.Commit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
