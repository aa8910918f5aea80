package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/settings"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

// SettingsHandler configuraciones, backup y reset de los datos del usuario.
type SettingsHandler struct {
	uc *settings.UseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuraciones del usuario
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.Settings
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), GetEmail(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar configuraciones
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Settings  true  "configurações completas"
// @Success      200   {object}  entity.Settings
// @Router       /api/settings [put]
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	var in entity.Settings
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportBackup godoc
// @Summary      Exportar backup
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        full  query  bool  false  "incluir todas las colecciones"
// @Success      200  {object}  entity.Backup
// @Router       /api/backup [get]
func (h *SettingsHandler) ExportBackup(c *fiber.Ctx) error {
	out, err := h.uc.ExportBackup(c.UserContext(), GetUserID(c), GetEmail(c), c.QueryBool("full", false))
	if err != nil {
		return writeError(c, err)
	}
	name := fmt.Sprintf("agrogest_backup_%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.JSON(out)
}

// ImportBackup godoc
// @Summary      Importar backup
// @Description  JSON inválido o sin settings devuelve 422 sin modificar nada.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Backup  true  "backup"
// @Success      200   {object}  dto.ImportBackupResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *SettingsHandler) ImportBackup(c *fiber.Ctx) error {
	out, err := h.uc.ImportBackup(c.UserContext(), GetUserID(c), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Borrar todos los datos del usuario
// @Tags         settings
// @Security     Bearer
// @Success      204
// @Router       /api/data [delete]
func (h *SettingsHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.UserContext(), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
