package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
)

// AttachmentHandler adjuntos de propiedades.
type AttachmentHandler struct {
	uc *usecase.PropertyAttachmentUseCase
}

// NewAttachmentHandler construye el handler.
func NewAttachmentHandler(uc *usecase.PropertyAttachmentUseCase) *AttachmentHandler {
	return &AttachmentHandler{uc: uc}
}

// Add godoc
// @Summary      Anexar arquivo a la propiedad
// @Tags         properties
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la propiedad"
// @Param        body  body  dto.AttachmentRequest  true  "name, url, type, size"
// @Success      201   {object}  entity.PropertyAttachment
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/properties/{id}/attachments [post]
func (h *AttachmentHandler) Add(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.AttachmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Add(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Quitar adjunto
// @Tags         properties
// @Security     Bearer
// @Param        id     path  int     true  "ID de la propiedad"
// @Param        attID  path  string  true  "ID del adjunto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/properties/{id}/attachments/{attID} [delete]
func (h *AttachmentHandler) Remove(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Remove(c.UserContext(), GetUserID(c), id, c.Params("attID")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
