package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

// FieldApplicationResponse aplicación guardada y avisos de stock.
type FieldApplicationResponse struct {
	Application *entity.FieldApplication `json:"application"`
	Warnings    []string                 `json:"warnings"`
}

// FieldApplicationHandler aplicaciones en campo; las completed dan baja al stock.
type FieldApplicationHandler struct {
	*RecordHandler[entity.FieldApplication, *entity.FieldApplication]
	uc *usecase.FieldApplicationUseCase
}

// NewFieldApplicationHandler construye el handler.
func NewFieldApplicationHandler(uc *usecase.FieldApplicationUseCase) *FieldApplicationHandler {
	return &FieldApplicationHandler{RecordHandler: NewRecordHandler(uc.RecordUseCase), uc: uc}
}

// Mount registra las rutas; alta, edición y baja pasan por el caso de uso con stock.
func (h *FieldApplicationHandler) Mount(g fiber.Router) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

// Create godoc
// @Summary      Registrar aplicación en campo
// @Tags         field-applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.FieldApplication  true  "aplicação"
// @Success      201   {object}  FieldApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/field-applications [post]
func (h *FieldApplicationHandler) Create(c *fiber.Ctx) error {
	var in entity.FieldApplication
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	app, warnings, err := h.uc.Create(c.UserContext(), GetUserID(c), &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(FieldApplicationResponse{Application: app, Warnings: warnings})
}

// Update godoc
// @Summary      Editar aplicación en campo
// @Description  Si cambian insumos, status, fecha, operador o talhão se estorna lo consumido
//
//	con movimientos inversos y se vuelve a dar baja.
//
// @Tags         field-applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  entity.FieldApplication  true  "aplicação"
// @Success      200   {object}  FieldApplicationResponse
// @Router       /api/field-applications/{id} [put]
func (h *FieldApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in entity.FieldApplication
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	app, warnings, err := h.uc.Update(c.UserContext(), GetUserID(c), id, &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(FieldApplicationResponse{Application: app, Warnings: warnings})
}

// Delete godoc
// @Summary      Excluir aplicación en campo
// @Description  Devuelve al stock lo consumido.
// @Tags         field-applications
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.DeleteResponse
// @Router       /api/field-applications/{id} [delete]
func (h *FieldApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteResponse{Deleted: true, ID: id})
}
