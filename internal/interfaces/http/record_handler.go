package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

// RecordHandler CRUD HTTP de una colección simple (clientes, talhões, tareas...).
type RecordHandler[T any, PT entity.Record[T]] struct {
	uc *usecase.RecordUseCase[T, PT]
}

// NewRecordHandler construye el handler.
func NewRecordHandler[T any, PT entity.Record[T]](uc *usecase.RecordUseCase[T, PT]) *RecordHandler[T, PT] {
	return &RecordHandler[T, PT]{uc: uc}
}

// Mount registra GET/POST / y GET/PUT/DELETE /:id en el grupo.
func (h *RecordHandler[T, PT]) Mount(g fiber.Router) {
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func (h *RecordHandler[T, PT]) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *RecordHandler[T, PT]) Create(c *fiber.Ctx) error {
	rec := new(T)
	if err := c.BodyParser(rec); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *RecordHandler[T, PT]) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *RecordHandler[T, PT]) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	rec := new(T)
	if err := c.BodyParser(rec); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *RecordHandler[T, PT]) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteResponse{Deleted: true, ID: id})
}
