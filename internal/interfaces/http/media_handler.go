package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/agrogest-api/internal/application/media"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/imageedit"
)

// Headers de respuesta de la edición de imagen.
const (
	HeaderEditParams  = "X-Edit-Params"
	HeaderEditHistory = "X-Edit-History"
)

// MediaHandler edición de imágenes adjuntas.
type MediaHandler struct {
	uc *media.EditUseCase
}

// NewMediaHandler construye el handler.
func NewMediaHandler(uc *media.EditUseCase) *MediaHandler {
	return &MediaHandler{uc: uc}
}

// Edit godoc
// @Summary      Editar imagen
// @Description  multipart: file (imagen), params (JSON), history (JSON devuelto en X-Edit-History,
//
//	base64) y op (apply, undo, redo, reset). Devuelve un JPEG calidad 95; los ajustes aplicados
//	van en X-Edit-Params.
//
// @Tags         attachments
// @Security     Bearer
// @Accept       mpfd
// @Produce      jpeg
// @Param        file     formData  file    true   "imagen"
// @Param        params   formData  string  false  "ajustes"
// @Param        history  formData  string  false  "historial"
// @Param        op       formData  string  false  "apply, undo, redo o reset"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/attachments/edit [post]
func (h *MediaHandler) Edit(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badBody(c)
	}
	req := media.EditRequest{Op: c.FormValue("op")}
	if raw := c.FormValue("params"); raw != "" {
		p := imageedit.Identity()
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return badBody(c)
		}
		req.Params = &p
	}
	if raw := c.FormValue("history"); raw != "" {
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			b = []byte(raw)
		}
		req.History = &imageedit.History{}
		if err := json.Unmarshal(b, req.History); err != nil {
			return writeError(c, fmt.Errorf("history: %v: %w", err, domain.ErrParse))
		}
	}

	file, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer file.Close()

	res, err := h.uc.Edit(c.UserContext(), file, req)
	if err != nil {
		return writeError(c, err)
	}
	params, _ := json.Marshal(res.Params)
	history, _ := json.Marshal(res.History)
	c.Set(HeaderEditParams, string(params))
	c.Set(HeaderEditHistory, base64.StdEncoding.EncodeToString(history))
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(res.Image)
}
