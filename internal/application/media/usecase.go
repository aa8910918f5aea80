// Package media edición de imágenes adjuntas con historial de ajustes.
package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/imageedit"
	"github.com/jhoicas/agrogest-api/pkg/logger"
)

// Operaciones sobre el historial.
const (
	OpApply = "apply"
	OpUndo  = "undo"
	OpRedo  = "redo"
	OpReset = "reset"
)

// ImageEditor aplica los ajustes y devuelve la imagen codificada.
type ImageEditor interface {
	Apply(src io.Reader, p imageedit.Params) ([]byte, error)
}

// EditRequest imagen original más la operación. History nil arranca en la identidad.
type EditRequest struct {
	Op      string
	Params  *imageedit.Params
	History *imageedit.History
}

// EditResult imagen editada con los ajustes aplicados y el historial actualizado.
type EditResult struct {
	Image   []byte
	Params  imageedit.Params
	History *imageedit.History
}

// EditUseCase edición sin estado en el servidor: el historial viaja con el pedido.
type EditUseCase struct {
	editor ImageEditor
	log    *logger.Logger
}

// NewEditUseCase construye el caso de uso.
func NewEditUseCase(editor ImageEditor, log *logger.Logger) *EditUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &EditUseCase{editor: editor, log: log}
}

// Edit mueve el historial según Op y renderiza el estado actual sobre src.
func (uc *EditUseCase) Edit(_ context.Context, src io.Reader, req EditRequest) (*EditResult, error) {
	h := req.History
	if h == nil {
		h = imageedit.NewHistory(imageedit.Identity())
	}
	switch strings.ToLower(strings.TrimSpace(req.Op)) {
	case "", OpApply:
		if req.Params != nil {
			if err := req.Params.Validate(); err != nil {
				return nil, err
			}
			h.Push(*req.Params)
		}
	case OpUndo:
		h.Undo()
	case OpRedo:
		h.Redo()
	case OpReset:
		h.Reset()
	default:
		return nil, fmt.Errorf("operação %q: %w", req.Op, domain.ErrInvalidInput)
	}

	p := h.Current()
	out, err := uc.editor.Apply(src, p)
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("op", req.Op).Int("bytes", len(out)).Int("history", h.Len()).Msg("imagem editada")
	return &EditResult{Image: out, Params: p, History: h}, nil
}
