package imageedit

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/agrogest-api/internal/domain"
)

// History historial lineal de snapshots con cursor. Siempre tiene al menos un estado.
type History struct {
	states []Params
	cursor int
}

// NewHistory arranca el historial con el estado inicial.
func NewHistory(initial Params) *History {
	return &History{states: []Params{initial}}
}

// Current estado bajo el cursor.
func (h *History) Current() Params { return h.states[h.cursor] }

// Len cantidad de snapshots guardados.
func (h *History) Len() int { return len(h.states) }

// CanUndo indica si hay un estado anterior.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo indica si hay un estado posterior.
func (h *History) CanRedo() bool { return h.cursor < len(h.states)-1 }

// Push agrega p después del cursor y descarta la rama de rehacer.
func (h *History) Push(p Params) {
	h.states = append(h.states[:h.cursor+1:h.cursor+1], p)
	h.cursor = len(h.states) - 1
}

// Undo retrocede el cursor; sin estado anterior no hace nada.
func (h *History) Undo() Params {
	if h.CanUndo() {
		h.cursor--
	}
	return h.Current()
}

// Redo avanza el cursor; sin estado posterior no hace nada.
func (h *History) Redo() Params {
	if h.CanRedo() {
		h.cursor++
	}
	return h.Current()
}

// Reset agrega la identidad como nuevo estado (se puede deshacer).
func (h *History) Reset() Params {
	h.Push(Identity())
	return h.Current()
}

type historyJSON struct {
	States []Params `json:"states"`
	Cursor int      `json:"cursor"`
}

// MarshalJSON serializa estados y cursor.
func (h *History) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyJSON{States: h.states, Cursor: h.cursor})
}

// UnmarshalJSON exige al menos un estado y un cursor dentro del rango.
func (h *History) UnmarshalJSON(b []byte) error {
	var v historyJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("histórico: %v: %w", err, domain.ErrParse)
	}
	if len(v.States) == 0 || v.Cursor < 0 || v.Cursor >= len(v.States) {
		return fmt.Errorf("histórico com cursor %d para %d estados: %w", v.Cursor, len(v.States), domain.ErrParse)
	}
	h.states, h.cursor = v.States, v.Cursor
	return nil
}
