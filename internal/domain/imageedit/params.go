// Package imageedit parámetros de ajuste de imagen y su historial de deshacer/rehacer.
package imageedit

import (
	"fmt"
	"math"

	"github.com/jhoicas/agrogest-api/internal/domain"
)

// Límites de los ajustes.
const (
	MaxPercent = 200
	MinZoom    = 1
	MaxZoom    = 3
)

// Flip espejado horizontal y vertical.
type Flip struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

// Rect recorte en píxeles de la imagen ya rotada.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Params snapshot de los ajustes. Los porcentajes valen 100 en la identidad.
type Params struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Rotation   float64 `json:"rotation"` // grados, sentido horario
	Flip       Flip    `json:"flip"`
	Zoom       float64 `json:"zoom"`
	Crop       *Rect   `json:"crop,omitempty"`
}

// Identity ajustes que no alteran la imagen.
func Identity() Params {
	return Params{Brightness: 100, Contrast: 100, Saturation: 100, Zoom: 1}
}

// Validate rechaza porcentajes fuera de 0..200, zoom fuera de 1..3 y recortes vacíos.
func (p Params) Validate() error {
	for name, v := range map[string]float64{"brightness": p.Brightness, "contrast": p.Contrast, "saturation": p.Saturation} {
		if math.IsNaN(v) || v < 0 || v > MaxPercent {
			return fmt.Errorf("%s %v fora de 0..%d: %w", name, v, MaxPercent, domain.ErrInvalidInput)
		}
	}
	if math.IsNaN(p.Zoom) || p.Zoom < MinZoom || p.Zoom > MaxZoom {
		return fmt.Errorf("zoom %v fora de %d..%d: %w", p.Zoom, MinZoom, MaxZoom, domain.ErrInvalidInput)
	}
	if math.IsNaN(p.Rotation) || math.IsInf(p.Rotation, 0) {
		return fmt.Errorf("rotação inválida: %w", domain.ErrInvalidInput)
	}
	if c := p.Crop; c != nil && (c.Width <= 0 || c.Height <= 0 || c.X < 0 || c.Y < 0) {
		return fmt.Errorf("recorte %+v: %w", *c, domain.ErrInvalidInput)
	}
	return nil
}

// IsIdentity indica si aplicar p devuelve la misma imagen.
func (p Params) IsIdentity() bool {
	return p.Brightness == 100 && p.Contrast == 100 && p.Saturation == 100 &&
		math.Mod(p.Rotation, 360) == 0 && !p.Flip.Horizontal && !p.Flip.Vertical &&
		p.Zoom == 1 && p.Crop == nil
}
