// Package imaging aplica los ajustes de imagen sobre el archivo adjunto y lo codifica en JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // registro del decoder
	"io"
	"math"

	_ "golang.org/x/image/bmp"  // registro del decoder
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp" // registro del decoder

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/imageedit"
)

const (
	// DefaultQuality calidad JPEG de la salida.
	DefaultQuality = 95
	// DefaultMaxPixels tope de ancho × alto aceptado antes de decodificar (40 MP).
	DefaultMaxPixels = 40_000_000
)

// Editor aplica filtro de color, rotación con espejado y recorte.
type Editor struct {
	Quality   int
	MaxPixels int
}

// NewEditor construye el editor con calidad 95 y tope de 40 MP.
func NewEditor() *Editor { return &Editor{Quality: DefaultQuality, MaxPixels: DefaultMaxPixels} }

// Apply decodifica src, aplica p y devuelve un JPEG.
// Orden: filtro de color, rotación alrededor del centro dentro de la caja envolvente
// (con el espejado), recorte. Sin recorte y con zoom > 1 se recorta el centro.
func (e *Editor) Apply(src io.Reader, p imageedit.Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("imagem: ler: %w", err)
	}
	if err := e.checkSize(data); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagem: %v: %w", err, domain.ErrParse)
	}

	out := filter(img, p.Brightness/100, p.Contrast/100, p.Saturation/100)
	out = rotate(out, p.Rotation, p.Flip)

	crop := p.Crop
	if crop == nil && p.Zoom > 1 {
		crop = centered(out.Bounds(), p.Zoom)
	}
	if crop != nil {
		if out, err = cut(out, *crop); err != nil {
			return nil, err
		}
	}

	q := e.Quality
	if q <= 0 {
		q = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("imagem: codificar jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// checkSize lee solo el encabezado y rechaza dimensiones por encima del tope,
// antes de que el decoder reserve el buffer de píxeles.
func (e *Editor) checkSize(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("imagem: %v: %w", err, domain.ErrParse)
	}
	limit := e.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(limit) {
		return fmt.Errorf("imagem %dx%d excede %d pixels: %w", cfg.Width, cfg.Height, limit, domain.ErrInvalidInput)
	}
	return nil
}

// filter aplica brightness, contrast y saturate en ese orden (factores, 1 = identidad).
func filter(src image.Image, br, ct, sat float64) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	if br == 1 && ct == 1 && sat == 1 {
		return dst
	}
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a == 0 {
			continue
		}
		// valores sin premultiplicar en 0..1
		r := float64(dst.Pix[i]) / a
		g := float64(dst.Pix[i+1]) / a
		bl := float64(dst.Pix[i+2]) / a

		r, g, bl = r*br, g*br, bl*br
		r, g, bl = (r-0.5)*ct+0.5, (g-0.5)*ct+0.5, (bl-0.5)*ct+0.5
		r, g, bl = saturate(r, g, bl, sat)

		dst.Pix[i] = channel(r, a)
		dst.Pix[i+1] = channel(g, a)
		dst.Pix[i+2] = channel(bl, a)
	}
	return dst
}

// saturate matriz de saturación con los pesos de luminancia de Rec. 709.
func saturate(r, g, b, s float64) (float64, float64, float64) {
	if s == 1 {
		return r, g, b
	}
	return (0.213+0.787*s)*r + (0.715-0.715*s)*g + (0.072-0.072*s)*b,
		(0.213-0.213*s)*r + (0.715+0.285*s)*g + (0.072-0.072*s)*b,
		(0.213-0.213*s)*r + (0.715-0.715*s)*g + (0.072+0.928*s)*b
}

func channel(v, a float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * a))
}

// rotate dibuja src rotada deg grados (horario) alrededor del centro, con el
// espejado aplicado antes de rotar, dentro de la caja envolvente.
func rotate(src *image.RGBA, deg float64, flip imageedit.Flip) *image.RGBA {
	if math.Mod(deg, 360) == 0 && !flip.Horizontal && !flip.Vertical {
		return src
	}
	w, h := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	bw := math.Round(math.Abs(cos)*w + math.Abs(sin)*h)
	bh := math.Round(math.Abs(sin)*w + math.Abs(cos)*h)

	fx, fy := 1.0, 1.0
	if flip.Horizontal {
		fx = -1
	}
	if flip.Vertical {
		fy = -1
	}
	// T(bw/2, bh/2) · R · S(fx, fy) · T(-w/2, -h/2)
	a, b := cos*fx, -sin*fy
	c, d := sin*fx, cos*fy
	m := f64.Aff3{
		a, b, bw/2 - a*w/2 - b*h/2,
		c, d, bh/2 - c*w/2 - d*h/2,
	}

	dst := image.NewRGBA(image.Rect(0, 0, int(bw), int(bh)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.BiLinear.Transform(dst, m, src, src.Bounds(), draw.Over, nil)
	return dst
}

// centered recorte central equivalente al zoom.
func centered(b image.Rectangle, zoom float64) *imageedit.Rect {
	w := int(math.Round(float64(b.Dx()) / zoom))
	h := int(math.Round(float64(b.Dy()) / zoom))
	return &imageedit.Rect{X: (b.Dx() - w) / 2, Y: (b.Dy() - h) / 2, Width: w, Height: h}
}

// cut recorta r limitado a los bordes de la imagen.
func cut(src *image.RGBA, r imageedit.Rect) (*image.RGBA, error) {
	want := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Add(src.Bounds().Min)
	area := want.Intersect(src.Bounds())
	if area.Empty() {
		return nil, fmt.Errorf("recorte %+v fora da imagem %v: %w", r, src.Bounds().Size(), domain.ErrInvalidInput)
	}
	dst := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(dst, dst.Bounds(), src, area.Min, draw.Src)
	return dst, nil
}
