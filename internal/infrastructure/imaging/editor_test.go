package imaging_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/imageedit"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/imaging"
)

// sample 32x16: metade esquerda vermelha, direita azul.
func sample(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			c := color.RGBA{R: 220, A: 255}
			if x >= 16 {
				c = color.RGBA{B: 220, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func rgb(img image.Image, x, y int) (r, g, b uint32) {
	r, g, b, _ = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestApply_IdentidadeGeraJPEG(t *testing.T) {
	out, err := imaging.NewEditor().Apply(bytes.NewReader(sample(t)), imageedit.Identity())
	require.NoError(t, err)
	img := decode(t, out)
	assert.Equal(t, image.Pt(32, 16), img.Bounds().Size())
	r, _, b := rgb(img, 4, 8)
	assert.Greater(t, r, b)
}

func TestApply_Rotacao90TrocaDimensoes(t *testing.T) {
	p := imageedit.Identity()
	p.Rotation = 90
	out, err := imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 32), decode(t, out).Bounds().Size())
}

func TestApply_EspelhoHorizontal(t *testing.T) {
	p := imageedit.Identity()
	p.Flip.Horizontal = true
	out, err := imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	require.NoError(t, err)
	img := decode(t, out)
	r, _, b := rgb(img, 4, 8)
	assert.Greater(t, b, r, "esquerda passa a ser azul")
}

func TestApply_BrilhoZeroEscurece(t *testing.T) {
	p := imageedit.Identity()
	p.Brightness = 0
	out, err := imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	require.NoError(t, err)
	r, g, b := rgb(decode(t, out), 4, 8)
	assert.Less(t, r+g+b, uint32(30))
}

func TestApply_SaturacaoZeroDeixaCinza(t *testing.T) {
	p := imageedit.Identity()
	p.Saturation = 0
	out, err := imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	require.NoError(t, err)
	r, g, b := rgb(decode(t, out), 4, 8)
	assert.InDelta(t, float64(r), float64(g), 12)
	assert.InDelta(t, float64(g), float64(b), 12)
}

func TestApply_RecorteEZoom(t *testing.T) {
	p := imageedit.Identity()
	p.Crop = &imageedit.Rect{X: 16, Y: 0, Width: 100, Height: 8}
	out, err := imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	require.NoError(t, err)
	img := decode(t, out)
	assert.Equal(t, image.Pt(16, 8), img.Bounds().Size(), "recorte limitado à imagem")
	r, _, b := rgb(img, 4, 4)
	assert.Greater(t, b, r)

	p = imageedit.Identity()
	p.Zoom = 2
	out, err = imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 8), decode(t, out).Bounds().Size())
}

func TestApply_Erros(t *testing.T) {
	_, err := imaging.NewEditor().Apply(bytes.NewReader([]byte("não é imagem")), imageedit.Identity())
	assert.ErrorIs(t, err, domain.ErrParse)

	p := imageedit.Identity()
	p.Crop = &imageedit.Rect{X: 500, Y: 500, Width: 10, Height: 10}
	_, err = imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p = imageedit.Identity()
	p.Zoom = 0
	_, err = imaging.NewEditor().Apply(bytes.NewReader(sample(t)), p)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// bigHeader PNG válido cuyo IHDR declara width x height; los datos siguen siendo de 1x1.
func bigHeader(t *testing.T, width, height uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	b := buf.Bytes()
	// firma (8) + largo (4) + "IHDR" (4): ancho en 16, alto en 20, CRC en 29.
	binary.BigEndian.PutUint32(b[16:20], width)
	binary.BigEndian.PutUint32(b[20:24], height)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return b
}

func TestApply_RejeitaDimensoesAcimaDoLimite(t *testing.T) {
	_, err := imaging.NewEditor().Apply(bytes.NewReader(bigHeader(t, 60000, 60000)), imageedit.Identity())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	small := &imaging.Editor{Quality: 90, MaxPixels: 100}
	_, err = small.Apply(bytes.NewReader(sample(t)), imageedit.Identity())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = (&imaging.Editor{MaxPixels: 32 * 16}).Apply(bytes.NewReader(sample(t)), imageedit.Identity())
	assert.NoError(t, err)
}
