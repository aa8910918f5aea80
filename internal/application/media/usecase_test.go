package media_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/application/media"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/imageedit"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/imaging"
)

// recorder guarda los parámetros recibidos.
type recorder struct{ got []imageedit.Params }

func (r *recorder) Apply(_ io.Reader, p imageedit.Params) ([]byte, error) {
	r.got = append(r.got, p)
	return []byte("jpeg"), nil
}

func TestEdit_AplicaDesfazERefaz(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	uc := media.NewEditUseCase(rec, nil)

	p := imageedit.Identity()
	p.Rotation = 90
	res, err := uc.Edit(ctx, nil, media.EditRequest{Params: &p})
	require.NoError(t, err)
	assert.Equal(t, 90.0, res.Params.Rotation)
	assert.Equal(t, 2, res.History.Len())

	res, err = uc.Edit(ctx, nil, media.EditRequest{Op: "undo", History: res.History})
	require.NoError(t, err)
	assert.Equal(t, imageedit.Identity(), res.Params)

	res, err = uc.Edit(ctx, nil, media.EditRequest{Op: media.OpRedo, History: res.History})
	require.NoError(t, err)
	assert.Equal(t, 90.0, res.Params.Rotation)

	res, err = uc.Edit(ctx, nil, media.EditRequest{Op: media.OpReset, History: res.History})
	require.NoError(t, err)
	assert.Equal(t, imageedit.Identity(), res.Params)
	assert.Equal(t, 3, res.History.Len())
	assert.Len(t, rec.got, 4)
}

func TestEdit_Invalidos(t *testing.T) {
	uc := media.NewEditUseCase(&recorder{}, nil)
	_, err := uc.Edit(context.Background(), nil, media.EditRequest{Op: "girar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p := imageedit.Identity()
	p.Zoom = 9
	_, err = uc.Edit(context.Background(), nil, media.EditRequest{Params: &p})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEdit_ComEditorReal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 4))))

	res, err := media.NewEditUseCase(imaging.NewEditor(), nil).Edit(context.Background(), &buf, media.EditRequest{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.Image, []byte{0xFF, 0xD8}), "jpeg começa com SOI")
}
