package imageedit_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/imageedit"
)

func bright(v float64) imageedit.Params {
	p := imageedit.Identity()
	p.Brightness = v
	return p
}

func TestHistory_DesfazerRefazer(t *testing.T) {
	h := imageedit.NewHistory(imageedit.Identity())
	assert.False(t, h.CanUndo())

	h.Push(bright(120))
	h.Push(bright(140))
	assert.Equal(t, 120.0, h.Undo().Brightness)
	assert.Equal(t, 100.0, h.Undo().Brightness)
	assert.Equal(t, 100.0, h.Undo().Brightness, "sem estado anterior o cursor fica")
	assert.Equal(t, 120.0, h.Redo().Brightness)
	assert.True(t, h.CanRedo())

	// push depois de desfazer descarta a ramificação
	h.Push(bright(80))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 80.0, h.Redo().Brightness)
}

func TestHistory_ResetEmpilhaIdentidade(t *testing.T) {
	h := imageedit.NewHistory(imageedit.Identity())
	h.Push(bright(150))
	assert.Equal(t, imageedit.Identity(), h.Reset())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 150.0, h.Undo().Brightness)
}

func TestHistory_JSON(t *testing.T) {
	h := imageedit.NewHistory(imageedit.Identity())
	h.Push(bright(130))
	h.Undo()

	raw, err := json.Marshal(h)
	require.NoError(t, err)

	var back imageedit.History
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, 100.0, back.Current().Brightness)
	assert.True(t, back.CanRedo())

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"states":[],"cursor":0}`), &back), domain.ErrParse)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"states":[{"zoom":1}],"cursor":3}`), &back), domain.ErrParse)
}

func TestParams_Validate(t *testing.T) {
	assert.NoError(t, imageedit.Identity().Validate())
	assert.True(t, imageedit.Identity().IsIdentity())

	bad := []imageedit.Params{
		bright(201),
		{Brightness: 100, Contrast: -1, Saturation: 100, Zoom: 1},
		{Brightness: 100, Contrast: 100, Saturation: 100, Zoom: 3.5},
		{Brightness: 100, Contrast: 100, Saturation: 100, Zoom: 1, Crop: &imageedit.Rect{Width: 0, Height: 10}},
	}
	for _, p := range bad {
		assert.ErrorIs(t, p.Validate(), domain.ErrInvalidInput, "%+v", p)
	}

	p := imageedit.Identity()
	p.Rotation = 360
	assert.True(t, p.IsIdentity())
}
