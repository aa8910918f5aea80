package settings_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/application/settings"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/memory"
)

var defaults = entity.SettingsDefaults{FarmName: "Fazenda Santa Luzia", Currency: "R$"}

func TestGet_Padroes(t *testing.T) {
	uc := settings.NewUseCase(kvstore.NewRunner(memory.NewStore(), nil, nil), defaults, "1.0.0", nil)
	s, err := uc.Get(context.Background(), "u1", "ana.souza@agro.com")
	require.NoError(t, err)
	assert.Equal(t, "Fazenda Santa Luzia", s.FarmName)
	assert.Equal(t, "ana.souza", s.UserName)
	assert.Equal(t, "dark", s.Theme)
	assert.True(t, s.Notifications.Email)
	assert.False(t, s.Notifications.SMS)
	assert.True(t, s.IsSidebarOpen)
}

func TestSave_PreencheMoedaETema(t *testing.T) {
	ctx := context.Background()
	uc := settings.NewUseCase(kvstore.NewRunner(memory.NewStore(), nil, nil), defaults, "1.0.0", nil)
	s, err := uc.Save(ctx, "u1", entity.Settings{FarmName: "Sítio Alegre", Theme: "roxo"})
	require.NoError(t, err)
	assert.Equal(t, "R$", s.Currency)
	assert.Equal(t, "dark", s.Theme)

	got, err := uc.Get(ctx, "u1", "x@y.com")
	require.NoError(t, err)
	assert.Equal(t, "Sítio Alegre", got.FarmName)
}

func TestBackup_IdaEVolta(t *testing.T) {
	ctx := context.Background()
	r := kvstore.NewRunner(memory.NewStore(), nil, nil)
	uc := settings.NewUseCase(r, defaults, "2.1.0", nil)

	want := entity.Settings{
		FarmName: "Fazenda Boa Esperança", Currency: "US$", UserName: "Carlos", UserEmail: "c@f.com",
		Notifications: entity.Notifications{Email: false, Push: true, SMS: true}, Theme: "light", IsSidebarOpen: false,
	}
	_, err := uc.Save(ctx, "origem", want)
	require.NoError(t, err)
	_, err = appinv.NewProductUseCase(r, nil).Create(ctx, "origem", dto.ProductRequest{Name: "UREIA", Stock: "10"})
	require.NoError(t, err)

	b, err := uc.ExportBackup(ctx, "origem", "c@f.com", true)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", b.Version)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, b.Timestamp)
	require.NotNil(t, b.Payload)
	assert.Len(t, b.Payload.Products, 1)
	assert.Len(t, b.Payload.StockMovements, 1)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	res, err := uc.ImportBackup(ctx, "destino", raw)
	require.NoError(t, err)
	assert.True(t, res.Collections)

	got, err := uc.Get(ctx, "destino", "outro@f.com")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	products, err := appinv.NewProductUseCase(r, nil).List(ctx, "destino", inventory.Filter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "UREIA", products[0].Name)
}

func TestImportBackup_InvalidoNaoAltera(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := settings.NewUseCase(kvstore.NewRunner(store, nil, nil), defaults, "1.0.0", nil)

	for _, raw := range []string{`{"settings":`, `{"timestamp":"2026-01-01T00:00:00.000Z"}`, `[]`} {
		_, err := uc.ImportBackup(ctx, "u1", []byte(raw))
		assert.ErrorIs(t, err, domain.ErrParse, raw)
	}
	keys, _ := store.Keys(ctx, kvstore.Prefix)
	assert.Empty(t, keys)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := settings.NewUseCase(kvstore.NewRunner(store, nil, nil), defaults, "1.0.0", nil)
	_, err := uc.Save(ctx, "u1", entity.Settings{FarmName: "X"})
	require.NoError(t, err)

	require.NoError(t, uc.Reset(ctx, "u1"))
	keys, _ := store.Keys(ctx, kvstore.Prefix)
	assert.Empty(t, keys)
}
