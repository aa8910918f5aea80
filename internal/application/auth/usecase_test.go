package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agrogest-api/internal/application/auth"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/memory"
	"github.com/jhoicas/agrogest-api/pkg/jwt"
)

const secret = "segredo-de-teste"

func newAuth() (*auth.AuthUseCase, *kvstore.Runner) {
	store := memory.NewStore()
	r := kvstore.NewRunner(store, nil, nil)
	uc := auth.NewAuthUseCase(kvstore.NewUserRepository(store), r,
		entity.SettingsDefaults{FarmName: "Fazenda Teste", Currency: "R$"},
		auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "agrogest"}, nil)
	return uc, r
}

func TestRegisterELogin(t *testing.T) {
	ctx := context.Background()
	uc, r := newAuth()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "maria@fazenda.com", Password: "senha-forte", Name: "Maria"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Maria", out.User.Name)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, id.UserID)

	require.NoError(t, r.View(ctx, out.User.ID, func(rp *repository.Repos) error {
		s := rp.Settings.Get()
		require.NotNil(t, s)
		assert.Equal(t, "Fazenda Teste", s.FarmName)
		assert.Equal(t, "Maria", s.UserName)
		assert.Equal(t, "maria@fazenda.com", s.UserEmail)
		return nil
	}))

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "MARIA@fazenda.com", Password: "senha-forte"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, login.User.ID)
}

func TestRegister_Validacoes(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "sem-arroba", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "curta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "senha-forte"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "A@B.com", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	ctx := context.Background()
	uc, _ := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "joao@fazenda.com", Password: "senha-forte"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "joao@fazenda.com", Password: "errada!!"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@fazenda.com", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
