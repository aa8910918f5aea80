package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/application/usecase"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/jwt"
	"github.com/jhoicas/agrogest-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen largo mínimo de la contraseña.
const MinPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	uow      repository.UnitOfWork
	defaults entity.SettingsDefaults
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. uow se usa para crear las
// configuraciones iniciales del conjunto de datos del usuario nuevo.
func NewAuthUseCase(userRepo repository.UserRepository, uow repository.UnitOfWork, defaults entity.SettingsDefaults, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, uow: uow, defaults: defaults, jwtCfg: jwtCfg, log: log}
}

// RegisterUser crea la cuenta (bcrypt), guarda las configuraciones por defecto y
// devuelve el token. ErrEmailAlreadyExists si el e-mail ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("email inválido: %w", domain.ErrInvalidInput)
	}
	if len(in.Password) < MinPasswordLen {
		return nil, fmt.Errorf("password debe tener al menos %d caracteres: %w", MinPasswordLen, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = entity.UserNameFromEmail(email)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	settings := entity.DefaultSettings(uc.defaults, email)
	settings.UserName = name
	err = uc.uow.Run(ctx, user.ID, func(r *repository.Repos) error {
		r.Settings.Save(settings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.User(user.ID).Info().Str("email", email).Msg("cuenta criada")
	return uc.issue(user)
}

// Login verifica email/password y genera el JWT. Usuario inexistente y contraseña
// incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{UserID: user.ID, Email: user.Email, Name: user.Name}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.EntityToUserResponse(user),
	}, nil
}
