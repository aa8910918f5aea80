package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository cuentas guardadas como un arreglo JSON bajo agrogest_users.
type UserRepository struct {
	store repository.Store
	mu    sync.Mutex
}

// NewUserRepository construye el repositorio.
func NewUserRepository(store repository.Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) all(ctx context.Context) ([]entity.User, error) {
	raw, err := r.store.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("leer usuarios: %w", err)
	}
	var users []entity.User
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("decodificar usuarios: %w", err)
		}
	}
	return users, nil
}

// Create agrega el usuario. El e-mail es único sin distinguir mayúsculas.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.all(ctx)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	users = append(users, *u)
	b, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.Commit(ctx, []repository.Write{{Key: UsersKey, Value: b}})
}

// FindByEmail devuelve nil, nil si no existe.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

// GetByID devuelve nil, nil si no existe.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}
