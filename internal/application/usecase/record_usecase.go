package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
)

// Collection elige la colección de los repositorios de la unidad de trabajo.
type Collection[T any] func(r *repository.Repos) repository.RecordRepository[T]

// kinded lo implementan los registros que definen el tipo de su actividad (transacciones).
type kinded interface {
	ActivityKind() string
}

// RecordUseCase CRUD genérico de una colección del usuario.
// Cada alta, edición o baja deja una entrada en el feed de actividades.
type RecordUseCase[T any, PT entity.Record[T]] struct {
	uow  repository.UnitOfWork
	coll Collection[T]
	noun string
	now  func() time.Time
}

// NewRecordUseCase construye el CRUD; noun es el nombre del registro en el feed ("cliente").
func NewRecordUseCase[T any, PT entity.Record[T]](uow repository.UnitOfWork, noun string, coll Collection[T]) *RecordUseCase[T, PT] {
	return &RecordUseCase[T, PT]{uow: uow, coll: coll, noun: noun, now: time.Now}
}

// List devuelve la colección completa.
func (uc *RecordUseCase[T, PT]) List(ctx context.Context, userID string) ([]T, error) {
	var out []T
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = uc.coll(r).List()
		return nil
	})
	if out == nil {
		out = []T{}
	}
	return out, err
}

// GetByID devuelve el registro o ErrNotFound.
func (uc *RecordUseCase[T, PT]) GetByID(ctx context.Context, userID string, id int64) (*T, error) {
	var out *T
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		rec, err := uc.coll(r).GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		out = rec
		return nil
	})
	return out, err
}

// Create asigna un id nuevo y guarda el registro. El nombre (o texto) es obligatorio.
func (uc *RecordUseCase[T, PT]) Create(ctx context.Context, userID string, rec *T) (*T, error) {
	if err := validate[T, PT](rec); err != nil {
		return nil, err
	}
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		PT(rec).SetID(r.IDs.Next())
		if err := uc.coll(r).Create(rec); err != nil {
			return err
		}
		r.Activities.Add(uc.activity(r, "Adicionou", rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update reemplaza el registro completo.
func (uc *RecordUseCase[T, PT]) Update(ctx context.Context, userID string, id int64, rec *T) (*T, error) {
	if err := validate[T, PT](rec); err != nil {
		return nil, err
	}
	PT(rec).SetID(id)
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		if err := uc.coll(r).Update(rec); err != nil {
			return err
		}
		r.Activities.Add(uc.activity(r, "Editou", rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete borra por id. Las referencias de otros registros no se validan.
func (uc *RecordUseCase[T, PT]) Delete(ctx context.Context, userID string, id int64) error {
	return uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		rec, err := uc.coll(r).GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if err := uc.coll(r).Delete(id); err != nil {
			return err
		}
		r.Activities.Add(uc.activity(r, "Removeu", rec))
		return nil
	})
}

func (uc *RecordUseCase[T, PT]) activity(r *repository.Repos, verb string, rec *T) entity.Activity {
	kind := entity.KindNeutral
	if k, ok := any(rec).(kinded); ok && k.ActivityKind() != "" {
		kind = k.ActivityKind()
	}
	return entity.Activity{
		ID:     r.IDs.Next(),
		Action: verb + " " + uc.noun,
		Target: PT(rec).Label(),
		Time:   uc.now().Format(time.RFC3339),
		Type:   kind,
	}
}

func validate[T any, PT entity.Record[T]](rec *T) error {
	if rec == nil || strings.TrimSpace(PT(rec).Label()) == "" {
		return fmt.Errorf("nome obrigatório: %w", domain.ErrInvalidInput)
	}
	return nil
}
