package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
)

// PropertyAttachmentUseCase metadatos de archivos adjuntos a una propiedad.
type PropertyAttachmentUseCase struct {
	uow repository.UnitOfWork
	now func() time.Time
}

// NewPropertyAttachmentUseCase construye el caso de uso.
func NewPropertyAttachmentUseCase(uow repository.UnitOfWork) *PropertyAttachmentUseCase {
	return &PropertyAttachmentUseCase{uow: uow, now: time.Now}
}

// Add agrega el adjunto con id uuid y fecha de creación.
func (uc *PropertyAttachmentUseCase) Add(ctx context.Context, userID string, propertyID int64, in dto.AttachmentRequest) (*entity.PropertyAttachment, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.URL) == "" {
		return nil, fmt.Errorf("name e url obrigatórios: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	att := entity.PropertyAttachment{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		URL:       in.URL,
		Type:      in.Type,
		Size:      in.Size,
		CreatedAt: now.Format(time.RFC3339),
	}
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		prop, err := r.Properties.GetByID(propertyID)
		if err != nil {
			return err
		}
		if prop == nil {
			return domain.ErrNotFound
		}
		prop.Attachments = append(prop.Attachments, att)
		if err := r.Properties.Update(prop); err != nil {
			return err
		}
		r.Activities.Add(entity.Activity{
			ID:     r.IDs.Next(),
			Action: "Anexou arquivo",
			Target: att.Name + " em " + prop.Name,
			Time:   now.Format(time.RFC3339),
			Type:   entity.KindNeutral,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &att, nil
}

// Remove quita el adjunto; ErrNotFound si la propiedad o el adjunto no existen.
func (uc *PropertyAttachmentUseCase) Remove(ctx context.Context, userID string, propertyID int64, attachmentID string) error {
	return uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		prop, err := r.Properties.GetByID(propertyID)
		if err != nil {
			return err
		}
		if prop == nil {
			return domain.ErrNotFound
		}
		kept := prop.Attachments[:0:0]
		for _, a := range prop.Attachments {
			if a.ID != attachmentID {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(prop.Attachments) {
			return fmt.Errorf("anexo %s: %w", attachmentID, domain.ErrNotFound)
		}
		prop.Attachments = kept
		return r.Properties.Update(prop)
	})
}
