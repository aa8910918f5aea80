// Package settings configuraciones del productor, backup manual y reset de datos.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/agrogest-api/internal/application/dto"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/pkg/logger"
)

// TimestampLayout ISO 8601 con milisegundos en UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// UseCase configuraciones y backups de un usuario.
type UseCase struct {
	uow      repository.UnitOfWork
	defaults entity.SettingsDefaults
	version  string
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso; version se graba en cada backup exportado.
func NewUseCase(uow repository.UnitOfWork, defaults entity.SettingsDefaults, version string, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{uow: uow, defaults: defaults, version: version, log: log, now: time.Now}
}

// Get devuelve las configuraciones guardadas o las por defecto del e-mail.
func (uc *UseCase) Get(ctx context.Context, userID, email string) (entity.Settings, error) {
	var out entity.Settings
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		out = uc.current(r, email)
		return nil
	})
	return out, err
}

func (uc *UseCase) current(r *repository.Repos, email string) entity.Settings {
	if s := r.Settings.Get(); s != nil {
		return s.Normalize(uc.defaults)
	}
	return entity.DefaultSettings(uc.defaults, email)
}

// Save reemplaza las configuraciones completas.
func (uc *UseCase) Save(ctx context.Context, userID string, in entity.Settings) (entity.Settings, error) {
	s := in.Normalize(uc.defaults)
	now := uc.now()
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		r.Settings.Save(s)
		r.Activities.Add(entity.Activity{
			ID:     r.IDs.Next(),
			Action: "Alterou configurações globais do núcleo",
			Target: "Sincronização OK",
			Time:   now.Format(time.RFC3339),
			Type:   entity.KindNeutral,
		})
		return nil
	})
	return s, err
}

// ExportBackup arma el documento de backup. Con full incluye todas las colecciones.
func (uc *UseCase) ExportBackup(ctx context.Context, userID, email string, full bool) (*entity.Backup, error) {
	var out *entity.Backup
	err := uc.uow.View(ctx, userID, func(r *repository.Repos) error {
		s := uc.current(r, email)
		out = &entity.Backup{
			Settings:  &s,
			Timestamp: uc.now().UTC().Format(TimestampLayout),
			Version:   uc.version,
		}
		if full {
			ds := r.Snapshot()
			ds.Settings = nil
			out.Payload = &ds
		}
		return nil
	})
	return out, err
}

// ImportBackup aplica un backup. JSON malformado o sin settings devuelve ErrParse
// sin tocar nada. Las configuraciones se guardan tal cual; si hay payload, todas
// las colecciones se reemplazan en el mismo commit.
func (uc *UseCase) ImportBackup(ctx context.Context, userID string, raw []byte) (*dto.ImportBackupResponse, error) {
	var b entity.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("backup: %v: %w", err, domain.ErrParse)
	}
	if b.Settings == nil {
		return nil, fmt.Errorf("backup sem settings: %w", domain.ErrParse)
	}
	err := uc.uow.Run(ctx, userID, func(r *repository.Repos) error {
		if b.Payload != nil {
			r.Restore(*b.Payload)
		}
		r.Settings.Save(*b.Settings)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.User(userID).Info().Str("version", b.Version).Bool("payload", b.Payload != nil).Msg("backup importado")
	return &dto.ImportBackupResponse{Settings: true, Collections: b.Payload != nil}, nil
}

// Reset borra todas las claves del usuario.
func (uc *UseCase) Reset(ctx context.Context, userID string) error {
	if err := uc.uow.Purge(ctx, userID); err != nil {
		return err
	}
	uc.log.User(userID).Warn().Msg("dados do usuário apagados")
	return nil
}
