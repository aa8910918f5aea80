package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/agrogest-api/internal/domain/repository"
)

// Commit aplica todas las escrituras dentro de una transacción PostgreSQL.
func (s *Store) Commit(ctx context.Context, writes []repository.Write) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, w := range writes {
		if w.Delete {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE key = $1`, w.Key); err != nil {
				return wrap("delete "+w.Key, err)
			}
			continue
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO `+table+` (key, value, updated_at) VALUES ($1, $2::jsonb, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
			w.Key, string(w.Value))
		if err != nil {
			return wrap("upsert "+w.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
