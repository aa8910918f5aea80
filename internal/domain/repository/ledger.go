package repository

import (
	"context"

	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
)

// LedgerSummer lo implementan los backends que suman el libro sin traerlo a memoria.
type LedgerSummer interface {
	SumLedger(ctx context.Context, userID string) (map[int64]inventory.LedgerTotals, error)
}
