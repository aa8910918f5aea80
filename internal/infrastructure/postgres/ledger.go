package postgres

import (
	"context"

	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/repository"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/kvstore"
	"github.com/shopspring/decimal"
)

var _ repository.LedgerSummer = (*Store)(nil)

// SumLedger suma realChange por producto directamente sobre el JSONB del libro.
func (s *Store) SumLedger(ctx context.Context, userID string) (map[int64]inventory.LedgerTotals, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT (m->>'productId')::bigint, COALESCE(SUM((m->>'realChange')::numeric), 0), COUNT(*)
		FROM `+table+`, jsonb_array_elements(value) AS m
		WHERE key = $1
		GROUP BY 1`, kvstore.Key(kvstore.CollMovements, userID))
	if err != nil {
		return nil, wrap("sum ledger", err)
	}
	defer rows.Close()

	out := make(map[int64]inventory.LedgerTotals)
	for rows.Next() {
		var (
			productID int64
			sum       decimal.Decimal
			count     int
		)
		if err := rows.Scan(&productID, &sum, &count); err != nil {
			return nil, err
		}
		out[productID] = inventory.LedgerTotals{Sum: sum, Count: count}
	}
	return out, rows.Err()
}
