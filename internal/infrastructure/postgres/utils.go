package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si el error es una tabla inexistente (42P01).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return false
}

// wrap agrega contexto y una pista cuando falta el esquema.
func wrap(op string, err error) error {
	if isUndefinedTable(err) {
		return fmt.Errorf("%s: tabla %s inexistente, ejecute EnsureSchema: %w", op, table, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
