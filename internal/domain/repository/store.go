package repository

import "context"

// Write operación de escritura sobre una clave. Delete ignora Value.
type Write struct {
	Key    string
	Value  []byte
	Delete bool
}

// Store puerto del almacén clave-valor donde cada valor es un documento JSON.
// Commit debe aplicar todas las escrituras de forma atómica.
type Store interface {
	// Get devuelve nil, nil si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany omite del resultado las claves inexistentes.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Commit(ctx context.Context, writes []Write) error
}
