package entity

// Record restringe los tipos de las colecciones CRUD genéricas.
// PT es el puntero a la entidad.
type Record[T any] interface {
	*T
	GetID() int64
	SetID(id int64)
	// Label nombre legible usado en el feed de actividades.
	Label() string
}
