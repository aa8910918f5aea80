package kvstore

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

// document valor de una clave cargado en la copia de trabajo.
type document interface {
	decode(raw []byte) error
	encode() ([]byte, error)
	isDirty() bool
}

// list colección JSON en forma de arreglo.
type list[T any] struct {
	items []T
	dirty bool
}

func (l *list[T]) decode(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &l.items)
}

func (l *list[T]) encode() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

func (l *list[T]) isDirty() bool { return l.dirty }

func (l *list[T]) snapshot() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *list[T]) restore(items []T) {
	l.items = append([]T(nil), items...)
	l.dirty = true
}

// object colección JSON de un solo objeto (settings).
type object[T any] struct {
	value *T
	dirty bool
}

func (o *object[T]) decode(raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

func (o *object[T]) encode() ([]byte, error) { return json.Marshal(o.value) }
func (o *object[T]) isDirty() bool            { return o.dirty }

// recordRepo implementa repository.RecordRepository sobre una lista.
type recordRepo[T any, PT entity.Record[T]] struct {
	l *list[T]
}

func (r *recordRepo[T, PT]) List() []T { return r.l.snapshot() }

func (r *recordRepo[T, PT]) index(id int64) int {
	for i := range r.l.items {
		if PT(&r.l.items[i]).GetID() == id {
			return i
		}
	}
	return -1
}

func (r *recordRepo[T, PT]) GetByID(id int64) (*T, error) {
	i := r.index(id)
	if i < 0 {
		return nil, nil
	}
	c := r.l.items[i]
	return &c, nil
}

func (r *recordRepo[T, PT]) Create(rec *T) error {
	id := PT(rec).GetID()
	if r.index(id) >= 0 {
		return fmt.Errorf("id %d: %w", id, domain.ErrDuplicate)
	}
	r.l.items = append(r.l.items, *rec)
	r.l.dirty = true
	return nil
}

func (r *recordRepo[T, PT]) Update(rec *T) error {
	i := r.index(PT(rec).GetID())
	if i < 0 {
		return domain.ErrNotFound
	}
	r.l.items[i] = *rec
	r.l.dirty = true
	return nil
}

func (r *recordRepo[T, PT]) Delete(id int64) error {
	i := r.index(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.l.items = append(r.l.items[:i:i], r.l.items[i+1:]...)
	r.l.dirty = true
	return nil
}

func (r *recordRepo[T, PT]) Restore(items []T) { r.l.restore(items) }
