package entity

import (
	"sync"
	"time"
)

// IDSource genera ids numéricos derivados del reloj (milisegundos).
// Si dos ids se piden dentro del mismo milisegundo el segundo se incrementa,
// de modo que los ids de un proceso son estrictamente crecientes.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource crea un generador. now nil usa time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next devuelve el siguiente id.
func (s *IDSource) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe avanza el generador hasta id, para no repetir ids ya persistidos.
func (s *IDSource) Observe(id int64) {
	s.mu.Lock()
	if id > s.last {
		s.last = id
	}
	s.mu.Unlock()
}
