package entity

import "time"

// User cuenta de acceso. Cada usuario es dueño de un conjunto de datos aislado.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"` // bcrypt hash
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}
