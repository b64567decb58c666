package entity

import "time"

// User representa un usuario de la caja. El nombre es único.
type User struct {
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsAdmin      bool
	CreatedAt    time.Time
}
