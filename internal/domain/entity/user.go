package entity

import "time"

// Roles de plataforma para User.
const (
	PlatformRoleAdmin   = "admin"
	PlatformRoleRegular = "regular"
)

// User representa un usuario de la plataforma. Puede ser miembro de varias
// tiendas con un rol distinto en cada una (ver StoreMember).
type User struct {
	ID           string
	Username     string // único en la plataforma
	Email        string // único en la plataforma
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	PlatformRole string // admin, regular
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
