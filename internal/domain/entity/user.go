package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"   // acceso global a todos los almacenes
	RoleManager = "manager" // acceso solo a su almacén asignado
)

// User representa un usuario del sistema. Un manager tiene exactamente un
// almacén asignado; un admin no tiene asignación (WarehouseID vacío).
type User struct {
	ID           string
	Login        string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // admin, manager
	WarehouseID  string // almacén asignado (vacío para admin)
	Active       bool
	CreatedAt    time.Time
	LastLogin    *time.Time
}
