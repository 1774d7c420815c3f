package access

import (
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

// Identity es la identidad resuelta del llamador (claims del JWT). Se pasa
// explícitamente a cada caso de uso en lugar de vivir en un contexto ambiente.
type Identity struct {
	UserID      string
	Role        string // admin | manager
	WarehouseID string // almacén asignado (vacío para admin)
}

// IsAdmin indica si el llamador tiene rol admin (alcance global).
func (id Identity) IsAdmin() bool {
	return id.Role == entity.RoleAdmin
}

// CanAccess decide si el llamador puede actuar sobre un almacén:
// admin siempre; manager solo sobre su almacén asignado.
func CanAccess(id Identity, warehouseID string) bool {
	if id.IsAdmin() {
		return true
	}
	return id.WarehouseID != "" && id.WarehouseID == warehouseID
}

// Authorize devuelve AccessDeniedError (con almacén y usuario) si CanAccess es falso.
func Authorize(id Identity, warehouseID string) error {
	if CanAccess(id, warehouseID) {
		return nil
	}
	return &domain.AccessDeniedError{WarehouseID: warehouseID, UserID: id.UserID}
}
