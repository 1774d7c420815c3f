package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

func TestCanAccess_Matriz(t *testing.T) {
	admin := access.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	manager := access.Identity{UserID: "u-mgr", Role: entity.RoleManager, WarehouseID: "w-1"}
	orphan := access.Identity{UserID: "u-orphan", Role: entity.RoleManager} // sin almacén asignado

	cases := []struct {
		name        string
		id          access.Identity
		warehouseID string
		want        bool
	}{
		{"admin accede a cualquier almacén", admin, "w-99", true},
		{"manager accede a su almacén", manager, "w-1", true},
		{"manager bloqueado en otro almacén", manager, "w-2", false},
		{"manager sin asignación no accede a nada", orphan, "w-1", false},
		{"manager sin asignación ni siquiera al almacén vacío", orphan, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.CanAccess(tc.id, tc.warehouseID))
		})
	}
}

func TestAuthorize_ErrorConContexto(t *testing.T) {
	manager := access.Identity{UserID: "u-mgr", Role: entity.RoleManager, WarehouseID: "w-1"}

	err := access.Authorize(manager, "w-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	var denied *domain.AccessDeniedError
	require.True(t, errors.As(err, &denied), "el error debe ser AccessDeniedError")
	assert.Equal(t, "w-2", denied.WarehouseID, "el error debe llevar el almacén rechazado")
	assert.Equal(t, "u-mgr", denied.UserID, "el error debe llevar el usuario rechazado")
	assert.Contains(t, err.Error(), "w-2")
	assert.Contains(t, err.Error(), "u-mgr")
}

func TestAuthorize_AdminNuncaFalla(t *testing.T) {
	admin := access.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
	assert.NoError(t, access.Authorize(admin, "w-1"))
	assert.NoError(t, access.Authorize(admin, ""))
}
