package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLoginAlreadyExists = errors.New("el login ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("la cantidad debe ser positiva")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrAccessDenied       = errors.New("acceso denegado al almacén")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrExternalService    = errors.New("servicio externo no disponible")
)

// InsufficientStockError lleva las cantidades disponible y solicitada para que
// el mensaje las incluya al rechazar una salida. errors.Is(err, ErrInsufficientStock)
// sigue funcionando vía Unwrap.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// AccessDeniedError identifica el almacén y el usuario rechazados.
type AccessDeniedError struct {
	WarehouseID string
	UserID      string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("acceso denegado al almacén %s para el usuario %s", e.WarehouseID, e.UserID)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }
