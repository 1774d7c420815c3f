package entity

import "time"

// Warehouse representa un almacén físico; es la unidad de alcance de acceso
// para los usuarios gestores.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	City      string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
