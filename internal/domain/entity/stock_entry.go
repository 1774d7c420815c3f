package entity

import "time"

// DefaultAlertThreshold es el umbral de alerta asignado cuando una entrada de
// stock se crea de forma perezosa en la primera operación.
const DefaultAlertThreshold = 10

// StockEntry representa la cantidad disponible de un producto en un almacén.
// Única por par (producto, almacén); la cantidad nunca puede ser negativa.
type StockEntry struct {
	ProductID         string
	WarehouseID       string
	QuantityAvailable int
	AlertThreshold    int
	LastUpdated       time.Time
}

// IsAlertLevel indica si el stock está en o por debajo del umbral de alerta.
func (s *StockEntry) IsAlertLevel() bool {
	return s.QuantityAvailable <= s.AlertThreshold
}

// IsCritical indica si el stock está en o por debajo de la mitad del umbral
// (división entera, igual que la consulta SQL que lista los críticos).
func (s *StockEntry) IsCritical() bool {
	return s.QuantityAvailable <= s.AlertThreshold/2
}
