package entity

import "time"

// SaleRecord representa una venta registrada. Inmutable una vez creada
// (historial append-only). DayOfWeek, Month y Year se derivan de SaleDate al
// escribir para soportar las agrupaciones del motor de previsión.
type SaleRecord struct {
	ID           string
	ProductID    string
	WarehouseID  string
	SaleDate     time.Time // solo fecha (hora a cero)
	QuantitySold int       // siempre >= 1
	DayOfWeek    string
	Month        int
	Year         int
	CreatedAt    time.Time
}

// ComputeDateFields rellena los campos derivados a partir de SaleDate.
func (s *SaleRecord) ComputeDateFields() {
	s.DayOfWeek = s.SaleDate.Weekday().String()
	s.Month = int(s.SaleDate.Month())
	s.Year = s.SaleDate.Year()
}
