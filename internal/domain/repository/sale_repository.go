package repository

import (
	"time"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

// TopSellingResult fila del ranking de productos más vendidos de un almacén.
type TopSellingResult struct {
	ProductID   string
	ProductName string
	TotalSold   int
}

// MonthlySalesResult total vendido por (año, mes) para un par producto/almacén.
type MonthlySalesResult struct {
	Year      int
	Month     int
	TotalSold int
}

// WeekdaySalesResult total vendido por día de la semana para un par
// producto/almacén.
type WeekdaySalesResult struct {
	DayOfWeek string
	TotalSold int
}

// SaleRepository define el puerto de persistencia del historial de ventas
// (append-only) y de los agregados que consume el motor de previsión.
type SaleRepository interface {
	Create(record *entity.SaleRecord) error
	ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.SaleRecord, error)
	// TotalQuantitySold suma quantity_sold en [start, end] inclusive; 0 si no hay filas.
	TotalQuantitySold(productID, warehouseID string, start, end time.Time) (int, error)
	// AverageDailySales media de quantity_sold con sale_date >= since; 0.0 si no hay filas.
	AverageDailySales(productID, warehouseID string, since time.Time) (float64, error)
	// CountRecords número de ventas con sale_date >= since.
	CountRecords(productID, warehouseID string, since time.Time) (int, error)
	TopSellingProducts(warehouseID string, since time.Time, limit int) ([]TopSellingResult, error)
	MonthlySales(productID, warehouseID string) ([]MonthlySalesResult, error)
	SalesByDayOfWeek(productID, warehouseID string) ([]WeekdaySalesResult, error)
}
