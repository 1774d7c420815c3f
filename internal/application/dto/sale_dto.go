package dto

import "time"

// RecordSaleRequest entrada para registrar una venta. SaleDate opcional
// (formato 2006-01-02); vacío = hoy.
type RecordSaleRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required"`
	SaleDate  string `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	WarehouseID  string    `json:"warehouse_id"`
	SaleDate     string    `json:"sale_date"` // 2006-01-02
	QuantitySold int       `json:"quantity_sold"`
	DayOfWeek    string    `json:"day_of_week"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// TopSellingResponse fila del ranking de más vendidos.
type TopSellingResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   int    `json:"total_sold"`
}

// MonthlySalesResponse total vendido por (año, mes).
type MonthlySalesResponse struct {
	Year      int `json:"year"`
	Month     int `json:"month"`
	TotalSold int `json:"total_sold"`
}

// WeekdaySalesResponse total vendido por día de la semana.
type WeekdaySalesResponse struct {
	DayOfWeek string `json:"day_of_week"`
	TotalSold int    `json:"total_sold"`
}
