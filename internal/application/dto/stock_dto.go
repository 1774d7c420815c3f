package dto

import "time"

// UpsertStockRequest entrada para fijar directamente el stock de un par
// (producto, almacén). AlertThreshold es opcional: nil conserva el existente
// (o el valor por defecto al crear).
type UpsertStockRequest struct {
	Quantity       int  `json:"quantity"`
	AlertThreshold *int `json:"alert_threshold" validate:"omitempty,min=0"`
}

// AdjustStockRequest entrada para add/remove de stock.
type AdjustStockRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// SetThresholdRequest entrada para actualizar el umbral de alerta.
type SetThresholdRequest struct {
	AlertThreshold int `json:"alert_threshold" validate:"min=0"`
}

// StockResponse salida de una entrada de stock con sus predicados derivados.
type StockResponse struct {
	ProductID         string    `json:"product_id"`
	WarehouseID       string    `json:"warehouse_id"`
	QuantityAvailable int       `json:"quantity_available"`
	AlertThreshold    int       `json:"alert_threshold"`
	IsAlertLevel      bool      `json:"is_alert_level"`
	IsCritical        bool      `json:"is_critical"`
	LastUpdated       time.Time `json:"last_updated"`
}

// StockListResponse lista de entradas de stock de un almacén.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// StockTotalResponse total de un producto sumado en todos los almacenes.
type StockTotalResponse struct {
	ProductID     string `json:"product_id"`
	TotalQuantity int    `json:"total_quantity"`
}
