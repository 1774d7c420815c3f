package dto

import "time"

// PredictionResponse salida de una previsión, enriquecida con el estado de
// stock ACTUAL (calculado al leer, nunca almacenado con la previsión: una
// previsión histórica muestra el stock de hoy, no el del momento del cálculo).
type PredictionResponse struct {
	ID                    string    `json:"id"`
	ProductID             string    `json:"product_id"`
	WarehouseID           string    `json:"warehouse_id"`
	PredictionDate        string    `json:"prediction_date"` // 2006-01-02
	PredictedQty30Days    int       `json:"predicted_qty_30_days"`
	ConfidenceLevel       float64   `json:"confidence_level"`
	Recommendation        string    `json:"recommendation"`
	RecommendedReorderQty *int      `json:"recommended_reorder_qty,omitempty"`
	RiskLevel             string    `json:"risk_level"`
	CreatedAt             time.Time `json:"created_at"`

	// Snapshot fresco del stock (enriquecimiento de lectura).
	CurrentStock   int `json:"current_stock"`
	AlertThreshold int `json:"alert_threshold"`
}

// PredictionListResponse lista de previsiones.
type PredictionListResponse struct {
	Items []PredictionResponse `json:"items"`
	Total int                  `json:"total"`
}

// BatchForecastResponse resultado del modo batch por almacén: previsiones
// generadas más los productos que fallaron (aislamiento por ítem).
type BatchForecastResponse struct {
	Items   []PredictionResponse `json:"items"`
	Total   int                  `json:"total"`
	Skipped []BatchSkipped       `json:"skipped,omitempty"`
}

// BatchSkipped producto omitido en un batch y el motivo.
type BatchSkipped struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// PurgeResponse número de previsiones eliminadas por una purga.
type PurgeResponse struct {
	Deleted int64 `json:"deleted"`
}
