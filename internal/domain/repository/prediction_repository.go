package repository

import (
	"time"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

// PredictionRepository define el puerto de persistencia de las previsiones
// (historial append-only; nunca se actualizan filas existentes).
type PredictionRepository interface {
	Create(prediction *entity.Prediction) error
	// GetLatest devuelve la previsión más reciente del par (orden:
	// prediction_date desc, created_at desc) o nil si no hay ninguna.
	GetLatest(productID, warehouseID string) (*entity.Prediction, error)
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Prediction, error)
	// ListHighRisk previsiones ELEVE/CRITIQUE de un almacén, riesgo desc y
	// luego fecha desc.
	ListHighRisk(warehouseID string) ([]*entity.Prediction, error)
	// ListAllHighRisk igual que ListHighRisk pero sobre todos los almacenes (admin).
	ListAllHighRisk() ([]*entity.Prediction, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
