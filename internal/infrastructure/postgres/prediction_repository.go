package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

var _ repository.PredictionRepository = (*PredictionRepo)(nil)

// PredictionRepo implementación de PredictionRepository sobre PostgreSQL
// (usable con pool o tx). Las previsiones nunca se actualizan: cada cálculo es
// una fila nueva.
type PredictionRepo struct {
	q Querier
}

// NewPredictionRepository construye el adaptador de previsiones. Pasar pool o tx (Querier).
func NewPredictionRepository(q Querier) *PredictionRepo {
	return &PredictionRepo{q: q}
}

const predictionColumns = `id, product_id, warehouse_id, prediction_date, predicted_qty_30_days,
		confidence_level, recommendation, recommended_reorder_qty, risk_level, created_at`

// Create persiste una previsión nueva.
func (r *PredictionRepo) Create(p *entity.Prediction) error {
	query := `
		INSERT INTO predictions (` + predictionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ProductID, p.WarehouseID, p.PredictionDate, p.PredictedQty30Days,
		p.ConfidenceLevel, p.Recommendation, p.RecommendedReorderQty, string(p.RiskLevel), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create prediction: %w", err)
	}
	return nil
}

// GetLatest devuelve la previsión más reciente del par; created_at desempata
// entre previsiones del mismo día. nil si no hay ninguna.
func (r *PredictionRepo) GetLatest(productID, warehouseID string) (*entity.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY prediction_date DESC, created_at DESC
		LIMIT 1`
	var p entity.Prediction
	var risk string
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&p.ID, &p.ProductID, &p.WarehouseID, &p.PredictionDate, &p.PredictedQty30Days,
		&p.ConfidenceLevel, &p.Recommendation, &p.RecommendedReorderQty, &risk, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest prediction: %w", err)
	}
	p.RiskLevel = entity.RiskLevel(risk)
	return &p, nil
}

// ListByWarehouse lista el historial de previsiones de un almacén.
func (r *PredictionRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE warehouse_id = $1
		ORDER BY prediction_date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	return r.list(query, "list predictions", warehouseID, limit, offset)
}

// ListHighRisk previsiones ELEVE/CRITIQUE de un almacén, las más severas primero.
func (r *PredictionRepo) ListHighRisk(warehouseID string) ([]*entity.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE warehouse_id = $1 AND risk_level IN ('ELEVE', 'CRITIQUE')
		ORDER BY CASE risk_level WHEN 'CRITIQUE' THEN 0 ELSE 1 END,
		         prediction_date DESC, created_at DESC`
	return r.list(query, "list high risk predictions", warehouseID)
}

// ListAllHighRisk igual que ListHighRisk pero sobre todos los almacenes.
func (r *PredictionRepo) ListAllHighRisk() ([]*entity.Prediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE risk_level IN ('ELEVE', 'CRITIQUE')
		ORDER BY CASE risk_level WHEN 'CRITIQUE' THEN 0 ELSE 1 END,
		         prediction_date DESC, created_at DESC`
	return r.list(query, "list all high risk predictions")
}

// DeleteOlderThan borra previsiones con fecha anterior al corte.
func (r *PredictionRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM predictions WHERE prediction_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old predictions: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *PredictionRepo) list(query, op string, args ...any) ([]*entity.Prediction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Prediction
	for rows.Next() {
		var p entity.Prediction
		var risk string
		if err := rows.Scan(&p.ID, &p.ProductID, &p.WarehouseID, &p.PredictionDate, &p.PredictedQty30Days,
			&p.ConfidenceLevel, &p.Recommendation, &p.RecommendedReorderQty, &risk, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		p.RiskLevel = entity.RiskLevel(risk)
		list = append(list, &p)
	}
	return list, rows.Err()
}
