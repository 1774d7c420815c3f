package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, quantity_available, alert_threshold, last_updated`

// Get obtiene la entrada de stock de un par (producto, almacén); nil si no existe.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get stock")
}

// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE); nil si no existe.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, warehouseID), "get stock for update")
}

// Upsert inserta o actualiza la entrada del par (producto, almacén).
func (r *StockRepo) Upsert(entry *entity.StockEntry) error {
	query := `
		INSERT INTO stock_entries (product_id, warehouse_id, quantity_available, alert_threshold, last_updated)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity_available = EXCLUDED.quantity_available,
		              alert_threshold = EXCLUDED.alert_threshold,
		              last_updated = now()`
	_, err := r.q.Exec(context.Background(), query,
		entry.ProductID, entry.WarehouseID, entry.QuantityAvailable, entry.AlertThreshold)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista las entradas de un almacén con paginación.
func (r *StockRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries WHERE warehouse_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	return r.list(query, "list stock", warehouseID, limit, offset)
}

// ListAtAlert entradas en o por debajo del umbral de alerta.
func (r *StockRepo) ListAtAlert(warehouseID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries
		WHERE warehouse_id = $1 AND quantity_available <= alert_threshold
		ORDER BY quantity_available ASC`
	return r.list(query, "list stock at alert", warehouseID)
}

// ListCritical entradas en o por debajo de la mitad del umbral (división entera,
// igual que entity.StockEntry.IsCritical).
func (r *StockRepo) ListCritical(warehouseID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries
		WHERE warehouse_id = $1 AND quantity_available <= alert_threshold / 2
		ORDER BY quantity_available ASC`
	return r.list(query, "list stock critical", warehouseID)
}

// ListOutOfStock entradas con cantidad cero.
func (r *StockRepo) ListOutOfStock(warehouseID string) ([]*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_entries
		WHERE warehouse_id = $1 AND quantity_available = 0
		ORDER BY product_id`
	return r.list(query, "list stock out", warehouseID)
}

// TotalByProduct suma el stock de un producto en todos los almacenes.
func (r *StockRepo) TotalByProduct(productID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity_available), 0) FROM stock_entries WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total stock by product: %w", err)
	}
	return total, nil
}

func (r *StockRepo) scanOne(row pgx.Row, op string) (*entity.StockEntry, error) {
	var e entity.StockEntry
	err := row.Scan(&e.ProductID, &e.WarehouseID, &e.QuantityAvailable, &e.AlertThreshold, &e.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

func (r *StockRepo) list(query, op string, args ...any) ([]*entity.StockEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ProductID, &e.WarehouseID, &e.QuantityAvailable, &e.AlertThreshold, &e.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
