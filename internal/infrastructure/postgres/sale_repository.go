package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
// El historial es append-only: no hay Update ni Delete.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta.
func (r *SaleRepo) Create(record *entity.SaleRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `
		INSERT INTO sale_records (id, product_id, warehouse_id, sale_date, quantity_sold, day_of_week, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.WarehouseID, record.SaleDate,
		record.QuantitySold, record.DayOfWeek, record.Month, record.Year, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale record: %w", err)
	}
	return nil
}

// ListByProductAndWarehouse lista el historial del par, de reciente a antiguo.
func (r *SaleRepo) ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.SaleRecord, error) {
	query := `
		SELECT id, product_id, warehouse_id, sale_date, quantity_sold, day_of_week, month, year, created_at
		FROM sale_records
		WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY sale_date DESC, created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleRecord
	for rows.Next() {
		var s entity.SaleRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.SaleDate,
			&s.QuantitySold, &s.DayOfWeek, &s.Month, &s.Year, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// TotalQuantitySold suma quantity_sold en [start, end] inclusive; 0 si no hay filas.
func (r *SaleRepo) TotalQuantitySold(productID, warehouseID string, start, end time.Time) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantity_sold), 0)
		FROM sale_records
		WHERE product_id = $1 AND warehouse_id = $2 AND sale_date BETWEEN $3 AND $4`,
		productID, warehouseID, start, end,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total quantity sold: %w", err)
	}
	return total, nil
}

// AverageDailySales media de quantity_sold por registro desde la fecha; 0.0 si no hay filas.
func (r *SaleRepo) AverageDailySales(productID, warehouseID string, since time.Time) (float64, error) {
	var avg float64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(AVG(quantity_sold), 0)
		FROM sale_records
		WHERE product_id = $1 AND warehouse_id = $2 AND sale_date >= $3`,
		productID, warehouseID, since,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average daily sales: %w", err)
	}
	return avg, nil
}

// CountRecords número de ventas del par desde la fecha.
func (r *SaleRepo) CountRecords(productID, warehouseID string, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `
		SELECT COUNT(*)
		FROM sale_records
		WHERE product_id = $1 AND warehouse_id = $2 AND sale_date >= $3`,
		productID, warehouseID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sale records: %w", err)
	}
	return count, nil
}

// TopSellingProducts ranking de productos más vendidos del almacén desde la fecha.
func (r *SaleRepo) TopSellingProducts(warehouseID string, since time.Time, limit int) ([]repository.TopSellingResult, error) {
	query := `
		SELECT s.product_id, p.name, SUM(s.quantity_sold) AS total_sold
		FROM sale_records s
		JOIN products p ON p.id = s.product_id
		WHERE s.warehouse_id = $1 AND s.sale_date >= $2
		GROUP BY s.product_id, p.name
		ORDER BY total_sold DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top selling products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopSellingResult
	for rows.Next() {
		var t repository.TopSellingResult
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.TotalSold); err != nil {
			return nil, fmt.Errorf("scan top selling: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// MonthlySales totales por (año, mes) del par, de reciente a antiguo.
func (r *SaleRepo) MonthlySales(productID, warehouseID string) ([]repository.MonthlySalesResult, error) {
	query := `
		SELECT year, month, SUM(quantity_sold) AS total_sold
		FROM sale_records
		WHERE product_id = $1 AND warehouse_id = $2
		GROUP BY year, month
		ORDER BY year DESC, month DESC`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()
	var list []repository.MonthlySalesResult
	for rows.Next() {
		var m repository.MonthlySalesResult
		if err := rows.Scan(&m.Year, &m.Month, &m.TotalSold); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SalesByDayOfWeek totales por día de la semana del par, de mayor a menor.
func (r *SaleRepo) SalesByDayOfWeek(productID, warehouseID string) ([]repository.WeekdaySalesResult, error) {
	query := `
		SELECT day_of_week, SUM(quantity_sold) AS total_sold
		FROM sale_records
		WHERE product_id = $1 AND warehouse_id = $2
		GROUP BY day_of_week
		ORDER BY total_sold DESC`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("sales by day of week: %w", err)
	}
	defer rows.Close()
	var list []repository.WeekdaySalesResult
	for rows.Next() {
		var w repository.WeekdaySalesResult
		if err := rows.Scan(&w.DayOfWeek, &w.TotalSold); err != nil {
			return nil, fmt.Errorf("scan weekday sales: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
