package repository

import "github.com/kdiallo/stockpilot-api/internal/domain/entity"

// StockRepository define el puerto de persistencia para las entradas de stock.
// Get y GetForUpdate devuelven (nil, nil) si el par (producto, almacén) no
// tiene entrada; la creación perezosa la decide el caso de uso.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.StockEntry, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(productID, warehouseID string) (*entity.StockEntry, error)
	Upsert(entry *entity.StockEntry) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockEntry, error)
	ListAtAlert(warehouseID string) ([]*entity.StockEntry, error)
	ListCritical(warehouseID string) ([]*entity.StockEntry, error)
	ListOutOfStock(warehouseID string) ([]*entity.StockEntry, error)
	TotalByProduct(productID string) (int, error)
}
