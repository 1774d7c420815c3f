package repository

import "github.com/kdiallo/stockpilot-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El cifrado de precio de compra y margen es responsabilidad del adaptador.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListIDsWithStock productos con entrada de stock en el almacén (para el
	// modo batch del motor de previsión).
	ListIDsWithStock(warehouseID string) ([]string, error)
	Delete(id string) error
}
