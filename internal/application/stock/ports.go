package stock

import (
	"context"

	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las mutaciones de stock sean
// lecturas-modificaciones-escrituras atómicas (con bloqueo de fila).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
