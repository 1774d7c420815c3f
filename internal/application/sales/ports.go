package sales

import (
	"context"

	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD. Registrar una
// venta descuenta stock y escribe el historial en la misma tx: o ambas cosas
// ocurren, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
