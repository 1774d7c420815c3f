package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida válidas para Product.
const (
	UnitPiece = "unite"
	UnitKg    = "kg"
	UnitLiter = "litre"
)

// Product representa un producto del catálogo. El stock por almacén vive en
// StockEntry. PurchasePrice y Margin son datos sensibles: se cifran en reposo
// dentro del adaptador de persistencia, el dominio solo ve los valores planos.
type Product struct {
	ID            string
	Name          string
	Description   string
	Category      string
	SalePrice     decimal.Decimal
	PurchasePrice *decimal.Decimal // nil si no se ha definido
	Margin        *decimal.Decimal // nil si no se ha definido
	Weight        float64
	Unit          string // unite, kg, litre
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
