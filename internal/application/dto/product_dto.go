package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=150"`
	Description   string           `json:"description" validate:"max=500"`
	Category      string           `json:"category" validate:"max=100"`
	SalePrice     decimal.Decimal  `json:"sale_price" validate:"required"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Margin        *decimal.Decimal `json:"margin"`
	Weight        float64          `json:"weight" validate:"min=0"`
	Unit          string           `json:"unit" validate:"omitempty,oneof=unite kg litre"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=150"`
	Description   *string          `json:"description" validate:"omitempty,max=500"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Margin        *decimal.Decimal `json:"margin"`
	Weight        *float64         `json:"weight" validate:"omitempty,min=0"`
	Unit          *string          `json:"unit" validate:"omitempty,oneof=unite kg litre"`
	Active        *bool            `json:"active"`
}

// ProductResponse salida de un producto. Los campos sensibles (precio de
// compra, margen) solo se incluyen para admin.
type ProductResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	SalePrice     decimal.Decimal  `json:"sale_price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	Margin        *decimal.Decimal `json:"margin,omitempty"`
	Weight        float64          `json:"weight,omitempty"`
	Unit          string           `json:"unit"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
