package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con
// pool o tx). El precio de compra y el margen se cifran en reposo: las columnas
// purchase_price_enc y margin_enc guardan AES-GCM en base64, nunca el valor plano.
type ProductRepo struct {
	q      Querier
	cipher *FieldCipher
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, cipher *FieldCipher) *ProductRepo {
	return &ProductRepo{q: q, cipher: cipher}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	purchaseEnc, err := r.encryptDecimal(product.PurchasePrice)
	if err != nil {
		return err
	}
	marginEnc, err := r.encryptDecimal(product.Margin)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (id, name, description, category, sale_price, purchase_price_enc, margin_enc, weight, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category, product.SalePrice,
		purchaseEnc, marginEnc, product.Weight, product.Unit, product.Active,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, category, sale_price, purchase_price_enc, margin_enc, weight, unit, active, created_at, updated_at
		FROM products WHERE id = $1`
	p, err := r.scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	purchaseEnc, err := r.encryptDecimal(product.PurchasePrice)
	if err != nil {
		return err
	}
	marginEnc, err := r.encryptDecimal(product.Margin)
	if err != nil {
		return err
	}
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, sale_price = $5,
		    purchase_price_enc = $6, margin_enc = $7, weight = $8, unit = $9,
		    active = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Category, product.SalePrice,
		purchaseEnc, marginEnc, product.Weight, product.Unit, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista el catálogo con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, category, sale_price, purchase_price_enc, margin_enc, weight, unit, active, created_at, updated_at
		FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListIDsWithStock IDs de productos con entrada de stock en el almacén (para el
// modo batch del motor de previsión).
func (r *ProductRepo) ListIDsWithStock(warehouseID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id FROM stock_entries WHERE warehouse_id = $1 ORDER BY product_id`,
		warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list products with stock: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var purchaseEnc, marginEnc *string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SalePrice,
		&purchaseEnc, &marginEnc, &p.Weight, &p.Unit, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.PurchasePrice, err = r.decryptDecimal(purchaseEnc); err != nil {
		return nil, err
	}
	if p.Margin, err = r.decryptDecimal(marginEnc); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) encryptDecimal(d *decimal.Decimal) (*string, error) {
	if d == nil {
		return nil, nil
	}
	enc, err := r.cipher.Encrypt(d.String())
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

func (r *ProductRepo) decryptDecimal(enc *string) (*decimal.Decimal, error) {
	if enc == nil {
		return nil, nil
	}
	plain, err := r.cipher.Decrypt(*enc)
	if err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(plain)
	if err != nil {
		return nil, fmt.Errorf("parse decrypted decimal: %w", err)
	}
	return &d, nil
}
