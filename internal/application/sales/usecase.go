package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

const saleDateLayout = "2006-01-02"

// UseCase orquesta el historial de ventas. Una venta y el descuento de stock
// que implica van juntos en la misma transacción.
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewUseCase crea el caso de uso de ventas.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		now:      time.Now,
	}
}

// RecordSale registra una venta y descuenta el stock del par (producto,
// almacén) de forma atómica. Si el stock disponible no alcanza, no se escribe
// nada. La fecha de venta es opcional; vacía significa hoy.
func (uc *UseCase) RecordSale(ctx context.Context, caller access.Identity, warehouseID string, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	saleDate, err := uc.resolveSaleDate(req.SaleDate)
	if err != nil {
		return nil, err
	}

	record := &entity.SaleRecord{
		ID:           uuid.New().String(),
		ProductID:    req.ProductID,
		WarehouseID:  warehouseID,
		SaleDate:     saleDate,
		QuantitySold: req.Quantity,
		CreatedAt:    uc.now(),
	}
	record.ComputeDateFields()

	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, saleRepo repository.SaleRepository) error {
		entry, err := stockRepo.GetForUpdate(req.ProductID, warehouseID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.QuantityAvailable < req.Quantity {
			return &domain.InsufficientStockError{
				Available: entry.QuantityAvailable,
				Requested: req.Quantity,
			}
		}
		entry.QuantityAvailable -= req.Quantity
		entry.LastUpdated = uc.now()
		if err := stockRepo.Upsert(entry); err != nil {
			return err
		}
		return saleRepo.Create(record)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("sale_id", record.ID).
		Str("product_id", record.ProductID).
		Str("warehouse_id", record.WarehouseID).
		Int("quantity", record.QuantitySold).
		Msg("venta registrada")
	return toSaleResponse(record), nil
}

// List devuelve el historial de ventas de un par (producto, almacén), de la
// más reciente a la más antigua.
func (uc *UseCase) List(caller access.Identity, warehouseID, productID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	page.DefaultPage()

	records, err := uc.saleRepo.ListByProductAndWarehouse(productID, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SaleResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *toSaleResponse(r))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// TopSelling devuelve los productos más vendidos de un almacén desde una fecha.
func (uc *UseCase) TopSelling(caller access.Identity, warehouseID string, since time.Time, limit int) ([]dto.TopSellingResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := uc.saleRepo.TopSellingProducts(warehouseID, since, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopSellingResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSellingResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			TotalSold:   r.TotalSold,
		})
	}
	return out, nil
}

// MonthlySales devuelve los totales por (año, mes) de un par (producto, almacén).
func (uc *UseCase) MonthlySales(caller access.Identity, warehouseID, productID string) ([]dto.MonthlySalesResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}

	rows, err := uc.saleRepo.MonthlySales(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlySalesResponse{
			Year:      r.Year,
			Month:     r.Month,
			TotalSold: r.TotalSold,
		})
	}
	return out, nil
}

// WeekdaySales devuelve los totales por día de la semana de un par (producto,
// almacén), de mayor a menor.
func (uc *UseCase) WeekdaySales(caller access.Identity, warehouseID, productID string) ([]dto.WeekdaySalesResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}

	rows, err := uc.saleRepo.SalesByDayOfWeek(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WeekdaySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.WeekdaySalesResponse{
			DayOfWeek: r.DayOfWeek,
			TotalSold: r.TotalSold,
		})
	}
	return out, nil
}

// resolveSaleDate interpreta la fecha de venta (vacía = hoy) y la normaliza a
// medianoche UTC.
func (uc *UseCase) resolveSaleDate(raw string) (time.Time, error) {
	if raw == "" {
		now := uc.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(saleDateLayout, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return d, nil
}

func toSaleResponse(r *entity.SaleRecord) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		WarehouseID:  r.WarehouseID,
		SaleDate:     r.SaleDate.Format(saleDateLayout),
		QuantitySold: r.QuantitySold,
		DayOfWeek:    r.DayOfWeek,
		Month:        r.Month,
		Year:         r.Year,
		CreatedAt:    r.CreatedAt,
	}
}
