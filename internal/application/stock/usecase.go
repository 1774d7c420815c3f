package stock

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// UseCase orquesta el libro mayor de stock: consultas directas y mutaciones
// atómicas (vía TxRunner con bloqueo de fila). Toda operación exige que el
// llamador tenga acceso al almacén implicado.
type UseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewUseCase crea el caso de uso de stock.
func NewUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		now:           time.Now,
	}
}

// Get devuelve la entrada de stock de un par (producto, almacén).
func (uc *UseCase) Get(caller access.Identity, warehouseID, productID string) (*dto.StockResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	entry, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return toStockResponse(entry), nil
}

// Upsert fija directamente la cantidad de un par (producto, almacén), creando
// la entrada si no existe. Es la vía de corrección de inventario, no un
// movimiento: a diferencia de Add/Remove no valida la cantidad, el valor queda
// bajo responsabilidad del llamador.
func (uc *UseCase) Upsert(ctx context.Context, caller access.Identity, warehouseID, productID string, req dto.UpsertStockRequest) (*dto.StockResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	if req.AlertThreshold != nil && *req.AlertThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.SaleRepository) error {
		entry, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if entry == nil {
			entry, err = uc.newEntry(productID, warehouseID)
			if err != nil {
				return err
			}
		}
		entry.QuantityAvailable = req.Quantity
		if req.AlertThreshold != nil {
			entry.AlertThreshold = *req.AlertThreshold
		}
		entry.LastUpdated = uc.now()
		if err := stockRepo.Upsert(entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// Add incrementa el stock disponible. La entrada se crea con los valores por
// defecto si el par aún no tiene ninguna.
func (uc *UseCase) Add(ctx context.Context, caller access.Identity, warehouseID, productID string, quantity int) (*dto.StockResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var result *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.SaleRepository) error {
		entry, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if entry == nil {
			entry, err = uc.newEntry(productID, warehouseID)
			if err != nil {
				return err
			}
		}
		entry.QuantityAvailable += quantity
		entry.LastUpdated = uc.now()
		if err := stockRepo.Upsert(entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("product_id", productID).
		Str("warehouse_id", warehouseID).
		Int("added", quantity).
		Int("quantity", result.QuantityAvailable).
		Msg("stock incrementado")
	return toStockResponse(result), nil
}

// Remove descuenta stock disponible. A diferencia de Add, nunca crea la
// entrada: retirar de un par inexistente es ErrNotFound, y retirar más de lo
// disponible se rechaza sin modificar nada.
func (uc *UseCase) Remove(ctx context.Context, caller access.Identity, warehouseID, productID string, quantity int) (*dto.StockResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var result *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.SaleRepository) error {
		entry, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if entry.QuantityAvailable < quantity {
			return &domain.InsufficientStockError{
				Available: entry.QuantityAvailable,
				Requested: quantity,
			}
		}
		entry.QuantityAvailable -= quantity
		entry.LastUpdated = uc.now()
		if err := stockRepo.Upsert(entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.IsCritical() {
		log.Warn().
			Str("product_id", productID).
			Str("warehouse_id", warehouseID).
			Int("quantity", result.QuantityAvailable).
			Int("alert_threshold", result.AlertThreshold).
			Msg("stock en nivel crítico tras la salida")
	}
	return toStockResponse(result), nil
}

// SetAlertThreshold actualiza el umbral de alerta de una entrada existente.
func (uc *UseCase) SetAlertThreshold(ctx context.Context, caller access.Identity, warehouseID, productID string, threshold int) (*dto.StockResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.SaleRepository) error {
		entry, err := stockRepo.GetForUpdate(productID, warehouseID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		entry.AlertThreshold = threshold
		entry.LastUpdated = uc.now()
		if err := stockRepo.Upsert(entry); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStockResponse(result), nil
}

// ListByWarehouse lista las entradas de un almacén. El filtro admite
// "alert", "critical" y "out" (sin stock); vacío lista todo paginado.
func (uc *UseCase) ListByWarehouse(caller access.Identity, warehouseID, filter string, page dto.PageRequest) (*dto.StockListResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	page.DefaultPage()

	var (
		entries []*entity.StockEntry
		err     error
	)
	switch filter {
	case "":
		entries, err = uc.stockRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	case "alert":
		entries, err = uc.stockRepo.ListAtAlert(warehouseID)
	case "critical":
		entries, err = uc.stockRepo.ListCritical(warehouseID)
	case "out":
		entries, err = uc.stockRepo.ListOutOfStock(warehouseID)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toStockResponse(e))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// TotalAcrossWarehouses suma el stock de un producto en todos los almacenes.
// Solo admin: un manager no debe ver cantidades de almacenes ajenos.
func (uc *UseCase) TotalAcrossWarehouses(caller access.Identity, productID string) (*dto.StockTotalResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	total, err := uc.stockRepo.TotalByProduct(productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockTotalResponse{ProductID: productID, TotalQuantity: total}, nil
}

// newEntry valida que producto y almacén existan y construye la entrada con el
// umbral por defecto. Solo se llama dentro de una tx, antes del primer Upsert.
func (uc *UseCase) newEntry(productID, warehouseID string) (*entity.StockEntry, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return &entity.StockEntry{
		ProductID:      productID,
		WarehouseID:    warehouseID,
		AlertThreshold: entity.DefaultAlertThreshold,
	}, nil
}

func toStockResponse(e *entity.StockEntry) *dto.StockResponse {
	return &dto.StockResponse{
		ProductID:         e.ProductID,
		WarehouseID:       e.WarehouseID,
		QuantityAvailable: e.QuantityAvailable,
		AlertThreshold:    e.AlertThreshold,
		IsAlertLevel:      e.IsAlertLevel(),
		IsCritical:        e.IsCritical(),
		LastUpdated:       e.LastUpdated,
	}
}
