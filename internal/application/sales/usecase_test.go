package sales_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/application/sales"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del registro de ventas: atomicidad venta + descuento de stock, derivados
// de fecha y autorización por almacén.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "11111111-1111-1111-1111-111111111111"
	testWarehouseID = "22222222-2222-2222-2222-222222222222"
)

var adminCaller = access.Identity{UserID: "admin-1", Role: entity.RoleAdmin}

func TestRecordSale_DescuentaStockYEscribeHistorial(t *testing.T) {
	env := newEnv(20)

	resp, err := env.uc.RecordSale(context.Background(), adminCaller, testWarehouseID,
		dto.RecordSaleRequest{ProductID: testProductID, Quantity: 8, SaleDate: "2026-08-15"})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.QuantitySold)
	assert.Equal(t, "2026-08-15", resp.SaleDate)
	assert.Equal(t, "Saturday", resp.DayOfWeek, "el 15 de agosto de 2026 es sábado")
	assert.Equal(t, 8, resp.Month)
	assert.Equal(t, 2026, resp.Year)

	entry, _ := env.stockRepo.Get(testProductID, testWarehouseID)
	assert.Equal(t, 12, entry.QuantityAvailable, "la venta debe descontar el stock")
	assert.Len(t, env.saleRepo.records, 1)
}

func TestRecordSale_StockInsuficienteNoEscribeNada(t *testing.T) {
	env := newEnv(5)

	_, err := env.uc.RecordSale(context.Background(), adminCaller, testWarehouseID,
		dto.RecordSaleRequest{ProductID: testProductID, Quantity: 8})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, 5, insErr.Available)
	assert.Equal(t, 8, insErr.Requested)

	entry, _ := env.stockRepo.Get(testProductID, testWarehouseID)
	assert.Equal(t, 5, entry.QuantityAvailable, "una venta rechazada no debe tocar el stock")
	assert.Empty(t, env.saleRepo.records, "una venta rechazada no deja rastro en el historial")
}

func TestRecordSale_SinEntradaDeStock(t *testing.T) {
	env := newEnv(-1) // sin entrada

	_, err := env.uc.RecordSale(context.Background(), adminCaller, testWarehouseID,
		dto.RecordSaleRequest{ProductID: testProductID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.saleRepo.records)
}

func TestRecordSale_CantidadNoPositiva(t *testing.T) {
	env := newEnv(20)

	for _, qty := range []int{0, -2} {
		_, err := env.uc.RecordSale(context.Background(), adminCaller, testWarehouseID,
			dto.RecordSaleRequest{ProductID: testProductID, Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", qty)
	}
}

func TestRecordSale_FechaInvalida(t *testing.T) {
	env := newEnv(20)

	_, err := env.uc.RecordSale(context.Background(), adminCaller, testWarehouseID,
		dto.RecordSaleRequest{ProductID: testProductID, Quantity: 1, SaleDate: "15/08/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_FechaVaciaEsHoy(t *testing.T) {
	env := newEnv(20)

	resp, err := env.uc.RecordSale(context.Background(), adminCaller, testWarehouseID,
		dto.RecordSaleRequest{ProductID: testProductID, Quantity: 1})
	require.NoError(t, err)

	today := time.Now().UTC().Format("2006-01-02")
	assert.Equal(t, today, resp.SaleDate)
}

func TestRecordSale_ManagerAlmacenAjeno(t *testing.T) {
	env := newEnv(20)
	manager := access.Identity{UserID: "manager-1", Role: entity.RoleManager, WarehouseID: "otro-almacen"}

	_, err := env.uc.RecordSale(context.Background(), manager, testWarehouseID,
		dto.RecordSaleRequest{ProductID: testProductID, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestList_OrdenReciente(t *testing.T) {
	env := newEnv(100)
	ctx := context.Background()

	for _, d := range []string{"2026-08-01", "2026-08-10", "2026-08-05"} {
		_, err := env.uc.RecordSale(ctx, adminCaller, testWarehouseID,
			dto.RecordSaleRequest{ProductID: testProductID, Quantity: 2, SaleDate: d})
		require.NoError(t, err)
	}

	resp, err := env.uc.List(adminCaller, testWarehouseID, testProductID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "2026-08-10", resp.Items[0].SaleDate, "el historial se lista de reciente a antiguo")
	assert.Equal(t, "2026-08-01", resp.Items[2].SaleDate)
}

// ── fakes en memoria ──────────────────────────────────────────────────────────

type env struct {
	uc        *sales.UseCase
	stockRepo *memStockRepo
	saleRepo  *memSaleRepo
}

// newEnv arma el caso de uso con una entrada de stock inicial; initialQty < 0
// significa que el par no tiene entrada.
func newEnv(initialQty int) *env {
	stockRepo := &memStockRepo{entries: make(map[string]*entity.StockEntry)}
	if initialQty >= 0 {
		stockRepo.entries[testProductID+"|"+testWarehouseID] = &entity.StockEntry{
			ProductID:         testProductID,
			WarehouseID:       testWarehouseID,
			QuantityAvailable: initialQty,
			AlertThreshold:    entity.DefaultAlertThreshold,
		}
	}
	saleRepo := &memSaleRepo{}
	uc := sales.NewUseCase(&memTxRunner{stockRepo: stockRepo, saleRepo: saleRepo}, saleRepo)
	return &env{uc: uc, stockRepo: stockRepo, saleRepo: saleRepo}
}

type memTxRunner struct {
	stockRepo *memStockRepo
	saleRepo  *memSaleRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.StockRepository, repository.SaleRepository) error) error {
	// Simula rollback: las escrituras se aplican sobre copias y solo se
	// confirman si fn termina sin error.
	stockSnapshot := r.stockRepo.snapshot()
	saleSnapshot := len(r.saleRepo.records)
	if err := fn(r.stockRepo, r.saleRepo); err != nil {
		r.stockRepo.entries = stockSnapshot
		r.saleRepo.records = r.saleRepo.records[:saleSnapshot]
		return err
	}
	return nil
}

type memStockRepo struct {
	entries map[string]*entity.StockEntry
}

func (r *memStockRepo) snapshot() map[string]*entity.StockEntry {
	cp := make(map[string]*entity.StockEntry, len(r.entries))
	for k, v := range r.entries {
		e := *v
		cp[k] = &e
	}
	return cp
}

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.StockEntry, error) {
	e, ok := r.entries[productID+"|"+warehouseID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockEntry, error) {
	return r.Get(productID, warehouseID)
}

func (r *memStockRepo) Upsert(entry *entity.StockEntry) error {
	cp := *entry
	r.entries[entry.ProductID+"|"+entry.WarehouseID] = &cp
	return nil
}

func (r *memStockRepo) ListByWarehouse(string, int, int) ([]*entity.StockEntry, error) {
	return nil, errors.New("no implementado")
}
func (r *memStockRepo) ListAtAlert(string) ([]*entity.StockEntry, error) {
	return nil, errors.New("no implementado")
}
func (r *memStockRepo) ListCritical(string) ([]*entity.StockEntry, error) {
	return nil, errors.New("no implementado")
}
func (r *memStockRepo) ListOutOfStock(string) ([]*entity.StockEntry, error) {
	return nil, errors.New("no implementado")
}
func (r *memStockRepo) TotalByProduct(string) (int, error) {
	return 0, errors.New("no implementado")
}

type memSaleRepo struct {
	records []*entity.SaleRecord
}

func (r *memSaleRepo) Create(record *entity.SaleRecord) error {
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

func (r *memSaleRepo) ListByProductAndWarehouse(productID, warehouseID string, limit, offset int) ([]*entity.SaleRecord, error) {
	var out []*entity.SaleRecord
	for _, s := range r.records {
		if s.ProductID == productID && s.WarehouseID == warehouseID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSaleRepo) TotalQuantitySold(productID, warehouseID string, start, end time.Time) (int, error) {
	total := 0
	for _, s := range r.records {
		if s.ProductID == productID && s.WarehouseID == warehouseID &&
			!s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			total += s.QuantitySold
		}
	}
	return total, nil
}

func (r *memSaleRepo) AverageDailySales(productID, warehouseID string, since time.Time) (float64, error) {
	sum, n := 0, 0
	for _, s := range r.records {
		if s.ProductID == productID && s.WarehouseID == warehouseID && !s.SaleDate.Before(since) {
			sum += s.QuantitySold
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (r *memSaleRepo) CountRecords(productID, warehouseID string, since time.Time) (int, error) {
	n := 0
	for _, s := range r.records {
		if s.ProductID == productID && s.WarehouseID == warehouseID && !s.SaleDate.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *memSaleRepo) TopSellingProducts(string, time.Time, int) ([]repository.TopSellingResult, error) {
	return nil, errors.New("no implementado")
}

func (r *memSaleRepo) MonthlySales(string, string) ([]repository.MonthlySalesResult, error) {
	return nil, errors.New("no implementado")
}

func (r *memSaleRepo) SalesByDayOfWeek(string, string) ([]repository.WeekdaySalesResult, error) {
	return nil, errors.New("no implementado")
}

var _ repository.SaleRepository = (*memSaleRepo)(nil)
