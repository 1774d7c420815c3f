package forecast_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/forecast"
	"github.com/kdiallo/stockpilot-api/internal/application/ports"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de previsión: cálculo completo con agregados conocidos,
// degradación suave del proveedor generativo y aislamiento por ítem del batch.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "11111111-1111-1111-1111-111111111111"
	otherProductID  = "44444444-4444-4444-4444-444444444444"
	testWarehouseID = "22222222-2222-2222-2222-222222222222"
)

var adminCaller = access.Identity{UserID: "admin-1", Role: entity.RoleAdmin}

func TestGenerate_CalculoCompleto(t *testing.T) {
	// Agregados conocidos: 250 vendidas en 30 días, media diaria 10.0 sobre 90
	// días, 40 registros. Demanda = ceil((10*0.7 + 250/30*0.3) * 30) = 285.
	env := newEnv(t)
	env.sales.sold30 = 250
	env.sales.avgDaily = 10.0
	env.sales.count = 40
	env.stocks.set(testProductID, testWarehouseID, 100, 20)

	resp, err := env.build(nil).Generate(context.Background(), adminCaller, testWarehouseID, testProductID)
	require.NoError(t, err)

	assert.Equal(t, 285, resp.PredictedQty30Days)
	assert.InDelta(t, 86.0, resp.ConfidenceLevel, 0.001, "40 registros -> 85 + 10*0.1")
	assert.Equal(t, string(entity.RiskEleve), resp.RiskLevel,
		"100 unidades / 285 previstas = 10.5 días de autonomía -> ELEVE")
	require.NotNil(t, resp.RecommendedReorderQty)
	assert.Equal(t, 205, *resp.RecommendedReorderQty, "285 + 20 - 100")
	assert.Equal(t, 100, resp.CurrentStock)
	assert.Equal(t, 20, resp.AlertThreshold)
	assert.NotEmpty(t, resp.Recommendation)
	assert.LessOrEqual(t, len([]rune(resp.Recommendation)), 500)

	require.Len(t, env.predictions.created, 1, "la previsión debe persistirse")
	assert.Equal(t, entity.RiskEleve, env.predictions.created[0].RiskLevel)
}

func TestGenerate_SinVentasNiStock(t *testing.T) {
	// Par sin entrada de stock y sin historial: demanda cero, confianza mínima,
	// riesgo CRITIQUE por stock cero, pedido = umbral por defecto.
	env := newEnv(t)

	resp, err := env.build(nil).Generate(context.Background(), adminCaller, testWarehouseID, testProductID)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.PredictedQty30Days)
	assert.InDelta(t, 30.0, resp.ConfidenceLevel, 0.001)
	assert.Equal(t, string(entity.RiskCritique), resp.RiskLevel)
	require.NotNil(t, resp.RecommendedReorderQty)
	assert.Equal(t, entity.DefaultAlertThreshold, *resp.RecommendedReorderQty)
	assert.Equal(t, 0, resp.CurrentStock)
	assert.Equal(t, entity.DefaultAlertThreshold, resp.AlertThreshold)
}

func TestGenerate_ProductoInexistente(t *testing.T) {
	env := newEnv(t)

	_, err := env.build(nil).Generate(context.Background(), adminCaller, testWarehouseID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.predictions.created, "un fallo de validación no persiste nada")
}

func TestGenerate_ProveedorGenerativoFallaSuave(t *testing.T) {
	env := newEnv(t)
	env.stocks.set(testProductID, testWarehouseID, 5, 10)

	resp, err := env.build(&failingRecommender{}).Generate(context.Background(), adminCaller, testWarehouseID, testProductID)
	require.NoError(t, err, "el fallo del proveedor generativo nunca aborta la previsión")
	assert.NotEmpty(t, resp.Recommendation, "debe caer al generador por reglas")
	assert.Contains(t, resp.Recommendation, "producto de prueba")
}

func TestGenerate_RecomendacionGenerativaTruncada(t *testing.T) {
	env := newEnv(t)
	env.stocks.set(testProductID, testWarehouseID, 50, 10)

	long := &staticRecommender{text: strings.Repeat("reponer ", 100)} // > 500 chars
	resp, err := env.build(long).Generate(context.Background(), adminCaller, testWarehouseID, testProductID)
	require.NoError(t, err)
	assert.Len(t, []rune(resp.Recommendation), 500, "la recomendación se recorta a 500 caracteres")
}

func TestGenerateForWarehouse_AislamientoPorItem(t *testing.T) {
	// Dos productos con stock; el segundo no existe en el catálogo, así que su
	// previsión falla pero la del primero se genera igual.
	env := newEnv(t)
	env.stocks.set(testProductID, testWarehouseID, 30, 10)
	env.stocks.set(otherProductID, testWarehouseID, 12, 10)
	env.products.idsWithStock = []string{testProductID, otherProductID}
	delete(env.products.names, otherProductID)

	resp, err := env.build(nil).GenerateForWarehouse(context.Background(), adminCaller, testWarehouseID)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, testProductID, resp.Items[0].ProductID)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, otherProductID, resp.Skipped[0].ProductID)
	assert.NotEmpty(t, resp.Skipped[0].Reason)
}

func TestGetLatest_NoEncontrado(t *testing.T) {
	env := newEnv(t)

	_, err := env.build(nil).GetLatest(adminCaller, testWarehouseID, testProductID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetLatest_EnriqueceConStockActual(t *testing.T) {
	env := newEnv(t)
	env.stocks.set(testProductID, testWarehouseID, 3, 10)
	env.predictions.latest = &entity.Prediction{
		ID:                 "p-1",
		ProductID:          testProductID,
		WarehouseID:        testWarehouseID,
		PredictionDate:     time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		PredictedQty30Days: 60,
		ConfidenceLevel:    70,
		RiskLevel:          entity.RiskEleve,
	}

	resp, err := env.build(nil).GetLatest(adminCaller, testWarehouseID, testProductID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CurrentStock,
		"la previsión histórica se enriquece con el stock de hoy, no el del cálculo")
	assert.Equal(t, "2026-08-20", resp.PredictionDate)
}

func TestListAllHighRisk_SoloAdmin(t *testing.T) {
	env := newEnv(t)
	manager := access.Identity{UserID: "manager-1", Role: entity.RoleManager, WarehouseID: testWarehouseID}

	_, err := env.build(nil).ListAllHighRisk(manager)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestPurgeOlderThan_SoloAdmin(t *testing.T) {
	env := newEnv(t)
	manager := access.Identity{UserID: "manager-1", Role: entity.RoleManager, WarehouseID: testWarehouseID}

	_, err := env.build(nil).PurgeOlderThan(manager, time.Now().AddDate(0, -6, 0))
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

// ── fakes en memoria ──────────────────────────────────────────────────────────

type testEnv struct {
	stocks      *memStockRepo
	sales       *stubSaleRepo
	predictions *memPredictionRepo
	products    *memProductRepo
	warehouses  *memWarehouseRepo
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		stocks:      &memStockRepo{entries: make(map[string]*entity.StockEntry)},
		sales:       &stubSaleRepo{},
		predictions: &memPredictionRepo{},
		products: &memProductRepo{names: map[string]string{
			testProductID:  "producto de prueba",
			otherProductID: "otro producto",
		}},
		warehouses: &memWarehouseRepo{ids: map[string]bool{testWarehouseID: true}},
	}
}

func (e *testEnv) build(recommender ports.Recommender) *forecast.UseCase {
	return forecast.NewUseCase(
		e.stocks, e.sales, e.predictions, e.products, e.warehouses,
		recommender, 50*time.Millisecond,
	)
}

type failingRecommender struct{}

func (r *failingRecommender) Recommend(context.Context, ports.RecommendationInput) (string, error) {
	return "", errors.New("servicio generativo caído")
}

type staticRecommender struct{ text string }

func (r *staticRecommender) Recommend(context.Context, ports.RecommendationInput) (string, error) {
	return r.text, nil
}

type memStockRepo struct {
	entries map[string]*entity.StockEntry
}

func (r *memStockRepo) set(productID, warehouseID string, qty, threshold int) {
	r.entries[productID+"|"+warehouseID] = &entity.StockEntry{
		ProductID:         productID,
		WarehouseID:       warehouseID,
		QuantityAvailable: qty,
		AlertThreshold:    threshold,
	}
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
func (r *memStockRepo) Upsert(*entity.StockEntry) error { return errors.New("no implementado") }
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

// stubSaleRepo devuelve agregados fijos; el cálculo sobre filas reales se
// cubre en los tests del repositorio.
type stubSaleRepo struct {
	sold30   int
	avgDaily float64
	count    int
}

func (r *stubSaleRepo) Create(*entity.SaleRecord) error { return errors.New("no implementado") }
func (r *stubSaleRepo) ListByProductAndWarehouse(string, string, int, int) ([]*entity.SaleRecord, error) {
	return nil, errors.New("no implementado")
}
func (r *stubSaleRepo) TotalQuantitySold(string, string, time.Time, time.Time) (int, error) {
	return r.sold30, nil
}
func (r *stubSaleRepo) AverageDailySales(string, string, time.Time) (float64, error) {
	return r.avgDaily, nil
}
func (r *stubSaleRepo) CountRecords(string, string, time.Time) (int, error) {
	return r.count, nil
}
func (r *stubSaleRepo) TopSellingProducts(string, time.Time, int) ([]repository.TopSellingResult, error) {
	return nil, errors.New("no implementado")
}
func (r *stubSaleRepo) MonthlySales(string, string) ([]repository.MonthlySalesResult, error) {
	return nil, errors.New("no implementado")
}
func (r *stubSaleRepo) SalesByDayOfWeek(string, string) ([]repository.WeekdaySalesResult, error) {
	return nil, errors.New("no implementado")
}

type memPredictionRepo struct {
	created []*entity.Prediction
	latest  *entity.Prediction
}

func (r *memPredictionRepo) Create(p *entity.Prediction) error {
	cp := *p
	r.created = append(r.created, &cp)
	return nil
}

func (r *memPredictionRepo) GetLatest(string, string) (*entity.Prediction, error) {
	return r.latest, nil
}
func (r *memPredictionRepo) ListByWarehouse(string, int, int) ([]*entity.Prediction, error) {
	return r.created, nil
}
func (r *memPredictionRepo) ListHighRisk(string) ([]*entity.Prediction, error) {
	return nil, errors.New("no implementado")
}
func (r *memPredictionRepo) ListAllHighRisk() ([]*entity.Prediction, error) {
	return nil, errors.New("no implementado")
}
func (r *memPredictionRepo) DeleteOlderThan(time.Time) (int64, error) {
	return 0, errors.New("no implementado")
}

type memProductRepo struct {
	names        map[string]string
	idsWithStock []string
}

func (r *memProductRepo) Create(*entity.Product) error { return errors.New("no implementado") }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	name, ok := r.names[id]
	if !ok {
		return nil, nil
	}
	return &entity.Product{ID: id, Name: name}, nil
}
func (r *memProductRepo) Update(*entity.Product) error { return errors.New("no implementado") }
func (r *memProductRepo) List(int, int) ([]*entity.Product, error) {
	return nil, errors.New("no implementado")
}
func (r *memProductRepo) ListIDsWithStock(string) ([]string, error) {
	return r.idsWithStock, nil
}
func (r *memProductRepo) Delete(string) error { return errors.New("no implementado") }

type memWarehouseRepo struct {
	ids map[string]bool
}

func (r *memWarehouseRepo) Create(*entity.Warehouse) error { return errors.New("no implementado") }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "almacén de prueba"}, nil
}
func (r *memWarehouseRepo) Update(*entity.Warehouse) error { return errors.New("no implementado") }
func (r *memWarehouseRepo) List(int, int) ([]*entity.Warehouse, error) {
	return nil, errors.New("no implementado")
}
func (r *memWarehouseRepo) Delete(string) error { return errors.New("no implementado") }
