package forecast

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kdiallo/stockpilot-api/internal/application/access"
	"github.com/kdiallo/stockpilot-api/internal/application/dto"
	"github.com/kdiallo/stockpilot-api/internal/application/ports"
	"github.com/kdiallo/stockpilot-api/internal/domain"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	fc "github.com/kdiallo/stockpilot-api/internal/domain/forecast"
	"github.com/kdiallo/stockpilot-api/internal/domain/repository"
)

const (
	predictionDateLayout = "2006-01-02"

	// Ventanas del motor: señal reciente de 30 días y tasa larga de 90.
	recentWindowDays  = 30
	longRunWindowDays = 90

	maxRecommendationLen = 500
)

// UseCase es el motor de previsión de reaprovisionamiento: calcula la demanda
// prevista a 30 días, la confianza, el riesgo de ruptura y la cantidad de
// pedido, y persiste cada previsión como fila nueva del historial.
type UseCase struct {
	stockRepo      repository.StockRepository
	saleRepo       repository.SaleRepository
	predictionRepo repository.PredictionRepository
	productRepo    repository.ProductRepository
	warehouseRepo  repository.WarehouseRepository

	// recommender es el proveedor generativo (opcional, nil si no hay API
	// key); fallback es el generador por reglas, siempre presente.
	recommender ports.Recommender
	fallback    ports.Recommender
	aiTimeout   time.Duration

	now func() time.Time
}

// NewUseCase crea el motor de previsión. recommender puede ser nil; en ese caso
// toda recomendación sale del generador por reglas.
func NewUseCase(
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	predictionRepo repository.PredictionRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	recommender ports.Recommender,
	aiTimeout time.Duration,
) *UseCase {
	return &UseCase{
		stockRepo:      stockRepo,
		saleRepo:       saleRepo,
		predictionRepo: predictionRepo,
		productRepo:    productRepo,
		warehouseRepo:  warehouseRepo,
		recommender:    recommender,
		fallback:       NewRuleRecommender(),
		aiTimeout:      aiTimeout,
		now:            time.Now,
	}
}

// Generate calcula y persiste una previsión nueva para un par (producto,
// almacén). Un par sin entrada de stock se trata como stock cero con el umbral
// por defecto; un par sin ventas produce una previsión de demanda cero con
// confianza mínima.
func (uc *UseCase) Generate(ctx context.Context, caller access.Identity, warehouseID, productID string) (*dto.PredictionResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}

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

	currentStock, threshold, err := uc.stockSnapshot(productID, warehouseID)
	if err != nil {
		return nil, err
	}

	today := uc.today()
	recentStart := today.AddDate(0, 0, -recentWindowDays)
	longRunStart := today.AddDate(0, 0, -longRunWindowDays)

	sold30, err := uc.saleRepo.TotalQuantitySold(productID, warehouseID, recentStart, today)
	if err != nil {
		return nil, err
	}
	avgDaily, err := uc.saleRepo.AverageDailySales(productID, warehouseID, longRunStart)
	if err != nil {
		return nil, err
	}
	recordCount, err := uc.saleRepo.CountRecords(productID, warehouseID, longRunStart)
	if err != nil {
		return nil, err
	}

	predicted := fc.PredictedDemand(avgDaily, sold30)
	confidence := fc.Confidence(recordCount)
	risk := fc.ClassifyRisk(currentStock, predicted, threshold)
	reorderQty := fc.ReorderQuantity(currentStock, predicted, threshold)

	recommendation := uc.recommendText(ctx, productID, ports.RecommendationInput{
		ProductName:    product.Name,
		CurrentStock:   currentStock,
		Predicted30d:   predicted,
		AlertThreshold: threshold,
		RiskLevel:      string(risk),
		ReorderQty:     reorderQty,
	})

	prediction := &entity.Prediction{
		ID:                 uuid.New().String(),
		ProductID:          productID,
		WarehouseID:        warehouseID,
		PredictionDate:     today,
		PredictedQty30Days: predicted,
		ConfidenceLevel:    confidence,
		Recommendation:     recommendation,
		RiskLevel:          risk,
		CreatedAt:          uc.now(),
	}
	if reorderQty > 0 {
		prediction.RecommendedReorderQty = &reorderQty
	}

	if err := uc.predictionRepo.Create(prediction); err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", productID).
		Str("warehouse_id", warehouseID).
		Int("predicted_30d", predicted).
		Float64("confidence", confidence).
		Str("risk", string(risk)).
		Msg("previsión generada")
	return toPredictionResponse(prediction, currentStock, threshold), nil
}

// GenerateForWarehouse genera una previsión por cada producto con entrada de
// stock en el almacén. El fallo de un producto no aborta el batch: se anota en
// Skipped y se continúa con el resto.
func (uc *UseCase) GenerateForWarehouse(ctx context.Context, caller access.Identity, warehouseID string) (*dto.BatchForecastResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}

	productIDs, err := uc.productRepo.ListIDsWithStock(warehouseID)
	if err != nil {
		return nil, err
	}

	resp := &dto.BatchForecastResponse{Items: make([]dto.PredictionResponse, 0, len(productIDs))}
	for _, pid := range productIDs {
		item, err := uc.Generate(ctx, caller, warehouseID, pid)
		if err != nil {
			log.Warn().Err(err).
				Str("product_id", pid).
				Str("warehouse_id", warehouseID).
				Msg("previsión omitida en batch")
			resp.Skipped = append(resp.Skipped, dto.BatchSkipped{ProductID: pid, Reason: err.Error()})
			continue
		}
		resp.Items = append(resp.Items, *item)
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// GetLatest devuelve la previsión más reciente del par, enriquecida con el
// stock actual.
func (uc *UseCase) GetLatest(caller access.Identity, warehouseID, productID string) (*dto.PredictionResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	prediction, err := uc.predictionRepo.GetLatest(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if prediction == nil {
		return nil, domain.ErrNotFound
	}
	return uc.enrich(prediction)
}

// ListByWarehouse lista el historial de previsiones de un almacén.
func (uc *UseCase) ListByWarehouse(caller access.Identity, warehouseID string, page dto.PageRequest) (*dto.PredictionListResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	page.DefaultPage()

	predictions, err := uc.predictionRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(predictions)
}

// ListHighRisk devuelve las previsiones ELEVE y CRITIQUE de un almacén,
// ordenadas de más a menos severas.
func (uc *UseCase) ListHighRisk(caller access.Identity, warehouseID string) (*dto.PredictionListResponse, error) {
	if err := access.Authorize(caller, warehouseID); err != nil {
		return nil, err
	}
	predictions, err := uc.predictionRepo.ListHighRisk(warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.toList(predictions)
}

// ListAllHighRisk devuelve las previsiones de alto riesgo de todos los
// almacenes. Solo admin.
func (uc *UseCase) ListAllHighRisk(caller access.Identity) (*dto.PredictionListResponse, error) {
	if !caller.IsAdmin() {
		return nil, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	predictions, err := uc.predictionRepo.ListAllHighRisk()
	if err != nil {
		return nil, err
	}
	return uc.toList(predictions)
}

// PurgeOlderThan elimina previsiones con fecha anterior al corte. Mantenimiento
// de admin; devuelve cuántas filas se borraron.
func (uc *UseCase) PurgeOlderThan(caller access.Identity, cutoff time.Time) (int64, error) {
	if !caller.IsAdmin() {
		return 0, &domain.AccessDeniedError{UserID: caller.UserID}
	}
	deleted, err := uc.predictionRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("previsiones antiguas purgadas")
	return deleted, nil
}

// recommendText intenta el proveedor generativo con timeout y cae al generador
// por reglas ante cualquier fallo. Nunca devuelve error: una previsión jamás
// se pierde por culpa del texto.
func (uc *UseCase) recommendText(ctx context.Context, productID string, in ports.RecommendationInput) string {
	if uc.recommender != nil {
		aiCtx, cancel := context.WithTimeout(ctx, uc.aiTimeout)
		text, err := uc.recommender.Recommend(aiCtx, in)
		cancel()
		if err == nil && strings.TrimSpace(text) != "" {
			return truncateRecommendation(text)
		}
		log.Warn().Err(err).
			Str("product_id", productID).
			Msg("proveedor generativo no disponible; usando recomendación por reglas")
	}
	text, _ := uc.fallback.Recommend(ctx, in)
	return truncateRecommendation(text)
}

// stockSnapshot lee el estado de stock del par; sin entrada devuelve cero y el
// umbral por defecto.
func (uc *UseCase) stockSnapshot(productID, warehouseID string) (currentStock, threshold int, err error) {
	entry, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return 0, 0, err
	}
	if entry == nil {
		return 0, entity.DefaultAlertThreshold, nil
	}
	return entry.QuantityAvailable, entry.AlertThreshold, nil
}

func (uc *UseCase) today() time.Time {
	now := uc.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (uc *UseCase) enrich(p *entity.Prediction) (*dto.PredictionResponse, error) {
	currentStock, threshold, err := uc.stockSnapshot(p.ProductID, p.WarehouseID)
	if err != nil {
		return nil, err
	}
	return toPredictionResponse(p, currentStock, threshold), nil
}

func (uc *UseCase) toList(predictions []*entity.Prediction) (*dto.PredictionListResponse, error) {
	items := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		item, err := uc.enrich(p)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return &dto.PredictionListResponse{Items: items, Total: len(items)}, nil
}

func truncateRecommendation(text string) string {
	runes := []rune(text)
	if len(runes) <= maxRecommendationLen {
		return text
	}
	return string(runes[:maxRecommendationLen])
}

func toPredictionResponse(p *entity.Prediction, currentStock, threshold int) *dto.PredictionResponse {
	return &dto.PredictionResponse{
		ID:                    p.ID,
		ProductID:             p.ProductID,
		WarehouseID:           p.WarehouseID,
		PredictionDate:        p.PredictionDate.Format(predictionDateLayout),
		PredictedQty30Days:    p.PredictedQty30Days,
		ConfidenceLevel:       p.ConfidenceLevel,
		Recommendation:        p.Recommendation,
		RecommendedReorderQty: p.RecommendedReorderQty,
		RiskLevel:             string(p.RiskLevel),
		CreatedAt:             p.CreatedAt,

		CurrentStock:   currentStock,
		AlertThreshold: threshold,
	}
}
