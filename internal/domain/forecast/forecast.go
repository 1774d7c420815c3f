package forecast

import (
	"math"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

// Pesos de la demanda prevista: tasa diaria de 90 días (70 %) contra la señal
// reciente de 30 días (30 %). Ambos términos se llevan a base diaria antes de
// combinarlos y reexpandir a 30 días.
const (
	longRunWeight = 0.7
	recentWeight  = 0.3

	// horizonDays es el horizonte de proyección de la previsión.
	horizonDays = 30

	// unlimitedRunway es el centinela de "autonomía ilimitada" cuando la
	// demanda prevista es cero.
	unlimitedRunway = 999.0

	// confidenceCap: la confianza satura en 95 y nunca llega a 100; la
	// previsión es heurística, nunca certera.
	confidenceCap = 95.0
)

// Umbrales de clasificación de riesgo sobre los días de autonomía.
const (
	criticalRunwayDays = 7.0
	highRunwayDays     = 15.0
	mediumStockRatio   = 1.5 // stock <= umbral * 1.5 => MOYEN
)

// PredictedDemand genera la demanda prevista a 30 días.
// Sin tasa media diaria (avgDaily == 0) cae al total vendido reciente tal cual.
// Con tasa: ceil((avgDaily*0.7 + (sold30/30)*0.3) * 30). El redondeo es SIEMPRE
// hacia arriba: subestimar demanda provoca rupturas, el fallo más caro.
func PredictedDemand(avgDaily float64, sold30 int) int {
	if avgDaily == 0 {
		if sold30 < 0 {
			return 0
		}
		return sold30
	}
	daily := avgDaily*longRunWeight + (float64(sold30)/float64(horizonDays))*recentWeight
	predicted := int(math.Ceil(daily * float64(horizonDays)))
	if predicted < 0 {
		return 0
	}
	return predicted
}

// Confidence calcula el nivel de confianza (0-100) en función del volumen de
// historial. Es un proxy de cantidad de datos, no una medida de precisión.
// Las bandas son escalones discontinuos a propósito:
//
//	0 registros      -> 30
//	1-9 registros    -> 50 + n*2
//	10-29 registros  -> 70 + (n-10)
//	>=30 registros   -> min(95, 85 + (n-30)*0.1)
func Confidence(recordCount int) float64 {
	switch {
	case recordCount <= 0:
		return 30.0
	case recordCount < 10:
		return 50.0 + float64(recordCount)*2
	case recordCount < 30:
		return 70.0 + float64(recordCount-10)
	default:
		return math.Min(confidenceCap, 85.0+float64(recordCount-30)*0.1)
	}
}

// DaysOfStock devuelve los días de autonomía del stock actual frente a la
// demanda prevista, o el centinela unlimitedRunway si la demanda es cero.
func DaysOfStock(currentStock, predicted int) float64 {
	if predicted <= 0 {
		return unlimitedRunway
	}
	return float64(currentStock) * float64(horizonDays) / float64(predicted)
}

// ClassifyRisk clasifica el riesgo de ruptura. El orden de desempate importa:
// primero la autonomía en días (CRITIQUE/ELEVE), después la relación con el
// umbral de alerta (MOYEN), y solo si ambos pasan queda FAIBLE.
func ClassifyRisk(currentStock, predicted, threshold int) entity.RiskLevel {
	if currentStock <= 0 {
		return entity.RiskCritique
	}
	days := DaysOfStock(currentStock, predicted)
	switch {
	case days <= criticalRunwayDays:
		return entity.RiskCritique
	case days <= highRunwayDays:
		return entity.RiskEleve
	case float64(currentStock) <= float64(threshold)*mediumStockRatio:
		return entity.RiskMoyen
	default:
		return entity.RiskFaible
	}
}

// ReorderQuantity calcula la cantidad de pedido recomendada: cubrir la demanda
// prevista y dejar el umbral de alerta como piso de seguridad, nunca negativa.
func ReorderQuantity(currentStock, predicted, threshold int) int {
	qty := predicted + threshold - currentStock
	if qty < 0 {
		return 0
	}
	return qty
}
