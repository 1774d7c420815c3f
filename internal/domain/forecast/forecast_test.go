package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
	"github.com/kdiallo/stockpilot-api/internal/domain/forecast"
)

// ──────────────────────────────────────────────────────────────────────────────
// Demanda prevista
// ──────────────────────────────────────────────────────────────────────────────

// Vector de referencia: avgDaily=10, sold30=250 =>
// ceil((10*0.7 + (250/30)*0.3) * 30) = ceil((7.0 + 2.5) * 30) = ceil(285.0) = 285.
func TestPredictedDemand_VectorReferencia(t *testing.T) {
	assert.Equal(t, 285, forecast.PredictedDemand(10.0, 250),
		"la fórmula ponderada 0.7/0.3 debe producir exactamente 285")
}

func TestPredictedDemand_SinTasaMedia_CaeAlTotalReciente(t *testing.T) {
	assert.Equal(t, 42, forecast.PredictedDemand(0, 42),
		"sin tasa media diaria la previsión es el total vendido en 30 días")
	assert.Equal(t, 0, forecast.PredictedDemand(0, 0),
		"sin historial alguno la previsión es 0")
}

func TestPredictedDemand_RedondeoSiempreHaciaArriba(t *testing.T) {
	// avgDaily=1.0, sold30=1 => (0.7 + 0.01) * 30 = 21.3 => ceil = 22
	got := forecast.PredictedDemand(1.0, 1)
	assert.Equal(t, 22, got,
		"la demanda fraccional debe redondearse hacia arriba, nunca truncarse")
}

func TestPredictedDemand_NuncaNegativa(t *testing.T) {
	assert.GreaterOrEqual(t, forecast.PredictedDemand(0.001, 0), 0)
	assert.Equal(t, 0, forecast.PredictedDemand(0, -5),
		"una entrada corrupta no debe producir demanda negativa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Confianza
// ──────────────────────────────────────────────────────────────────────────────

func TestConfidence_Bandas(t *testing.T) {
	cases := []struct {
		records int
		want    float64
	}{
		{0, 30.0},
		{1, 52.0},
		{5, 60.0},
		{9, 68.0},
		{10, 70.0},
		{20, 80.0},
		{29, 89.0},
		{30, 85.0}, // la banda alta arranca por debajo del final de la anterior: escalón intencional
		{50, 87.0},
		{130, 95.0},
		{1000, 95.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, forecast.Confidence(tc.records), 1e-9,
			"confianza incorrecta para %d registros", tc.records)
	}
}

func TestConfidence_SaturaEn95DentroDeCadaBanda(t *testing.T) {
	// Dentro de cada banda la confianza es no decreciente y nunca supera 95.
	bands := [][2]int{{0, 0}, {1, 9}, {10, 29}, {30, 500}}
	for _, b := range bands {
		prev := forecast.Confidence(b[0])
		for n := b[0]; n <= b[1]; n++ {
			c := forecast.Confidence(n)
			assert.GreaterOrEqual(t, c, prev,
				"la confianza no debe decrecer dentro de la banda (n=%d)", n)
			assert.LessOrEqual(t, c, 95.0, "la confianza nunca llega a 100 (n=%d)", n)
			prev = c
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Riesgo
// ──────────────────────────────────────────────────────────────────────────────

func TestClassifyRisk_StockCeroSiempreCritique(t *testing.T) {
	assert.Equal(t, entity.RiskCritique, forecast.ClassifyRisk(0, 0, 10))
	assert.Equal(t, entity.RiskCritique, forecast.ClassifyRisk(0, 10000, 0),
		"stock cero es CRITIQUE sin importar el resto de entradas")
}

func TestClassifyRisk_OrdenDeDesempate(t *testing.T) {
	cases := []struct {
		name                        string
		stock, predicted, threshold int
		want                        entity.RiskLevel
	}{
		// daysOfStock = stock*30/predicted
		{"autonomía 7 días exactos", 7, 30, 0, entity.RiskCritique},
		{"autonomía 10.5 días", 100, 285, 20, entity.RiskEleve}, // escenario D del sistema
		{"autonomía 15 días exactos", 15, 30, 0, entity.RiskEleve},
		{"autonomía larga pero stock bajo el ratio del umbral", 16, 30, 20, entity.RiskMoyen},
		{"autonomía larga y stock holgado", 100, 30, 20, entity.RiskFaible},
		{"demanda cero: autonomía ilimitada, decide el umbral", 5, 0, 4, entity.RiskMoyen},
		{"demanda cero y stock holgado", 100, 0, 10, entity.RiskFaible},
		{"frontera MOYEN: stock == umbral*1.5", 30, 30, 20, entity.RiskMoyen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := forecast.ClassifyRisk(tc.stock, tc.predicted, tc.threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDaysOfStock_CentinelaSinDemanda(t *testing.T) {
	assert.Equal(t, 999.0, forecast.DaysOfStock(50, 0),
		"sin demanda prevista la autonomía es el centinela 999")
	assert.InDelta(t, 10.526, forecast.DaysOfStock(100, 285), 0.001)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidad de pedido recomendada
// ──────────────────────────────────────────────────────────────────────────────

func TestReorderQuantity(t *testing.T) {
	cases := []struct {
		stock, predicted, threshold, want int
	}{
		{100, 285, 20, 205}, // cubrir demanda + llegar al umbral
		{0, 0, 10, 10},      // sin demanda: reponer al menos hasta el umbral
		{500, 30, 10, 0},    // sobrestock: nunca negativa
	}
	for _, tc := range cases {
		got := forecast.ReorderQuantity(tc.stock, tc.predicted, tc.threshold)
		assert.Equal(t, tc.want, got,
			"reorden incorrecto para stock=%d predicted=%d threshold=%d",
			tc.stock, tc.predicted, tc.threshold)
	}
}
