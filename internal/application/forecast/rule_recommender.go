package forecast

import (
	"context"
	"fmt"

	"github.com/kdiallo/stockpilot-api/internal/application/ports"
	"github.com/kdiallo/stockpilot-api/internal/domain/entity"
)

// RuleRecommender genera el texto de recomendación con plantillas deterministas
// por nivel de riesgo. Es el proveedor por defecto y el fallback cuando el
// proveedor generativo no está configurado o falla.
type RuleRecommender struct{}

// NewRuleRecommender crea el generador por reglas.
func NewRuleRecommender() *RuleRecommender {
	return &RuleRecommender{}
}

var _ ports.Recommender = (*RuleRecommender)(nil)

// Recommend redacta la recomendación. Nunca devuelve error: las plantillas no
// tienen dependencias externas.
func (r *RuleRecommender) Recommend(_ context.Context, in ports.RecommendationInput) (string, error) {
	switch entity.RiskLevel(in.RiskLevel) {
	case entity.RiskCritique:
		return fmt.Sprintf(
			"URGENTE: stock crítico de %s (%d unidades) frente a una demanda prevista de %d en 30 días. Realizar un pedido inmediato de %d unidades para evitar la ruptura.",
			in.ProductName, in.CurrentStock, in.Predicted30d, in.ReorderQty), nil
	case entity.RiskEleve:
		return fmt.Sprintf(
			"Stock bajo de %s: %d unidades frente a una demanda prevista de %d en 30 días. Planificar un pedido de %d unidades esta semana.",
			in.ProductName, in.CurrentStock, in.Predicted30d, in.ReorderQty), nil
	case entity.RiskMoyen:
		return fmt.Sprintf(
			"Vigilar %s: %d unidades disponibles, cerca del umbral de alerta (%d). Considerar un pedido de %d unidades en el próximo ciclo de compras.",
			in.ProductName, in.CurrentStock, in.AlertThreshold, in.ReorderQty), nil
	default:
		return fmt.Sprintf(
			"Stock de %s saludable: %d unidades cubren la demanda prevista de %d en 30 días. No se requiere ninguna acción.",
			in.ProductName, in.CurrentStock, in.Predicted30d), nil
	}
}
