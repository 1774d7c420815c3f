package ports

import "context"

// RecommendationInput datos que el proveedor de texto necesita para redactar
// la recomendación de una previsión.
type RecommendationInput struct {
	ProductName    string
	CurrentStock   int
	Predicted30d   int
	AlertThreshold int
	RiskLevel      string // FAIBLE | MOYEN | ELEVE | CRITIQUE
	ReorderQty     int
}

// Recommender define el puerto de salida para el texto de recomendación de una
// previsión. Hay dos implementaciones: un generador determinista por reglas
// (siempre disponible) y un adaptador generativo externo (opcional, falla
// suave). El motor de previsión nunca propaga un error de este puerto: ante
// cualquier fallo cae al generador por reglas.
type Recommender interface {
	// Recommend devuelve un texto corto (<= 500 caracteres). El contexto debe
	// llevar un timeout para acotar llamadas externas.
	Recommend(ctx context.Context, in RecommendationInput) (string, error)
}
