package entity

import "time"

// RiskLevel clasifica la urgencia de ruptura de stock. Los valores se
// persisten tal cual (nomenclatura heredada del sistema original en francés).
type RiskLevel string

const (
	RiskFaible   RiskLevel = "FAIBLE"   // bajo
	RiskMoyen    RiskLevel = "MOYEN"    // medio
	RiskEleve    RiskLevel = "ELEVE"    // alto
	RiskCritique RiskLevel = "CRITIQUE" // crítico
)

// Rank devuelve el orden ascendente de severidad (FAIBLE=0 ... CRITIQUE=3).
func (r RiskLevel) Rank() int {
	switch r {
	case RiskMoyen:
		return 1
	case RiskEleve:
		return 2
	case RiskCritique:
		return 3
	default:
		return 0
	}
}

// IsHighRisk indica si el nivel es ELEVE o CRITIQUE.
func (r RiskLevel) IsHighRisk() bool {
	return r == RiskEleve || r == RiskCritique
}

// Prediction es una previsión de demanda a 30 días para un par
// (producto, almacén). Inmutable una vez creada: el historial de previsiones
// es append-only y "la última" se resuelve por fecha de previsión y createdAt.
// El stock actual NO se guarda aquí; se calcula fresco al leer.
type Prediction struct {
	ID                    string
	ProductID             string
	WarehouseID           string
	PredictionDate        time.Time // solo fecha; por defecto "hoy"
	PredictedQty30Days    int       // >= 0
	ConfidenceLevel       float64   // 0-100
	Recommendation        string    // <= 500 caracteres
	RecommendedReorderQty *int      // nil si no aplica
	RiskLevel             RiskLevel
	CreatedAt             time.Time
}
