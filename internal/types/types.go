package types

import "github.com/lmcassidy/Quantifying-sustainability-in-fashion/internal/scoring"

// ScoreRequest is the request body for the score endpoint. Metric payloads
// follow the upstream contract: three impact groups plus a certification
// bonus, all numeric.
type ScoreRequest struct {
	Material           scoring.MaterialImpact `json:"material_impact"`
	Care               scoring.CareImpact     `json:"care_impact"`
	Origin             scoring.OriginImpact   `json:"origin_impact"`
	CertificationBonus float64                `json:"certification_bonus"`
}

// Metrics assembles the grouped payloads into calculator input.
func (r ScoreRequest) Metrics() scoring.ImpactMetrics {
	return scoring.ImpactMetrics{
		Material: r.Material,
		Care:     r.Care,
		Origin:   r.Origin,
	}
}

// ScoreResponse pairs the calculator output with its presentation view.
type ScoreResponse struct {
	scoring.ScoreResult
	Breakdown scoring.BreakdownView `json:"breakdown"`
}
